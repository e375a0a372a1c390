// Package app wires configuration, storage, the ordering service, and the
// Telegram runtime into a runnable snackbot.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	corebootstrap "github.com/m3rciful/snackbot/core/bootstrap"
	coretelegram "github.com/m3rciful/snackbot/core/telegram"
	"github.com/m3rciful/snackbot/core/telegram/router"
	"github.com/m3rciful/snackbot/internal/bot"
	"github.com/m3rciful/snackbot/internal/catalog"
	"github.com/m3rciful/snackbot/internal/ordering"
	"github.com/m3rciful/snackbot/internal/orders"
	"github.com/m3rciful/snackbot/internal/session"
)

// App holds the assembled application.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	notifier *bot.Notifier
	handlers *bot.Handlers
}

// Bootstrap initializes the logger, database, and services.
func Bootstrap(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	res, err := corebootstrap.Run(corebootstrap.Options{
		Config:   &cfg.Core,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	menu := catalog.Default()
	notifier := bot.NewNotifier(menu)
	svc := ordering.New(
		session.NewStore(),
		orders.NewPostgresStore(res.DB),
		menu,
		cfg.Shop.DeliveryFee,
		cfg.Core.Telegram.AdminIDs,
		notifier,
	)

	return &App{
		cfg:      cfg,
		db:       res.DB,
		notifier: notifier,
		handlers: bot.NewHandlers(svc),
	}, nil
}

// TelegramRunOptions assembles registry, routes, and middleware for the runner.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()
	a.handlers.Register(reg)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminIDs: a.cfg.Core.Telegram.AdminIDs,
	})
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoutes(nil, reg, router.TextOptions{})...)

	return coretelegram.RunOptions{
		Config:      &a.cfg.Core,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(&a.cfg.Core, nil),
		Routes:      routes,
		OnStart: func(_ context.Context, rt coretelegram.Runtime) error {
			a.notifier.Bind(rt.Bot)
			return nil
		},
		OnStop: func(_ context.Context, _ coretelegram.Runtime) error {
			return a.db.Close()
		},
	}, nil
}
