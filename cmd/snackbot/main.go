package main

import (
	"fmt"
	"log"

	corecmd "github.com/m3rciful/snackbot/core/cmd"
	"github.com/m3rciful/snackbot/internal/app"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config/config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return app.LoadConfig(path)
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := carrier.(*app.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", carrier)
			}
			return app.Bootstrap(cfg)
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
