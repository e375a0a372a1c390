package bot

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/m3rciful/snackbot/internal/catalog"
	"github.com/m3rciful/snackbot/internal/orders"

	tele "gopkg.in/telebot.v4"
)

// ErrNotBound is returned when the notifier is used before the bot runtime
// is up.
var ErrNotBound = errors.New("bot: notifier is not bound to a running bot")

// Notifier delivers out-of-band messages (admin broadcasts, status updates)
// over Telegram. It is created before the bot and bound at startup.
type Notifier struct {
	bot atomic.Pointer[tele.Bot]
	cat *catalog.Catalog
}

// NewNotifier builds an unbound notifier rendering over the given catalog.
func NewNotifier(cat *catalog.Catalog) *Notifier {
	return &Notifier{cat: cat}
}

// Bind attaches the running bot. Called from the runtime OnStart hook.
func (n *Notifier) Bind(b *tele.Bot) {
	n.bot.Store(b)
}

// NotifyText sends a plain text message to the user.
func (n *Notifier) NotifyText(_ context.Context, userID int64, text string) error {
	b := n.bot.Load()
	if b == nil {
		return ErrNotBound
	}
	_, err := b.Send(&tele.User{ID: userID}, text)
	return err
}

// NotifyOrder sends the new-order summary with status actions attached.
func (n *Notifier) NotifyOrder(_ context.Context, adminID int64, o orders.Order) error {
	b := n.bot.Load()
	if b == nil {
		return ErrNotBound
	}
	_, err := b.Send(&tele.User{ID: adminID}, adminOrderText(o, n.cat), adminStatusKeyboard(o.ID))
	return err
}
