// Package bot adapts the ordering service to the Telegram transport: it
// decodes callback actions at the boundary, renders typed service results,
// and delivers out-of-band notifications.
package bot

import (
	"errors"
	"fmt"

	tg "github.com/m3rciful/snackbot/core/telegram"
	"github.com/m3rciful/snackbot/core/telegram/callbacks"
	"github.com/m3rciful/snackbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/snackbot/core/telegram/helpers"
	"github.com/m3rciful/snackbot/internal/ordering"
	"github.com/m3rciful/snackbot/internal/orders"

	tele "gopkg.in/telebot.v4"
)

// Handlers owns the inbound entry points: session start, text, callback
// actions, and the admin maintenance command.
type Handlers struct {
	svc *ordering.Service
}

// NewHandlers wires the ordering service into transport handlers.
func NewHandlers(svc *ordering.Service) *Handlers {
	return &Handlers{svc: svc}
}

// Register wires commands, callbacks, and the text fallback into the registry.
func (h *Handlers) Register(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.onStart,
		Description: "Начать заказ",
	})
	reg.RegisterCommand("/repair", commands.Command{
		Handler:     h.onRepair,
		Description: "Починить битые записи заказов",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback(cbAddItem, h.onAddItem)
	_ = reg.RegisterCallback(cbRemoveItem, h.onRemoveItem)
	_ = reg.RegisterCallback(cbViewCart, h.onViewCart)
	_ = reg.RegisterCallback(cbBackToMenu, h.onBackToMenu)
	_ = reg.RegisterCallback(cbCheckout, h.onCheckout)
	_ = reg.RegisterCallback(cbChangeRoom, h.onChangeRoom)
	_ = reg.RegisterCallback(cbAddComment, h.onAddComment)
	_ = reg.RegisterCallback(cbConfirm, h.onConfirm)
	_ = reg.RegisterCallback(cbAdminStatus, h.onAdminStatus)

	reg.SetTextFallback(h.onText)
}

func chatID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return c.Sender().ID
}

func (h *Handlers) onStart(c tele.Context) error {
	h.svc.Start(chatID(c))
	return tghelpers.SendText(c, msgGreeting)
}

func (h *Handlers) onText(c tele.Context) error {
	reply := h.svc.Text(chatID(c), c.Text())
	switch reply.Kind {
	case ordering.TextRoomAccepted:
		return tghelpers.SendText(c, fmt.Sprintf("✅ Аудитория установлена: %s", reply.Room), menuKeyboard(h.svc.Catalog()))
	case ordering.TextRoomRejected:
		return tghelpers.SendText(c, msgRoomBadFormat)
	case ordering.TextNoteSaved:
		return tghelpers.SendText(c, noteSavedText(reply.Cart), confirmOnlyKeyboard())
	default:
		return tghelpers.SendText(c, msgPickFromMenu, menuKeyboard(h.svc.Catalog()))
	}
}

func (h *Handlers) onAddItem(c tele.Context) error {
	itemID, err := decodeItemPayload(callbacks.CallbackPayload(c))
	if err != nil {
		return err
	}
	added, err := h.svc.AddItem(chatID(c), itemID)
	if errors.Is(err, ordering.ErrUnknownItem) {
		// Stale or forged button; show the current menu instead.
		return tghelpers.EditOrSendText(c, msgKeepChoosing, menuKeyboard(h.svc.Catalog()))
	}
	if err != nil {
		return err
	}
	text := fmt.Sprintf("Добавил: %s — %d₽\nТекущая сумма товаров: %d₽", added.Item.Name, added.Item.Price, added.Subtotal)
	return tghelpers.EditOrSendText(c, text, menuKeyboard(h.svc.Catalog()))
}

func (h *Handlers) onRemoveItem(c tele.Context) error {
	itemID, err := decodeItemPayload(callbacks.CallbackPayload(c))
	if err != nil {
		return err
	}
	view := h.svc.RemoveItem(chatID(c), itemID)
	if view.Empty {
		return tghelpers.EditOrSendText(c, msgEmptyCart, menuKeyboard(h.svc.Catalog()))
	}
	return tghelpers.EditOrSendText(c, cartText(view, h.svc.Catalog(), true), cartKeyboard(view.Cart, h.svc.Catalog()))
}

func (h *Handlers) onViewCart(c tele.Context) error {
	view := h.svc.ViewCart(chatID(c))
	if view.Empty {
		return tghelpers.EditOrSendText(c, msgEmptyCart, menuKeyboard(h.svc.Catalog()))
	}
	return tghelpers.EditOrSendText(c, cartText(view, h.svc.Catalog(), false), cartKeyboard(view.Cart, h.svc.Catalog()))
}

func (h *Handlers) onBackToMenu(c tele.Context) error {
	return tghelpers.EditOrSendText(c, msgKeepChoosing, menuKeyboard(h.svc.Catalog()))
}

func (h *Handlers) onCheckout(c tele.Context) error {
	view := h.svc.Checkout(chatID(c))
	switch view.Kind {
	case ordering.CheckoutEmpty:
		return tghelpers.EditOrSendText(c, msgEmptyCart, menuKeyboard(h.svc.Catalog()))
	case ordering.CheckoutNeedRoom:
		return tghelpers.EditOrSendText(c, msgRoomPrompt)
	default:
		return tghelpers.EditOrSendText(c, summaryText(view.Room, view.Cart, h.svc.Catalog()), confirmKeyboard())
	}
}

func (h *Handlers) onChangeRoom(c tele.Context) error {
	h.svc.ChangeRoom(chatID(c))
	return tghelpers.EditOrSendText(c, msgRoomChange)
}

func (h *Handlers) onAddComment(c tele.Context) error {
	h.svc.RequestComment(chatID(c))
	return tghelpers.EditOrSendText(c, msgCommentPrompt)
}

func (h *Handlers) onConfirm(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	user := c.Sender()
	sub, err := h.svc.Confirm(ctx, chatID(c), user.ID, user.Username)
	switch {
	case errors.Is(err, ordering.ErrEmptyCart):
		return tghelpers.EditOrSendText(c, msgEmptyCart, menuKeyboard(h.svc.Catalog()))
	case errors.Is(err, ordering.ErrNoRoom):
		h.svc.ChangeRoom(chatID(c))
		return tghelpers.EditOrSendText(c, msgRoomPrompt)
	case err != nil:
		return err
	}
	return tghelpers.EditOrSendText(c, submittedText(sub))
}

func (h *Handlers) onAdminStatus(c tele.Context) error {
	orderID, status, err := decodeAdminPayload(callbacks.CallbackPayload(c))
	if err != nil {
		return err
	}
	ctx := tghelpers.BuildContext(c)
	order, err := h.svc.SetStatus(ctx, orderID, status)
	if errors.Is(err, orders.ErrNotFound) {
		return tghelpers.SendText(c, fmt.Sprintf("Заказ #%d не найден", orderID))
	}
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, fmt.Sprintf("Заказ #%d обновлён → %s", order.ID, status.Label()))
}

func (h *Handlers) onRepair(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	rep, err := h.svc.Maintenance(ctx)
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, repairReportText(rep))
}
