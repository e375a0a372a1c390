package bot

import (
	"fmt"
	"strings"

	"github.com/m3rciful/snackbot/core/telegram/format"
	"github.com/m3rciful/snackbot/core/telegram/keyboard"
	"github.com/m3rciful/snackbot/internal/cart"
	"github.com/m3rciful/snackbot/internal/catalog"
	"github.com/m3rciful/snackbot/internal/ordering"
	"github.com/m3rciful/snackbot/internal/orders"

	tele "gopkg.in/telebot.v4"
)

const (
	msgGreeting      = "Привет! 🍫 Введи номер аудитории (цифры + буква, например 429Г):"
	msgRoomPrompt    = "Введи номер аудитории (например, 429Г):"
	msgRoomChange    = "Введи новую аудиторию (например, 429г):"
	msgRoomBadFormat = "Формат аудитории: цифры + буква (например, 429Г)."
	msgEmptyCart     = "Корзина пуста."
	msgKeepChoosing  = "Продолжай выбирать:"
	msgPickFromMenu  = "Добавляй позиции из меню:"
	msgCommentPrompt = "Напиши комментарий (или /skip чтобы пропустить):"
)

// menuKeyboard renders one button per catalog item plus service actions.
func menuKeyboard(cat *catalog.Catalog) *tele.ReplyMarkup {
	rows := make([][]keyboard.InlineBtn, 0, cat.Len()+2)
	for _, it := range cat.Items() {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   fmt.Sprintf("%s — %d₽", it.Name, it.Price),
			Unique: cbAddItem,
			Data:   it.ID,
		}})
	}
	rows = append(rows, []keyboard.InlineBtn{{Text: "🏫 Сменить аудиторию", Unique: cbChangeRoom}})
	rows = append(rows, []keyboard.InlineBtn{
		{Text: "🧺 Корзина", Unique: cbViewCart},
		{Text: "✅ Оформить", Unique: cbCheckout},
	})
	return keyboard.InlineButtonsRows(rows...)
}

// cartKeyboard offers removal per held item plus add-more/checkout.
func cartKeyboard(c *cart.Cart, cat *catalog.Catalog) *tele.ReplyMarkup {
	var rows [][]keyboard.InlineBtn
	for _, ln := range c.Lines(cat) {
		rows = append(rows, []keyboard.InlineBtn{{
			Text:   fmt.Sprintf("➖ Убрать %s", ln.Item.Name),
			Unique: cbRemoveItem,
			Data:   ln.Item.ID,
		}})
	}
	rows = append(rows, []keyboard.InlineBtn{
		{Text: "➕ Добавить ещё", Unique: cbBackToMenu},
		{Text: "✅ Оформить", Unique: cbCheckout},
	})
	return keyboard.InlineButtonsRows(rows...)
}

// confirmKeyboard offers comment entry or confirmation without one.
func confirmKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "✍️ Добавить комментарий", Unique: cbAddComment}},
		[]keyboard.InlineBtn{{Text: "💳 Подтвердить без комментария", Unique: cbConfirm}},
	)
}

// confirmOnlyKeyboard is shown after the note is saved.
func confirmOnlyKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "💳 Подтвердить заказ", Unique: cbConfirm}},
	)
}

// adminStatusKeyboard attaches the four status transitions to an order.
func adminStatusKeyboard(orderID int64) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{
			{Text: "✅ Принять", Unique: cbAdminStatus, Data: encodeAdminPayload(orderID, orders.StatusAccepted)},
			{Text: "🛵 В пути", Unique: cbAdminStatus, Data: encodeAdminPayload(orderID, orders.StatusOnTheWay)},
		},
		[]keyboard.InlineBtn{
			{Text: "📦 Доставлен", Unique: cbAdminStatus, Data: encodeAdminPayload(orderID, orders.StatusDelivered)},
			{Text: "🚫 Отмена", Unique: cbAdminStatus, Data: encodeAdminPayload(orderID, orders.StatusCanceled)},
		},
	)
}

func totalsBlock(view ordering.CartView) string {
	return fmt.Sprintf("💰 Товары: %d₽\n🚚 Доставка: %d₽\nИтого: %d₽", view.Subtotal, view.Fee, view.Total)
}

// cartText renders the cart screen.
func cartText(view ordering.CartView, cat *catalog.Catalog, updated bool) string {
	header := "🧺 Твоя корзина:"
	if updated {
		header = "🧺 Твоя корзина (обновлено):"
	}
	return strings.Join([]string{
		header,
		view.Cart.FormatLines(cat),
		"",
		totalsBlock(view),
	}, "\n")
}

// summaryText renders the pre-confirmation order summary.
func summaryText(room string, view ordering.CartView, cat *catalog.Catalog) string {
	return strings.Join([]string{
		"Проверь заказ:",
		fmt.Sprintf("📍 Аудитория %s", room),
		view.Cart.FormatLines(cat),
		"",
		totalsBlock(view),
	}, "\n")
}

// submittedText confirms a persisted order to the submitter.
func submittedText(sub ordering.Submission) string {
	note := sub.Note
	if note == "" {
		note = cart.EmptyPlaceholder
	}
	return fmt.Sprintf(
		"✅ Заказ #%d принят!\n\n💰 Товары: %d₽\n🚚 Доставка: %d₽\nИтого к оплате: %d₽\nКомментарий: %s",
		sub.OrderID, sub.Subtotal, sub.Fee, sub.Total, note,
	)
}

// adminOrderText renders the new-order summary sent to administrators.
func adminOrderText(o orders.Order, cat *catalog.Catalog) string {
	username := o.Username
	if username == "" {
		username = cart.EmptyPlaceholder
	}
	subtotal := o.Items.Subtotal(cat)
	return fmt.Sprintf(
		"🆕 Заказ #%d\nОт @%s (id %d)\nАудитория: %s\n%s\n\n💰 Товары: %d₽\n🚚 Доставка: %d₽\nИтого: %d₽\nКомментарий: %s",
		o.ID, username, o.UserID, o.Room,
		o.Items.FormatLines(cat),
		subtotal, o.Total-subtotal, o.Total,
		format.DerefString(o.Note, cart.EmptyPlaceholder),
	)
}

// noteSavedText re-shows totals after the comment is stored.
func noteSavedText(view ordering.CartView) string {
	return fmt.Sprintf(
		"Комментарий сохранён ✅\nПроверь сумму и подтверди заказ:\n💰 Товары: %d₽\n🚚 Доставка: %d₽\nИтого к оплате: %d₽",
		view.Subtotal, view.Fee, view.Total,
	)
}

// repairReportText summarizes a maintenance run for the invoking admin.
func repairReportText(rep orders.Report) string {
	return fmt.Sprintf("Проверено записей: %d, перенесено аудиторий: %d, очищено: %d", rep.Scanned, rep.Moved, rep.Cleared)
}
