package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/snackbot/internal/cart"
	"github.com/m3rciful/snackbot/internal/catalog"
	"github.com/m3rciful/snackbot/internal/ordering"
	"github.com/m3rciful/snackbot/internal/orders"
)

func testCart(ids ...string) *cart.Cart {
	c := cart.New()
	for _, id := range ids {
		c.Add(id)
	}
	return c
}

func testView() ordering.CartView {
	return ordering.CartView{
		Cart:     testCart("energy", "cola", "cola"),
		Subtotal: 285,
		Fee:      99,
		Total:    384,
	}
}

func TestCartText(t *testing.T) {
	cat := catalog.Default()
	text := cartText(testView(), cat, false)
	assert.Contains(t, text, "🧺 Твоя корзина:")
	assert.Contains(t, text, "• ЭНЕРГЕТИК ×1 = 65₽")
	assert.Contains(t, text, "• КОЛА (ориг) ×2 = 220₽")
	assert.Contains(t, text, "Итого: 384₽")

	updated := cartText(testView(), cat, true)
	assert.Contains(t, updated, "(обновлено)")
}

func TestCartTextFollowsAddOrder(t *testing.T) {
	cat := catalog.Default()
	view := ordering.CartView{
		Cart:     testCart("cola", "cola", "energy"),
		Subtotal: 285,
		Fee:      99,
		Total:    384,
	}
	text := cartText(view, cat, false)
	// The first item the user picked leads the listing, regardless of the
	// menu layout.
	assert.Less(t, strings.Index(text, "КОЛА"), strings.Index(text, "ЭНЕРГЕТИК"))
}

func TestCartTextEmptyPlaceholder(t *testing.T) {
	cat := catalog.Default()
	view := ordering.CartView{Cart: cart.New(), Fee: 99, Total: 99, Empty: true}
	assert.Contains(t, cartText(view, cat, false), cart.EmptyPlaceholder)
}

func TestSummaryText(t *testing.T) {
	text := summaryText("429Г", testView(), catalog.Default())
	assert.Contains(t, text, "📍 Аудитория 429Г")
	assert.Contains(t, text, "Итого: 384₽")
}

func TestSubmittedTextNoteFallback(t *testing.T) {
	sub := ordering.Submission{OrderID: 7, Subtotal: 285, Fee: 99, Total: 384}
	text := submittedText(sub)
	assert.Contains(t, text, "✅ Заказ #7 принят!")
	assert.Contains(t, text, "Комментарий: "+cart.EmptyPlaceholder)

	sub.Note = "без сдачи"
	assert.Contains(t, submittedText(sub), "Комментарий: без сдачи")
}

func TestAdminOrderText(t *testing.T) {
	note := "позвонить"
	o := orders.Order{
		ID:       7,
		UserID:   42,
		Username: "ivan",
		Room:     "429Г",
		Items:    testCart("energy", "cola", "cola"),
		Note:     &note,
		Total:    384,
	}
	text := adminOrderText(o, catalog.Default())
	assert.Contains(t, text, "🆕 Заказ #7")
	assert.Contains(t, text, "От @ivan (id 42)")
	assert.Contains(t, text, "Аудитория: 429Г")
	assert.Contains(t, text, "🚚 Доставка: 99₽")
	assert.Contains(t, text, "Комментарий: позвонить")
}

func TestMenuKeyboardCoversCatalog(t *testing.T) {
	cat := catalog.Default()
	mk := menuKeyboard(cat)
	require.NotNil(t, mk)
	// One row per item, one for room change, one for cart/checkout.
	assert.Len(t, mk.InlineKeyboard, cat.Len()+2)
}

func TestCartKeyboardRowsFollowCart(t *testing.T) {
	cat := catalog.Default()
	c := testCart("water", "energy", "water")
	mk := cartKeyboard(c, cat)
	require.NotNil(t, mk)
	// One removal row per held item plus the action row.
	require.Len(t, mk.InlineKeyboard, 3)
	// Removal rows follow the order items went into the cart.
	assert.Equal(t, "water", mk.InlineKeyboard[0][0].Data)
	assert.Equal(t, "energy", mk.InlineKeyboard[1][0].Data)
}

func TestAdminStatusKeyboard(t *testing.T) {
	mk := adminStatusKeyboard(17)
	require.NotNil(t, mk)
	require.Len(t, mk.InlineKeyboard, 2)

	var seen []string
	for _, row := range mk.InlineKeyboard {
		for _, btn := range row {
			seen = append(seen, btn.Data)
		}
	}
	assert.Equal(t, []string{"17|ACCEPTED", "17|ON_THE_WAY", "17|DELIVERED", "17|CANCELED"}, seen)
}

func TestRepairReportText(t *testing.T) {
	text := repairReportText(orders.Report{Scanned: 12, Moved: 2, Cleared: 1})
	assert.Equal(t, "Проверено записей: 12, перенесено аудиторий: 2, очищено: 1", text)
}
