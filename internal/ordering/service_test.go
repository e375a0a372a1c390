package ordering

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/snackbot/internal/cart"
	"github.com/m3rciful/snackbot/internal/catalog"
	"github.com/m3rciful/snackbot/internal/orders"
	"github.com/m3rciful/snackbot/internal/session"
)

// fakeNotifier records outbound deliveries and can be told to fail per admin.
type fakeNotifier struct {
	mu         sync.Mutex
	orderCalls []int64
	textCalls  map[int64][]string
	failAdmins map[int64]bool
	failTexts  bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		textCalls:  make(map[int64][]string),
		failAdmins: make(map[int64]bool),
	}
}

func (f *fakeNotifier) NotifyOrder(_ context.Context, adminID int64, _ orders.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAdmins[adminID] {
		return fmt.Errorf("admin %d unreachable", adminID)
	}
	f.orderCalls = append(f.orderCalls, adminID)
	return nil
}

func (f *fakeNotifier) NotifyText(_ context.Context, userID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTexts {
		return errors.New("blocked by user")
	}
	f.textCalls[userID] = append(f.textCalls[userID], text)
	return nil
}

const testFee = 99

func newTestService(notifier Notifier, admins ...int64) (*Service, *orders.MemoryStore) {
	if len(admins) == 0 {
		admins = []int64{1000}
	}
	store := orders.NewMemoryStore()
	svc := New(session.NewStore(), store, catalog.Default(), testFee, admins, notifier)
	return svc, store
}

// submitReady drives a conversation to the point where Confirm may succeed.
func submitReady(t *testing.T, svc *Service, chatID int64) {
	t.Helper()
	svc.Start(chatID)
	reply := svc.Text(chatID, "429г")
	require.Equal(t, TextRoomAccepted, reply.Kind)
	_, err := svc.AddItem(chatID, "energy")
	require.NoError(t, err)
	_, err = svc.AddItem(chatID, "cola")
	require.NoError(t, err)
	_, err = svc.AddItem(chatID, "cola")
	require.NoError(t, err)
}

func TestAddItemUnknownRejected(t *testing.T) {
	svc, _ := newTestService(newFakeNotifier())
	_, err := svc.AddItem(1, "sushi")
	assert.ErrorIs(t, err, ErrUnknownItem)

	view := svc.ViewCart(1)
	assert.True(t, view.Empty)
}

func TestAddItemAccumulatesSubtotal(t *testing.T) {
	svc, _ := newTestService(newFakeNotifier())

	added, err := svc.AddItem(1, "energy")
	require.NoError(t, err)
	assert.Equal(t, "ЭНЕРГЕТИК", added.Item.Name)
	assert.Equal(t, 65, added.Subtotal)

	added, err = svc.AddItem(1, "cola")
	require.NoError(t, err)
	assert.Equal(t, 175, added.Subtotal)
}

func TestRemoveItemUpdatesView(t *testing.T) {
	svc, _ := newTestService(newFakeNotifier())
	_, err := svc.AddItem(1, "water")
	require.NoError(t, err)

	view := svc.RemoveItem(1, "water")
	assert.True(t, view.Empty)
	assert.Equal(t, 0, view.Subtotal)
	assert.Equal(t, testFee, view.Total)

	// Removing from an empty cart stays a no-op.
	view = svc.RemoveItem(1, "water")
	assert.True(t, view.Empty)
}

func TestViewCartTotals(t *testing.T) {
	svc, _ := newTestService(newFakeNotifier())
	_, err := svc.AddItem(7, "energy")
	require.NoError(t, err)
	_, err = svc.AddItem(7, "cola")
	require.NoError(t, err)
	_, err = svc.AddItem(7, "cola")
	require.NoError(t, err)

	view := svc.ViewCart(7)
	assert.Equal(t, 285, view.Subtotal)
	assert.Equal(t, 384, view.Total)
	assert.False(t, view.Empty)
}

func TestTextRoomValidation(t *testing.T) {
	svc, _ := newTestService(newFakeNotifier())
	svc.Start(1)

	reply := svc.Text(1, "abc")
	assert.Equal(t, TextRoomRejected, reply.Kind)

	// Still waiting: the next valid input lands.
	reply = svc.Text(1, "429г")
	require.Equal(t, TextRoomAccepted, reply.Kind)
	assert.Equal(t, "429Г", reply.Room)

	// Once the room is stored, stray text just brings the menu back.
	reply = svc.Text(1, "привет")
	assert.Equal(t, TextMenu, reply.Kind)
}

func TestTextNoteAndSkip(t *testing.T) {
	svc, store := newTestService(newFakeNotifier())
	submitReady(t, svc, 1)

	svc.RequestComment(1)
	reply := svc.Text(1, "без сдачи")
	assert.Equal(t, TextNoteSaved, reply.Kind)

	sub, err := svc.Confirm(context.Background(), 1, 42, "ivan")
	require.NoError(t, err)
	assert.Equal(t, "без сдачи", sub.Note)

	got, err := store.Get(context.Background(), sub.OrderID)
	require.NoError(t, err)
	require.NotNil(t, got.Note)
	assert.Equal(t, "без сдачи", *got.Note)

	// The skip token leaves the note empty.
	submitReady(t, svc, 2)
	svc.RequestComment(2)
	reply = svc.Text(2, SkipToken)
	assert.Equal(t, TextNoteSaved, reply.Kind)

	sub, err = svc.Confirm(context.Background(), 2, 43, "petr")
	require.NoError(t, err)
	assert.Empty(t, sub.Note)

	got, err = store.Get(context.Background(), sub.OrderID)
	require.NoError(t, err)
	assert.Nil(t, got.Note)
}

func TestCheckoutEmptyCartRefused(t *testing.T) {
	svc, _ := newTestService(newFakeNotifier())
	svc.Start(1)
	svc.Text(1, "429г")

	view := svc.Checkout(1)
	assert.Equal(t, CheckoutEmpty, view.Kind)

	// Refusal changes nothing: stray text still shows the menu.
	reply := svc.Text(1, "что-то")
	assert.Equal(t, TextMenu, reply.Kind)
}

func TestCheckoutWithoutRoomPrompts(t *testing.T) {
	svc, _ := newTestService(newFakeNotifier())
	_, err := svc.AddItem(1, "chips")
	require.NoError(t, err)

	view := svc.Checkout(1)
	assert.Equal(t, CheckoutNeedRoom, view.Kind)

	// The conversation now expects a room code.
	reply := svc.Text(1, "12b")
	require.Equal(t, TextRoomAccepted, reply.Kind)

	view = svc.Checkout(1)
	assert.Equal(t, CheckoutReady, view.Kind)
	assert.Equal(t, "12B", view.Room)
	assert.Equal(t, 70+testFee, view.Cart.Total)
}

func TestConfirmPersistsAndResets(t *testing.T) {
	notifier := newFakeNotifier()
	svc, store := newTestService(notifier, 1000, 2000)
	submitReady(t, svc, 1)

	sub, err := svc.Confirm(context.Background(), 1, 42, "ivan")
	require.NoError(t, err)
	assert.Equal(t, 285, sub.Subtotal)
	assert.Equal(t, 384, sub.Total)
	assert.Equal(t, "429Г", sub.Room)

	got, err := store.Get(context.Background(), sub.OrderID)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusNew, got.Status)
	assert.Equal(t, []cart.Entry{{ID: "energy", Qty: 1}, {ID: "cola", Qty: 2}}, got.Items.Entries())
	assert.Equal(t, 384, got.Total)

	assert.Equal(t, []int64{1000, 2000}, notifier.orderCalls)

	// Cart and note cleared, room kept.
	view := svc.ViewCart(1)
	assert.True(t, view.Empty)
	checkout := svc.Checkout(1)
	assert.Equal(t, CheckoutEmpty, checkout.Kind)

	_, err = svc.AddItem(1, "water")
	require.NoError(t, err)
	checkout = svc.Checkout(1)
	assert.Equal(t, CheckoutReady, checkout.Kind)
	assert.Equal(t, "429Г", checkout.Room)
}

func TestConfirmPreconditions(t *testing.T) {
	svc, _ := newTestService(newFakeNotifier())

	_, err := svc.Confirm(context.Background(), 1, 42, "ivan")
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.AddItem(1, "energy")
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background(), 1, 42, "ivan")
	assert.ErrorIs(t, err, ErrNoRoom)
}

func TestConfirmBroadcastContinuesPastFailures(t *testing.T) {
	notifier := newFakeNotifier()
	notifier.failAdmins[1000] = true
	svc, store := newTestService(notifier, 1000, 2000, 3000)
	submitReady(t, svc, 1)

	sub, err := svc.Confirm(context.Background(), 1, 42, "ivan")
	require.NoError(t, err, "submission succeeds even when an admin is unreachable")
	assert.Equal(t, []int64{2000, 3000}, notifier.orderCalls)

	_, err = store.Get(context.Background(), sub.OrderID)
	assert.NoError(t, err)
}

func TestSetStatusNotifiesSubmitter(t *testing.T) {
	notifier := newFakeNotifier()
	svc, _ := newTestService(notifier)
	submitReady(t, svc, 1)
	sub, err := svc.Confirm(context.Background(), 1, 42, "ivan")
	require.NoError(t, err)

	order, err := svc.SetStatus(context.Background(), sub.OrderID, orders.StatusOnTheWay)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusOnTheWay, order.Status)

	msgs := notifier.textCalls[42]
	require.Len(t, msgs, 1)
	assert.Equal(t, fmt.Sprintf("Статус твоего заказа #%d: 🛵 в пути", sub.OrderID), msgs[0])
}

func TestSetStatusNotFound(t *testing.T) {
	svc, _ := newTestService(newFakeNotifier())
	_, err := svc.SetStatus(context.Background(), 99, orders.StatusAccepted)
	assert.ErrorIs(t, err, orders.ErrNotFound)
}

func TestSetStatusNotifyFailureSwallowed(t *testing.T) {
	notifier := newFakeNotifier()
	svc, store := newTestService(notifier)
	submitReady(t, svc, 1)
	sub, err := svc.Confirm(context.Background(), 1, 42, "ivan")
	require.NoError(t, err)

	notifier.failTexts = true
	order, err := svc.SetStatus(context.Background(), sub.OrderID, orders.StatusCanceled)
	require.NoError(t, err, "update is committed regardless of notification outcome")
	assert.Equal(t, orders.StatusCanceled, order.Status)

	got, err := store.Get(context.Background(), sub.OrderID)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusCanceled, got.Status)
}

func TestSetStatusLenientTransitions(t *testing.T) {
	svc, _ := newTestService(newFakeNotifier())
	submitReady(t, svc, 1)
	sub, err := svc.Confirm(context.Background(), 1, 42, "ivan")
	require.NoError(t, err)

	// Any target is reachable from any current status, including backwards.
	for _, status := range []orders.Status{
		orders.StatusDelivered, orders.StatusAccepted, orders.StatusCanceled, orders.StatusOnTheWay,
	} {
		order, err := svc.SetStatus(context.Background(), sub.OrderID, status)
		require.NoError(t, err)
		assert.Equal(t, status, order.Status)
	}
}

func TestMaintenanceRunsRepair(t *testing.T) {
	svc, store := newTestService(newFakeNotifier())
	submitReady(t, svc, 1)
	sub, err := svc.Confirm(context.Background(), 1, 42, "ivan")
	require.NoError(t, err)
	store.SetItemsRaw(sub.OrderID, "455U")
	store.SetRoom(sub.OrderID, "")

	rep, err := svc.Maintenance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, orders.Report{Scanned: 1, Moved: 1}, rep)

	got, err := store.Get(context.Background(), sub.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "455U", got.Room)
	assert.True(t, got.Items.IsEmpty())
}
