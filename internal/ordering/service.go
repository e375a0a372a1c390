// Package ordering drives the conversation state machine, order submission,
// and the admin status protocol. It is transport-free: handlers feed it typed
// events and render the typed results it returns.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/m3rciful/snackbot/core/logger"
	"github.com/m3rciful/snackbot/internal/cart"
	"github.com/m3rciful/snackbot/internal/catalog"
	"github.com/m3rciful/snackbot/internal/orders"
	"github.com/m3rciful/snackbot/internal/session"
)

// SkipToken is the distinguished literal that skips the order note.
const SkipToken = "/skip"

var (
	// ErrUnknownItem rejects item ids that are not in the catalog. They can
	// only arrive through forged or stale callbacks.
	ErrUnknownItem = errors.New("ordering: unknown catalog item")
	// ErrEmptyCart refuses submission of an empty cart.
	ErrEmptyCart = errors.New("ordering: cart is empty")
	// ErrNoRoom refuses submission without a delivery room.
	ErrNoRoom = errors.New("ordering: room is not set")
)

// Notifier is the outbound delivery capability the service depends on.
// Implementations send over the chat transport.
type Notifier interface {
	// NotifyOrder delivers a new-order summary with status actions attached.
	NotifyOrder(ctx context.Context, adminID int64, o orders.Order) error
	// NotifyText delivers a plain text message to a user.
	NotifyText(ctx context.Context, userID int64, text string) error
}

// Service wires sessions, the catalog, the order store, and the notifier.
type Service struct {
	sessions session.Store
	store    orders.Store
	catalog  *catalog.Catalog
	fee      int
	admins   []int64
	notifier Notifier
}

// New constructs the ordering service. The admin set and delivery fee come
// from static configuration resolved at startup.
func New(sessions session.Store, store orders.Store, cat *catalog.Catalog, deliveryFee int, admins []int64, notifier Notifier) *Service {
	return &Service{
		sessions: sessions,
		store:    store,
		catalog:  cat,
		fee:      deliveryFee,
		admins:   admins,
		notifier: notifier,
	}
}

// Catalog exposes the menu for rendering.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// DeliveryFee exposes the flat fee for rendering.
func (s *Service) DeliveryFee() int {
	return s.fee
}

func (s *Service) cartView(c *cart.Cart) CartView {
	subtotal := c.Subtotal(s.catalog)
	return CartView{
		Cart:     c.Clone(),
		Subtotal: subtotal,
		Fee:      s.fee,
		Total:    subtotal + s.fee,
		Empty:    c.IsEmpty(),
	}
}

// Start begins (or restarts) a conversation: the next text input is the room.
func (s *Service) Start(chatID int64) {
	s.sessions.Update(chatID, func(sess *session.Session) {
		sess.Awaiting = session.AwaitingRoom
	})
}

// AddItem puts one unit of the item into the cart. Ids outside the catalog
// are rejected at this boundary.
func (s *Service) AddItem(chatID int64, itemID string) (ItemAdded, error) {
	item, ok := s.catalog.Lookup(itemID)
	if !ok {
		return ItemAdded{}, fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	var subtotal int
	s.sessions.Update(chatID, func(sess *session.Session) {
		sess.Cart.Add(itemID)
		subtotal = sess.Cart.Subtotal(s.catalog)
	})
	return ItemAdded{Item: item, Subtotal: subtotal}, nil
}

// RemoveItem takes one unit of the item out of the cart. Absent ids no-op.
func (s *Service) RemoveItem(chatID int64, itemID string) CartView {
	var view CartView
	s.sessions.Update(chatID, func(sess *session.Session) {
		sess.Cart.RemoveOne(itemID)
		view = s.cartView(sess.Cart)
	})
	return view
}

// ViewCart snapshots the cart for rendering.
func (s *Service) ViewCart(chatID int64) CartView {
	var view CartView
	s.sessions.Peek(chatID, func(sess *session.Session) {
		view = s.cartView(sess.Cart)
	})
	return view
}

// ChangeRoom switches the conversation to expect a new room code.
func (s *Service) ChangeRoom(chatID int64) {
	s.sessions.Update(chatID, func(sess *session.Session) {
		sess.Awaiting = session.AwaitingRoom
	})
}

// RequestComment switches the conversation to expect an order note.
func (s *Service) RequestComment(chatID int64) {
	s.sessions.Update(chatID, func(sess *session.Session) {
		sess.Awaiting = session.AwaitingComment
	})
}

// Checkout validates the order preconditions. An empty cart is refused with
// no state change; a missing room flips the conversation into the room
// prompt; otherwise the summary is ready for confirmation.
func (s *Service) Checkout(chatID int64) CheckoutView {
	var view CheckoutView
	s.sessions.Update(chatID, func(sess *session.Session) {
		if sess.Cart.IsEmpty() {
			view = CheckoutView{Kind: CheckoutEmpty}
			return
		}
		if sess.Room == "" {
			sess.Awaiting = session.AwaitingRoom
			view = CheckoutView{Kind: CheckoutNeedRoom}
			return
		}
		view = CheckoutView{
			Kind: CheckoutReady,
			Room: sess.Room,
			Cart: s.cartView(sess.Cart),
		}
	})
	return view
}

// Text routes one free-text message according to the awaiting mode.
func (s *Service) Text(chatID int64, text string) TextReply {
	var reply TextReply
	s.sessions.Update(chatID, func(sess *session.Session) {
		switch sess.Awaiting {
		case session.AwaitingRoom:
			room, ok := session.NormalizeRoom(text)
			if !ok {
				// Re-prompt; the conversation keeps waiting for a room.
				reply = TextReply{Kind: TextRoomRejected}
				return
			}
			sess.Room = room
			sess.Awaiting = session.AwaitingNone
			reply = TextReply{Kind: TextRoomAccepted, Room: room}
		case session.AwaitingComment:
			if text == SkipToken {
				sess.Note = ""
			} else {
				sess.Note = text
			}
			sess.Awaiting = session.AwaitingNone
			reply = TextReply{Kind: TextNoteSaved, Cart: s.cartView(sess.Cart)}
		default:
			reply = TextReply{Kind: TextMenu}
		}
	})
	return reply
}

// Confirm submits the order: persist with status NEW, broadcast to every
// configured admin best-effort, then clear the cart and note. The room is
// kept for the next order. Success is defined as "record persisted";
// individual notification failures are logged and never abort.
func (s *Service) Confirm(ctx context.Context, chatID, userID int64, username string) (Submission, error) {
	var (
		snapshot *cart.Cart
		room     string
		note     string
	)
	s.sessions.Peek(chatID, func(sess *session.Session) {
		snapshot = sess.Cart.Clone()
		room = sess.Room
		note = sess.Note
	})

	if snapshot.IsEmpty() {
		return Submission{}, ErrEmptyCart
	}
	if room == "" {
		return Submission{}, ErrNoRoom
	}

	subtotal := snapshot.Subtotal(s.catalog)
	total := subtotal + s.fee

	var notePtr *string
	if note != "" {
		notePtr = &note
	}
	orderID, err := s.store.Insert(ctx, orders.NewOrder{
		UserID:   userID,
		Username: username,
		Room:     room,
		Items:    snapshot,
		Note:     notePtr,
		Total:    total,
	})
	if err != nil {
		return Submission{}, fmt.Errorf("submit order: %w", err)
	}

	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		// The record is persisted; rebuild the summary locally for broadcast.
		order = orders.Order{
			ID:       orderID,
			UserID:   userID,
			Username: username,
			Room:     room,
			Items:    snapshot,
			Note:     notePtr,
			Total:    total,
			Status:   orders.StatusNew,
		}
	}
	s.broadcastOrder(ctx, order)

	s.sessions.Update(chatID, func(sess *session.Session) {
		sess.ResetOrder()
	})

	return Submission{
		OrderID:  orderID,
		Room:     room,
		Subtotal: subtotal,
		Fee:      s.fee,
		Total:    total,
		Note:     note,
	}, nil
}

// broadcastOrder delivers the order to every admin, continuing past
// individual failures.
func (s *Service) broadcastOrder(ctx context.Context, o orders.Order) {
	for _, adminID := range s.admins {
		if err := s.notifier.NotifyOrder(ctx, adminID, o); err != nil {
			logger.SVCOrdering.Warn("admin notify failed",
				slog.String("event", "ordering.notify_admin"),
				slog.Int64("order_id", o.ID),
				slog.Int64("admin_id", adminID),
				slog.String("err", err.Error()),
			)
		}
	}
}

// SetStatus applies an admin status transition. The policy is lenient: any
// target status is reachable from any current one. Not-found is reported to
// the caller only; submitter notification failures are swallowed because the
// update has already committed.
func (s *Service) SetStatus(ctx context.Context, orderID int64, status orders.Status) (orders.Order, error) {
	if err := s.store.UpdateStatus(ctx, orderID, status); err != nil {
		return orders.Order{}, err
	}

	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		return orders.Order{}, err
	}

	msg := fmt.Sprintf("Статус твоего заказа #%d: %s", order.ID, status.Label())
	if err := s.notifier.NotifyText(ctx, order.UserID, msg); err != nil {
		logger.SVCOrdering.Warn("submitter notify failed",
			slog.String("event", "ordering.notify_user"),
			slog.Int64("order_id", order.ID),
			slog.Int64("user_id", order.UserID),
			slog.String("err", err.Error()),
		)
	}
	return order, nil
}

// Maintenance runs the store repair scan. Only stores exposing the raw scan
// support it.
func (s *Service) Maintenance(ctx context.Context) (orders.Report, error) {
	repairable, ok := s.store.(orders.Repairable)
	if !ok {
		return orders.Report{}, errors.New("ordering: store does not support repair")
	}
	return orders.Repair(ctx, repairable)
}
