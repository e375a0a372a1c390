package ordering

import (
	"github.com/m3rciful/snackbot/internal/cart"
	"github.com/m3rciful/snackbot/internal/catalog"
)

// ItemAdded reports the result of adding one item to a cart.
type ItemAdded struct {
	Item     catalog.Item
	Subtotal int
}

// CartView is a render-ready snapshot of a conversation's cart.
type CartView struct {
	Cart     *cart.Cart
	Subtotal int
	Fee      int
	Total    int
	Empty    bool
}

// CheckoutKind distinguishes the checkout outcomes.
type CheckoutKind int

const (
	// CheckoutEmpty means checkout was refused: nothing in the cart.
	CheckoutEmpty CheckoutKind = iota
	// CheckoutNeedRoom means the room prompt was issued first.
	CheckoutNeedRoom
	// CheckoutReady means the order summary can be shown.
	CheckoutReady
)

// CheckoutView is the result of a checkout action.
type CheckoutView struct {
	Kind CheckoutKind
	Room string
	Cart CartView
}

// TextKind distinguishes replies to free-text input.
type TextKind int

const (
	// TextMenu means the text was not expected; show the menu.
	TextMenu TextKind = iota
	// TextRoomAccepted means the room was validated and stored.
	TextRoomAccepted
	// TextRoomRejected means the room input failed validation; still waiting.
	TextRoomRejected
	// TextNoteSaved means the note (possibly skipped) was stored.
	TextNoteSaved
)

// TextReply is the result of routing one free-text message.
type TextReply struct {
	Kind TextKind
	Room string
	Cart CartView
}

// Submission reports a successfully persisted order.
type Submission struct {
	OrderID  int64
	Room     string
	Subtotal int
	Fee      int
	Total    int
	Note     string
}
