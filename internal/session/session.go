// Package session keeps per-conversation ordering state: the cart being
// assembled, the delivery room, an optional note, and which free-text input
// the conversation currently expects.
package session

import "github.com/m3rciful/snackbot/internal/cart"

// Awaiting identifies the free-text input mode of a conversation.
type Awaiting string

const (
	// AwaitingNone means the user is browsing the menu.
	AwaitingNone Awaiting = "none"
	// AwaitingRoom means the next text message is treated as a room code.
	AwaitingRoom Awaiting = "room"
	// AwaitingComment means the next text message is treated as an order note.
	AwaitingComment Awaiting = "comment"
)

// Session is the ephemeral state of one conversation. It lives for the
// process lifetime; only ResetOrder clears it partially.
type Session struct {
	Room     string
	Cart     *cart.Cart
	Note     string
	Awaiting Awaiting
}

// NewSession returns the state of a conversation seen for the first time:
// empty cart, no room yet, expecting the room code.
func NewSession() *Session {
	return &Session{
		Cart:     cart.New(),
		Awaiting: AwaitingRoom,
	}
}

// ResetOrder clears the cart and note after a successful submission.
// The room survives so repeat orders skip the location prompt.
func (s *Session) ResetOrder() {
	s.Cart = cart.New()
	s.Note = ""
	s.Awaiting = AwaitingNone
}
