// Package orders defines the durable order record, its status lifecycle, and
// the store contract backing it.
package orders

import (
	"fmt"
	"time"

	"github.com/m3rciful/snackbot/internal/cart"
)

// Status is the lifecycle state of a submitted order.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusAccepted  Status = "ACCEPTED"
	StatusOnTheWay  Status = "ON_THE_WAY"
	StatusDelivered Status = "DELIVERED"
	StatusCanceled  Status = "CANCELED"
)

// TargetStatuses lists the statuses an admin may move an order into.
// Transitions are deliberately unordered: any target is reachable from any
// current status, matching the product behaviour.
var TargetStatuses = []Status{StatusAccepted, StatusOnTheWay, StatusDelivered, StatusCanceled}

var statusLabels = map[Status]string{
	StatusNew:       "🆕 новый",
	StatusAccepted:  "✅ принят",
	StatusOnTheWay:  "🛵 в пути",
	StatusDelivered: "📦 доставлен",
	StatusCanceled:  "🚫 отменён",
}

// ParseStatus validates a raw status token.
func ParseStatus(raw string) (Status, error) {
	st := Status(raw)
	if _, ok := statusLabels[st]; !ok {
		return "", fmt.Errorf("orders: unknown status %q", raw)
	}
	return st, nil
}

// Label returns the human-readable form shown to users. Unknown statuses
// fall back to the raw value.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Order is a durable record of a submitted cart. Items decode defensively:
// a corrupt snapshot yields an empty cart, never an error.
type Order struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Username  string    `db:"username"`
	Room      string    `db:"room"`
	Items     *cart.Cart `db:"-"`
	Note      *string   `db:"note"`
	Total     int       `db:"total"`
	Status    Status    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewOrder carries the fields of an order about to be persisted.
type NewOrder struct {
	UserID   int64
	Username string
	Room     string
	Items    *cart.Cart
	Note     *string
	Total    int
}
