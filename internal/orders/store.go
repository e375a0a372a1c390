package orders

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an order id does not exist.
var ErrNotFound = errors.New("orders: order not found")

// Store is the durable record contract for orders. Implementations must make
// Insert and UpdateStatus short atomic operations: UpdateStatus in particular
// may not be a fetch-then-write, since multiple admins can race on one order.
type Store interface {
	// Insert persists a new order with status NEW and returns its id.
	Insert(ctx context.Context, o NewOrder) (int64, error)
	// UpdateStatus atomically sets status and updated_at.
	// Returns ErrNotFound when the id is absent; no other effect in that case.
	UpdateStatus(ctx context.Context, id int64, status Status) error
	// Get returns the order by id or ErrNotFound.
	Get(ctx context.Context, id int64) (Order, error)
}

// RawRecord is the undecoded storage shape of one order row, exposed for the
// maintenance repair which must inspect corrupt item snapshots verbatim.
type RawRecord struct {
	ID       int64
	Room     string
	ItemsRaw string
}

// Repairable is implemented by stores that support the maintenance scan.
type Repairable interface {
	// ScanRaw yields every stored record in id order.
	ScanRaw(ctx context.Context) ([]RawRecord, error)
	// RepairRecord overwrites the room and items columns of one record.
	RepairRecord(ctx context.Context, id int64, room, itemsRaw string) error
}
