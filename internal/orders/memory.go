package orders

import (
	"context"
	"sync"
	"time"

	"github.com/m3rciful/snackbot/internal/cart"
)

// MemoryStore is an in-memory Store with the same contract as PostgresStore.
// It backs tests and local development without a database.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*memoryRow
}

type memoryRow struct {
	order    Order
	itemsRaw string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, rows: make(map[int64]*memoryRow)}
}

// Insert assigns the next sequential id and stores the order with status NEW.
func (s *MemoryStore) Insert(_ context.Context, o NewOrder) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	now := time.Now()
	s.rows[id] = &memoryRow{
		order: Order{
			ID:        id,
			UserID:    o.UserID,
			Username:  o.Username,
			Room:      o.Room,
			Items:     o.Items.Clone(),
			Note:      o.Note,
			Total:     o.Total,
			Status:    StatusNew,
			CreatedAt: now,
			UpdatedAt: now,
		},
		itemsRaw: string(cart.EncodeSnapshot(o.Items)),
	}
	return id, nil
}

// UpdateStatus mutates status and updated_at under the store lock.
func (s *MemoryStore) UpdateStatus(_ context.Context, id int64, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return ErrNotFound
	}
	row.order.Status = status
	row.order.UpdatedAt = time.Now()
	return nil
}

// Get returns a copy of the stored order.
func (s *MemoryStore) Get(_ context.Context, id int64) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	o := row.order
	o.Items = cart.DecodeSnapshot([]byte(row.itemsRaw))
	return o, nil
}

// SetItemsRaw overwrites the stored snapshot verbatim. Tests use it to plant
// legacy corruption.
func (s *MemoryStore) SetItemsRaw(id int64, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[id]; ok {
		row.itemsRaw = raw
	}
}

// SetRoom overwrites the stored room value.
func (s *MemoryStore) SetRoom(id int64, room string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.rows[id]; ok {
		row.order.Room = room
	}
}

// ScanRaw yields all records in id order.
func (s *MemoryStore) ScanRaw(_ context.Context) ([]RawRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RawRecord, 0, len(s.rows))
	for id := int64(1); id < s.nextID; id++ {
		row, ok := s.rows[id]
		if !ok {
			continue
		}
		out = append(out, RawRecord{ID: id, Room: row.order.Room, ItemsRaw: row.itemsRaw})
	}
	return out, nil
}

// RepairRecord rewrites room and items of one record.
func (s *MemoryStore) RepairRecord(_ context.Context, id int64, room, itemsRaw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return ErrNotFound
	}
	row.order.Room = room
	row.itemsRaw = itemsRaw
	row.order.UpdatedAt = time.Now()
	return nil
}
