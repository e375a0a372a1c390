package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/snackbot/core/logger"
	"github.com/m3rciful/snackbot/internal/cart"
)

// PostgresStore persists orders in the migrated orders table.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an open sqlx connection.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type orderRow struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Username  string    `db:"username"`
	Room      string    `db:"room"`
	ItemsJSON string    `db:"items_json"`
	Note      *string   `db:"note"`
	Total     int       `db:"total"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// decodeRow converts a raw row into a typed Order. All defensive parsing of
// the items snapshot happens here; the result is always a sane structure.
func decodeRow(r orderRow) Order {
	return Order{
		ID:        r.ID,
		UserID:    r.UserID,
		Username:  r.Username,
		Room:      r.Room,
		Items:     cart.DecodeSnapshot([]byte(r.ItemsJSON)),
		Note:      r.Note,
		Total:     r.Total,
		Status:    Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Insert persists a new order with status NEW.
func (s *PostgresStore) Insert(ctx context.Context, o NewOrder) (int64, error) {
	const q = `
		INSERT INTO orders (user_id, username, room, items_json, note, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id`

	start := time.Now()
	var id int64
	err := s.db.QueryRowContext(ctx, q,
		o.UserID, o.Username, o.Room, string(cart.EncodeSnapshot(o.Items)), o.Note, o.Total, string(StatusNew),
	).Scan(&id)
	if err != nil {
		logger.SVCOrders.Error("order insert failed",
			slog.String("event", "orders.insert"),
			slog.Int64("user_id", o.UserID),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("insert order: %w", err)
	}
	logger.SVCOrders.Info("order created",
		slog.String("event", "orders.insert"),
		slog.Int64("order_id", id),
		slog.Int64("user_id", o.UserID),
		slog.Int("total", o.Total),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return id, nil
}

// UpdateStatus performs a single atomic status update. There is no
// fetch-then-write: concurrent admins racing on one order both land on the
// store's row lock and the last update wins.
func (s *PostgresStore) UpdateStatus(ctx context.Context, id int64, status Status) error {
	const q = `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`

	res, err := s.db.ExecContext(ctx, q, id, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	logger.SVCOrders.Info("order status updated",
		slog.String("event", "orders.status"),
		slog.Int64("order_id", id),
		slog.String("order_status", string(status)),
	)
	return nil
}

// Get loads one order. Items decoding never fails; see decodeRow.
func (s *PostgresStore) Get(ctx context.Context, id int64) (Order, error) {
	const q = `
		SELECT id, user_id, username, room, items_json, note, total, status, created_at, updated_at
		FROM orders WHERE id = $1`

	var row orderRow
	if err := s.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	return decodeRow(row), nil
}

// ScanRaw returns every row undecoded for the maintenance repair.
func (s *PostgresStore) ScanRaw(ctx context.Context) ([]RawRecord, error) {
	const q = `SELECT id, room, items_json FROM orders ORDER BY id`

	rows, err := s.db.QueryxContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	defer rows.Close()

	var out []RawRecord
	for rows.Next() {
		var rec RawRecord
		if err := rows.Scan(&rec.ID, &rec.Room, &rec.ItemsRaw); err != nil {
			return nil, fmt.Errorf("scan orders: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	return out, nil
}

// RepairRecord rewrites the room and items columns of one row.
func (s *PostgresStore) RepairRecord(ctx context.Context, id int64, room, itemsRaw string) error {
	const q = `UPDATE orders SET room = $2, items_json = $3, updated_at = now() WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, q, id, room, itemsRaw); err != nil {
		return fmt.Errorf("repair order %d: %w", id, err)
	}
	return nil
}
