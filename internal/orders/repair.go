package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m3rciful/snackbot/core/logger"
	"github.com/m3rciful/snackbot/internal/session"
)

// Report summarizes one maintenance repair run.
type Report struct {
	Scanned int
	Moved   int
	Cleared int
}

type repairAction int

const (
	repairKeep repairAction = iota
	// repairMove relocates a room-shaped items value into the room column.
	repairMove
	// repairClear drops an unrecoverable items value.
	repairClear
)

const emptySnapshot = "{}"

// classify decides what to do with one stored record. A valid snapshot is
// kept; a room-shaped value is moved only when the room column is still
// unset; everything else is cleared.
func classify(rec RawRecord) repairAction {
	raw := strings.TrimSpace(rec.ItemsRaw)
	if raw == "" {
		// Decodes to an empty cart already; nothing to fix.
		return repairKeep
	}
	var m map[string]int
	if err := json.Unmarshal([]byte(raw), &m); err == nil {
		return repairKeep
	}
	if session.LooksLikeRoom(raw) && strings.TrimSpace(rec.Room) == "" {
		return repairMove
	}
	return repairClear
}

// Repair scans every stored order and fixes recognizable legacy corruption:
// a room code stored where cart data belongs is relocated to the room column,
// anything else unparsable is cleared to an empty snapshot.
func Repair(ctx context.Context, store Repairable) (Report, error) {
	records, err := store.ScanRaw(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("repair scan: %w", err)
	}

	rep := Report{Scanned: len(records)}
	for _, rec := range records {
		switch classify(rec) {
		case repairKeep:
			continue
		case repairMove:
			room := strings.ToUpper(strings.TrimSpace(rec.ItemsRaw))
			if err := store.RepairRecord(ctx, rec.ID, room, emptySnapshot); err != nil {
				return rep, err
			}
			rep.Moved++
		case repairClear:
			if err := store.RepairRecord(ctx, rec.ID, rec.Room, emptySnapshot); err != nil {
				return rep, err
			}
			rep.Cleared++
		}
	}

	logger.SVCOrders.Info("repair finished",
		slog.String("event", "orders.repair"),
		slog.Int("scanned", rep.Scanned),
		slog.Int("moved", rep.Moved),
		slog.Int("cleared", rep.Cleared),
	)
	return rep, nil
}
