package logger

import (
	"testing"

	"log/slog"
)

func TestComponentLoggersUsableBeforeInit(t *testing.T) {
	components := map[string]*slog.Logger{
		"L":           L,
		"DB":          DB,
		"TG":          TG,
		"MIG":         MIG,
		"TWire":       TWire,
		"SVCOrders":   SVCOrders,
		"SVCOrdering": SVCOrdering,
	}
	for name, log := range components {
		if log == nil {
			t.Fatalf("component logger %s is nil before InitLogger", name)
		}
	}

	// Must not panic when InitLogger has not run.
	SVCOrders.Info("order event without init", slog.Int64("order_id", 1))
	SVCOrdering.Warn("service event without init", slog.Int64("admin_id", 2))
}
