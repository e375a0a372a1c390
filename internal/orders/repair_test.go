package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		rec  RawRecord
		want repairAction
	}{
		{"valid snapshot", RawRecord{ItemsRaw: `{"energy":1}`}, repairKeep},
		{"empty object", RawRecord{ItemsRaw: "{}"}, repairKeep},
		{"empty string", RawRecord{ItemsRaw: ""}, repairKeep},
		{"room shaped, room unset", RawRecord{ItemsRaw: "455U"}, repairMove},
		{"room shaped, room set", RawRecord{Room: "429Г", ItemsRaw: "455U"}, repairClear},
		{"garbage", RawRecord{ItemsRaw: "%%%"}, repairClear},
		{"json array", RawRecord{ItemsRaw: `["energy"]`}, repairClear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.rec))
		})
	}
}

func TestRepairMixedFixture(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	// Healthy order, must survive untouched.
	healthy, err := st.Insert(ctx, newTestOrder("429Г"))
	require.NoError(t, err)

	// Room code stored in the items column, room still unset.
	movable, err := st.Insert(ctx, newTestOrder(""))
	require.NoError(t, err)
	st.SetItemsRaw(movable, "455u")

	// Room code in the items column but room already filled: clear only.
	occupied, err := st.Insert(ctx, newTestOrder("100A"))
	require.NoError(t, err)
	st.SetItemsRaw(occupied, "455U")

	// Plain garbage.
	garbage, err := st.Insert(ctx, newTestOrder("7B"))
	require.NoError(t, err)
	st.SetItemsRaw(garbage, "not json at all")

	rep, err := Repair(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, Report{Scanned: 4, Moved: 1, Cleared: 2}, rep)

	kept, err := st.Get(ctx, healthy)
	require.NoError(t, err)
	assert.Equal(t, testItems(), kept.Items)
	assert.Equal(t, "429Г", kept.Room)

	moved, err := st.Get(ctx, movable)
	require.NoError(t, err)
	assert.Equal(t, "455U", moved.Room, "relocated value is uppercased")
	assert.True(t, moved.Items.IsEmpty())

	cleared, err := st.Get(ctx, occupied)
	require.NoError(t, err)
	assert.Equal(t, "100A", cleared.Room, "existing room is never overwritten")
	assert.True(t, cleared.Items.IsEmpty())

	junk, err := st.Get(ctx, garbage)
	require.NoError(t, err)
	assert.True(t, junk.Items.IsEmpty())
}

func TestRepairIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	id, err := st.Insert(ctx, newTestOrder(""))
	require.NoError(t, err)
	st.SetItemsRaw(id, "455U")

	first, err := Repair(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Moved)

	second, err := Repair(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, Report{Scanned: 1}, second)
}
