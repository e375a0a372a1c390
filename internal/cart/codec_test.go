package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSnapshotEmpty(t *testing.T) {
	assert.Equal(t, "{}", string(EncodeSnapshot(nil)))
	assert.Equal(t, "{}", string(EncodeSnapshot(New())))
}

func TestEncodeSnapshotInsertionOrder(t *testing.T) {
	// "water" was added first, so it leads the document even though it
	// sorts after the other keys.
	c := build("water", "energy", "cola", "cola")
	assert.Equal(t, `{"water":1,"energy":1,"cola":2}`, string(EncodeSnapshot(c)))
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := build("cola", "energy", "cola")
	got := DecodeSnapshot(EncodeSnapshot(c))
	assert.Equal(t, c, got)
	assert.Equal(t, []Entry{{ID: "cola", Qty: 2}, {ID: "energy", Qty: 1}}, got.Entries())
}

func TestDecodeSnapshotKeepsDocumentOrder(t *testing.T) {
	c := DecodeSnapshot([]byte(`{"water": 2, "energy": 1}`))
	assert.Equal(t, []Entry{{ID: "water", Qty: 2}, {ID: "energy", Qty: 1}}, c.Entries())
}

func TestDecodeSnapshotDefensive(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"room-shaped leftover", "455U"},
		{"quoted string", `"455U"`},
		{"json array", `["energy","cola"]`},
		{"truncated object", `{"energy": 1`},
		{"non-numeric quantity", `{"energy": "two"}`},
		{"plain garbage", "%%%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DecodeSnapshot([]byte(tt.raw))
			require.NotNil(t, c)
			assert.True(t, c.IsEmpty())
		})
	}
}

func TestDecodeSnapshotEmptyInput(t *testing.T) {
	assert.True(t, DecodeSnapshot(nil).IsEmpty())
	assert.True(t, DecodeSnapshot([]byte("")).IsEmpty())
}

func TestDecodeSnapshotDropsNonPositive(t *testing.T) {
	c := DecodeSnapshot([]byte(`{"energy": 2, "cola": 0, "water": -3, "": 1}`))
	assert.Equal(t, []Entry{{ID: "energy", Qty: 2}}, c.Entries())
}
