package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/snackbot/internal/catalog"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(
		catalog.Item{ID: "energy", Name: "ЭНЕРГЕТИК", Price: 65},
		catalog.Item{ID: "cola", Name: "КОЛА (ориг)", Price: 110},
		catalog.Item{ID: "water", Name: "ВОДА", Price: 44},
	)
}

func build(ids ...string) *Cart {
	c := New()
	for _, id := range ids {
		c.Add(id)
	}
	return c
}

func TestAddIncrementsAndInserts(t *testing.T) {
	c := build("energy", "energy", "cola")

	assert.Equal(t, 2, c.Quantity("energy"))
	assert.Equal(t, 1, c.Quantity("cola"))
}

func TestAddRemoveRoundTrip(t *testing.T) {
	c := build("cola")

	before := c.Clone()
	c.Add("energy")
	c.RemoveOne("energy")

	assert.Equal(t, before, c)
}

func TestRemoveOneDeletesAtQuantityOne(t *testing.T) {
	c := build("energy")
	c.RemoveOne("energy")

	assert.Zero(t, c.Quantity("energy"))
	assert.Empty(t, c.Entries(), "entry must be dropped, never kept at zero")
	assert.True(t, c.IsEmpty())
}

func TestRemoveOneAbsentIsNoop(t *testing.T) {
	c := build("cola")
	c.RemoveOne("energy")

	assert.Equal(t, []Entry{{ID: "cola", Qty: 1}}, c.Entries())
}

func TestNoZeroOrNegativeQuantities(t *testing.T) {
	c := New()
	for i := 0; i < 5; i++ {
		c.Add("water")
	}
	for i := 0; i < 10; i++ {
		c.RemoveOne("water")
	}
	for _, e := range c.Entries() {
		assert.Positive(t, e.Qty, "item %s", e.ID)
	}
}

func TestSubtotalSkipsUnknownIDs(t *testing.T) {
	cat := testCatalog()
	c := build("energy", "cola", "cola", "discontinued", "discontinued", "discontinued")

	assert.Equal(t, 65+2*110, c.Subtotal(cat))
}

func TestGrandTotalReferenceOrder(t *testing.T) {
	cat := testCatalog()
	c := build("energy", "cola", "cola")

	// 65 + 2×110 + 99 = 384
	assert.Equal(t, 384, c.GrandTotal(cat, 99))
}

func TestLinesFollowInsertionOrder(t *testing.T) {
	cat := testCatalog()
	// water first even though the catalog defines energy before it.
	c := build("water", "energy", "ghost", "energy")

	lines := c.Lines(cat)
	require.Len(t, lines, 2)
	assert.Equal(t, "water", lines[0].Item.ID)
	assert.Equal(t, 44, lines[0].Total)
	assert.Equal(t, "energy", lines[1].Item.ID)
	assert.Equal(t, 130, lines[1].Total)
}

func TestRemoveReaddMovesToEnd(t *testing.T) {
	cat := testCatalog()
	c := build("water", "energy")

	// A fully removed item re-enters at the back of the list.
	c.RemoveOne("water")
	c.Add("water")

	lines := c.Lines(cat)
	require.Len(t, lines, 2)
	assert.Equal(t, "energy", lines[0].Item.ID)
	assert.Equal(t, "water", lines[1].Item.ID)
}

func TestFormatLines(t *testing.T) {
	cat := testCatalog()

	c := build("energy", "energy")
	assert.Equal(t, "• ЭНЕРГЕТИК ×2 = 130₽", c.FormatLines(cat))

	empty := New()
	assert.Equal(t, EmptyPlaceholder, empty.FormatLines(cat))

	// Only unknown ids renders like an empty cart.
	ghosts := build("ghost")
	assert.Equal(t, EmptyPlaceholder, ghosts.FormatLines(cat))
}
