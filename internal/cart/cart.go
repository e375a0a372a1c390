// Package cart implements quantity bookkeeping and price computation over
// a catalog. A cart tolerates ids that are no longer in the catalog: they are
// carried but contribute nothing to totals or rendering.
package cart

import (
	"fmt"

	"github.com/m3rciful/snackbot/internal/catalog"
)

// EmptyPlaceholder is rendered instead of lines when the cart has no
// catalog-known items.
const EmptyPlaceholder = "—"

// Cart holds positive id→quantity entries and remembers the order in which
// ids were first added. Rendering and totals follow that insertion order,
// not the catalog order.
type Cart struct {
	qty   map[string]int
	order []string
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{qty: make(map[string]int)}
}

// Clone returns an independent copy of the cart. A nil cart clones to an
// empty one.
func (c *Cart) Clone() *Cart {
	if c == nil {
		return New()
	}
	out := &Cart{
		qty:   make(map[string]int, len(c.qty)),
		order: append([]string(nil), c.order...),
	}
	for id, qty := range c.qty {
		out.qty[id] = qty
	}
	return out
}

// Add increments the quantity for id by one, inserting it if absent.
// Unknown ids are accepted; totals and rendering skip them.
func (c *Cart) Add(id string) {
	if id == "" {
		return
	}
	if _, ok := c.qty[id]; !ok {
		c.order = append(c.order, id)
	}
	c.qty[id]++
}

// RemoveOne decrements the quantity for id, dropping the entry when it would
// reach zero. Absent ids are a no-op.
func (c *Cart) RemoveOne(id string) {
	qty, ok := c.qty[id]
	if !ok {
		return
	}
	if qty <= 1 {
		delete(c.qty, id)
		for i, oid := range c.order {
			if oid == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
		return
	}
	c.qty[id] = qty - 1
}

// Quantity returns the stored quantity for id, zero when absent.
func (c *Cart) Quantity(id string) int {
	return c.qty[id]
}

// Entry is one id→quantity pair in insertion order.
type Entry struct {
	ID  string
	Qty int
}

// Entries lists the cart contents in insertion order, catalog-unknown ids
// included.
func (c *Cart) Entries() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		entries = append(entries, Entry{ID: id, Qty: c.qty[id]})
	}
	return entries
}

// IsEmpty reports whether the cart holds no entries at all.
func (c *Cart) IsEmpty() bool {
	return len(c.qty) == 0
}

// Subtotal sums price×qty over entries present in the catalog.
func (c *Cart) Subtotal(cat *catalog.Catalog) int {
	total := 0
	for _, id := range c.order {
		if it, ok := cat.Lookup(id); ok {
			total += it.Price * c.qty[id]
		}
	}
	return total
}

// GrandTotal is the subtotal plus the flat delivery fee.
func (c *Cart) GrandTotal(cat *catalog.Catalog, deliveryFee int) int {
	return c.Subtotal(cat) + deliveryFee
}

// Line is one display-ready cart row.
type Line struct {
	Item  catalog.Item
	Qty   int
	Total int
}

// Lines returns display rows for catalog-known entries in insertion order.
func (c *Cart) Lines(cat *catalog.Catalog) []Line {
	var lines []Line
	for _, id := range c.order {
		it, ok := cat.Lookup(id)
		if !ok {
			continue
		}
		qty := c.qty[id]
		lines = append(lines, Line{Item: it, Qty: qty, Total: it.Price * qty})
	}
	return lines
}

// FormatLines renders the cart one item per line, or the placeholder when
// nothing known is inside.
func (c *Cart) FormatLines(cat *catalog.Catalog) string {
	lines := c.Lines(cat)
	if len(lines) == 0 {
		return EmptyPlaceholder
	}
	out := ""
	for i, ln := range lines {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("• %s ×%d = %d₽", ln.Item.Name, ln.Qty, ln.Total)
	}
	return out
}
