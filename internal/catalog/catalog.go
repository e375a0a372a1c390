// Package catalog holds the fixed set of orderable items with prices.
package catalog

// Item is a single orderable position. Price is in minor currency units.
type Item struct {
	ID    string
	Name  string
	Price int
}

// Catalog is an immutable, ordered collection of items. Order of definition
// is preserved for rendering.
type Catalog struct {
	items []Item
	index map[string]Item
}

// New builds a catalog from the given items. Duplicate ids keep the first entry.
func New(items ...Item) *Catalog {
	c := &Catalog{
		items: make([]Item, 0, len(items)),
		index: make(map[string]Item, len(items)),
	}
	for _, it := range items {
		if it.ID == "" || it.Price <= 0 {
			continue
		}
		if _, exists := c.index[it.ID]; exists {
			continue
		}
		c.items = append(c.items, it)
		c.index[it.ID] = it
	}
	return c
}

// Default returns the reference snack menu.
func Default() *Catalog {
	return New(
		Item{ID: "energy", Name: "ЭНЕРГЕТИК", Price: 65},
		Item{ID: "cola", Name: "КОЛА (ориг)", Price: 110},
		Item{ID: "chips", Name: "ЧИПСЫ", Price: 70},
		Item{ID: "pepsi", Name: "ПЕПСИ (ориг)", Price: 105},
		Item{ID: "water", Name: "ВОДА", Price: 44},
		Item{ID: "chocopie", Name: "ЧОКОПАЙ", Price: 25},
		Item{ID: "7up", Name: "СЕВЭНАП (ориг)", Price: 105},
	)
}

// Lookup returns the item by id.
func (c *Catalog) Lookup(id string) (Item, bool) {
	it, ok := c.index[id]
	return it, ok
}

// Items returns items in definition order. The returned slice must not be mutated.
func (c *Catalog) Items() []Item {
	return c.items
}

// Len reports the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}
