package catalog

import (
	"iter"

	"github.com/sw33tLie/pricebot/internal/utils"
	"github.com/sw33tLie/pricebot/pkg/price"
)

// SalesStatus tells whether an item is currently selling well.
type SalesStatus int

const (
	Cold SalesStatus = iota
	Hot
)

func (s SalesStatus) String() string {
	if s == Hot {
		return "Hot"
	}
	return "Cold"
}

// MarshalText encodes the status the way the catalog file spells it.
func (s SalesStatus) MarshalText() ([]byte, error) {
	if s == Hot {
		return []byte("hot"), nil
	}
	return []byte("cold"), nil
}

// ParseSalesStatus maps the raw "sales" field. Only "hot" (any case) is Hot.
func ParseSalesStatus(raw string) SalesStatus {
	if utils.Fold(raw) == "hot" {
		return Hot
	}
	return Cold
}

// Item is one priced catalog entry.
type Item struct {
	Name         string      `json:"name"`
	PriceToken   string      `json:"price"`
	NumericPrice float64     `json:"numericPrice"`
	Sales        SalesStatus `json:"sales"`
	LastUpdate   string      `json:"lastUpdate"`
	Category     string      `json:"category"`
	IconRef      string      `json:"icon,omitempty"`
}

// NewItem builds an Item from a validated record. NumericPrice is derived
// here and nowhere else.
func NewItem(r Record) Item {
	return Item{
		Name:         r.Name,
		PriceToken:   r.Price,
		NumericPrice: price.ParseToken(r.Price),
		Sales:        ParseSalesStatus(r.Sales),
		LastUpdate:   r.LastUpdate,
		Category:     r.Category,
		IconRef:      r.Icon,
	}
}

// Record returns the persisted form of the item.
func (it Item) Record() Record {
	sales, _ := it.Sales.MarshalText()
	return Record{
		Name:       it.Name,
		Price:      it.PriceToken,
		Sales:      string(sales),
		LastUpdate: it.LastUpdate,
		Category:   it.Category,
		Icon:       it.IconRef,
	}
}

// Catalog is an ordered, immutable list of items. The zero value and a nil
// *Catalog are both empty.
type Catalog struct {
	items []Item
}

// New copies items into a new Catalog, keeping their order.
func New(items []Item) *Catalog {
	cp := make([]Item, len(items))
	copy(cp, items)
	return &Catalog{items: cp}
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// At returns the i-th item in catalog order.
func (c *Catalog) At(i int) Item {
	return c.items[i]
}

// Items returns a copy of the catalog's items.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Names returns every item name in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, c.Len())
	for _, it := range c.All() {
		out = append(out, it.Name)
	}
	return out
}

// All iterates over the items in catalog order.
func (c *Catalog) All() iter.Seq2[int, Item] {
	return func(yield func(int, Item) bool) {
		for i := 0; i < c.Len(); i++ {
			if !yield(i, c.items[i]) {
				return
			}
		}
	}
}
