package catalog

import (
	"context"
	"errors"
	"sync/atomic"
)

// Load reads src, validates every record and builds a new Catalog. It never
// returns a partial catalog.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	data, err := src.Read(ctx)
	if err != nil {
		return nil, &LoadError{Reason: ReasonUnreadable, Source: src.Name(), Err: err}
	}

	records, err := DecodeRecords(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Source = src.Name()
			return nil, le
		}
		return nil, &LoadError{Reason: ReasonMalformed, Source: src.Name(), Err: err}
	}

	items := make([]Item, 0, len(records))
	for _, r := range records {
		items = append(items, NewItem(r))
	}
	return &Catalog{items: items}, nil
}

// Holder owns the current catalog reference. Readers get whichever snapshot
// was installed at the moment of the call; reloads replace it with a single
// atomic store.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// Current returns the installed catalog, or nil before the first successful load.
func (h *Holder) Current() *Catalog {
	return h.current.Load()
}

// Swap installs c and returns the previous catalog.
func (h *Holder) Swap(c *Catalog) *Catalog {
	return h.current.Swap(c)
}

// Reload loads src and installs the result only if the whole load succeeded.
// On failure the previous catalog stays in place.
func (h *Holder) Reload(ctx context.Context, src Source) (int, error) {
	c, err := Load(ctx, src)
	if err != nil {
		return 0, err
	}
	h.Swap(c)
	return c.Len(), nil
}
