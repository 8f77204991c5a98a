package paginate

import (
	"iter"

	"github.com/sw33tLie/pricebot/pkg/catalog"
)

const (
	// DefaultPageSize suits rich displays with one section per group.
	DefaultPageSize = 20
	// CompactPageSize suits plain-text replies.
	CompactPageSize = 10
)

// Pages splits the catalog's names into consecutive groups of at most size
// entries. The sequence is lazy and can be ranged over any number of times.
// size <= 0 falls back to DefaultPageSize.
func Pages(c *catalog.Catalog, size int) iter.Seq[[]string] {
	if size <= 0 {
		size = DefaultPageSize
	}
	return func(yield func([]string) bool) {
		n := c.Len()
		for start := 0; start < n; start += size {
			end := min(start+size, n)
			group := make([]string, 0, end-start)
			for i := start; i < end; i++ {
				group = append(group, c.At(i).Name)
			}
			if !yield(group) {
				return
			}
		}
	}
}

// Count returns how many groups Pages yields for n items.
func Count(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
