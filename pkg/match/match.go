package match

import (
	"strings"

	"github.com/sw33tLie/pricebot/internal/utils"
	"github.com/sw33tLie/pricebot/pkg/alias"
	"github.com/sw33tLie/pricebot/pkg/catalog"
)

// Matcher resolves free-text queries against a catalog.
type Matcher struct {
	Aliases *alias.Table
}

// New returns a Matcher using the given alias table. A nil table disables
// alias resolution.
func New(aliases *alias.Table) *Matcher {
	return &Matcher{Aliases: aliases}
}

// Match returns the first item whose folded name equals the resolved query,
// falling back to the first item whose name contains it. Exact always beats
// substring; within a pass catalog order decides.
func (m *Matcher) Match(c *catalog.Catalog, rawQuery string) (catalog.Item, error) {
	q := strings.TrimSpace(rawQuery)
	if q == "" {
		return catalog.Item{}, catalog.ErrEmpty
	}
	q = utils.Fold(m.Aliases.Resolve(q))

	// Fold every name once and reuse it for both passes.
	folded := make([]string, c.Len())
	for i, it := range c.All() {
		folded[i] = utils.Fold(it.Name)
		if folded[i] == q {
			return it, nil
		}
	}

	for i, name := range folded {
		if strings.Contains(name, q) {
			return c.At(i), nil
		}
	}
	return catalog.Item{}, catalog.ErrNotFound
}
