package engine

import (
	"context"
	"iter"

	"github.com/sw33tLie/pricebot/pkg/alias"
	"github.com/sw33tLie/pricebot/pkg/catalog"
	"github.com/sw33tLie/pricebot/pkg/match"
	"github.com/sw33tLie/pricebot/pkg/paginate"
	"github.com/sw33tLie/pricebot/pkg/price"
)

// Logger abstracts logging so callers can use logrus, stdlib log, or any
// other logger that satisfies this interface.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// nopLogger silently discards all messages.
type nopLogger struct{}

func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Debugf(string, ...interface{}) {}

// Engine answers lookups and listings against the current catalog snapshot.
// It returns plain data only; rendering belongs to the caller.
type Engine struct {
	holder  catalog.Holder
	matcher *match.Matcher
	log     Logger
}

// New creates an engine with no catalog loaded. aliases and log may be nil.
func New(aliases *alias.Table, log Logger) *Engine {
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{matcher: match.New(aliases), log: log}
}

// LoadCatalog reads src and, only if the whole load succeeds, swaps it in.
// It returns the number of items loaded.
func (e *Engine) LoadCatalog(ctx context.Context, src catalog.Source) (int, error) {
	n, err := e.holder.Reload(ctx, src)
	if err != nil {
		if e.holder.Current().Len() > 0 {
			e.log.Errorf("Could not reload catalog, keeping %d previously loaded items: %v", e.holder.Current().Len(), err)
		} else {
			e.log.Errorf("Could not load catalog, lookups will fail until a reload succeeds: %v", err)
		}
		return 0, err
	}
	e.log.Infof("Successfully loaded %d items from %s", n, src.Name())
	return n, nil
}

// Snapshot returns the catalog current at the moment of the call.
func (e *Engine) Snapshot() *catalog.Catalog {
	return e.holder.Current()
}

// Ready reports whether a non-empty catalog is installed.
func (e *Engine) Ready() bool {
	return e.holder.Current().Len() > 0
}

// ResolveQuery resolves rawQuery to an item. It fails with
// catalog.ErrServiceUnavailable while no catalog is loaded, then with
// catalog.ErrEmpty or catalog.ErrNotFound.
func (e *Engine) ResolveQuery(rawQuery string) (catalog.Item, error) {
	c := e.holder.Current()
	if c.Len() == 0 {
		return catalog.Item{}, catalog.ErrServiceUnavailable
	}
	it, err := e.matcher.Match(c, rawQuery)
	if err != nil {
		e.log.Debugf("No match for %q: %v", rawQuery, err)
		return catalog.Item{}, err
	}
	return it, nil
}

// ListPages returns the names of the current snapshot in groups of at most
// pageSize, along with the total item count.
func (e *Engine) ListPages(pageSize int) (iter.Seq[[]string], int, error) {
	c := e.holder.Current()
	if c.Len() == 0 {
		return nil, 0, catalog.ErrServiceUnavailable
	}
	return paginate.Pages(c, pageSize), c.Len(), nil
}

// PriceTokenToNumber exposes the price normalization used at load time.
func (e *Engine) PriceTokenToNumber(token string) float64 {
	return price.ParseToken(token)
}
