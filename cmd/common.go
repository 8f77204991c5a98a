package cmd

import (
	"context"
	"strings"

	"github.com/spf13/viper"

	"github.com/sw33tLie/pricebot/internal/utils"
	"github.com/sw33tLie/pricebot/pkg/alias"
	"github.com/sw33tLie/pricebot/pkg/catalog"
	"github.com/sw33tLie/pricebot/pkg/engine"
	"github.com/sw33tLie/pricebot/pkg/storage"
)

// openSource picks a catalog source from a location string.
func openSource(location string) catalog.Source {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return catalog.NewHTTPSource(location)
	case strings.HasPrefix(location, "sqlite://"):
		return storage.Source{Path: strings.TrimPrefix(location, "sqlite://")}
	}
	return catalog.FileSource{Path: location}
}

// loadAliases reads the configured alias table. No file configured means no aliases.
func loadAliases() (*alias.Table, error) {
	path := viper.GetString("catalog.aliases")
	if path == "" {
		return nil, nil
	}
	tbl, err := alias.LoadFile(path)
	if err != nil {
		return nil, err
	}
	for _, c := range tbl.Conflicts() {
		utils.Log.Warnf("Alias %q (%s) maps to %q, overriding %q", c.Token, c.Locale, c.Canonical, c.Previous)
	}
	utils.Log.Debugf("Loaded %d aliases from %s", tbl.Len(), path)
	return tbl, nil
}

// newEngine builds an engine from config without loading a catalog.
func newEngine() (*engine.Engine, catalog.Source, error) {
	aliases, err := loadAliases()
	if err != nil {
		return nil, nil, err
	}
	return engine.New(aliases, utils.Log), openSource(viper.GetString("catalog.source")), nil
}

// loadedEngine builds an engine and performs the initial catalog load.
func loadedEngine(ctx context.Context) (*engine.Engine, error) {
	e, src, err := newEngine()
	if err != nil {
		return nil, err
	}
	if _, err := e.LoadCatalog(ctx, src); err != nil {
		return nil, err
	}
	return e, nil
}
