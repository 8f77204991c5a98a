package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sw33tLie/pricebot/pkg/catalog"
	"github.com/sw33tLie/pricebot/pkg/engine"
	"github.com/sw33tLie/pricebot/pkg/storage"
)

func TestOpenSource(t *testing.T) {
	tests := []struct {
		location string
		wantName string
	}{
		{"market_data.json", "market_data.json"},
		{"/srv/data/items.json", "/srv/data/items.json"},
		{"https://example.com/market_data.json", "https://example.com/market_data.json"},
		{"http://localhost:9000/items", "http://localhost:9000/items"},
		{"sqlite:///tmp/catalog.sqlite", "sqlite:///tmp/catalog.sqlite"},
	}

	for _, tt := range tests {
		src := openSource(tt.location)
		if src.Name() != tt.wantName {
			t.Fatalf("openSource(%q): expected name %q, got %q", tt.location, tt.wantName, src.Name())
		}
	}

	if _, ok := openSource("https://example.com/x.json").(*catalog.HTTPSource); !ok {
		t.Fatal("expected an HTTP source for https URLs")
	}
	if s, ok := openSource("sqlite:///tmp/catalog.sqlite").(storage.Source); !ok || s.Path != "/tmp/catalog.sqlite" {
		t.Fatalf("expected a storage source for /tmp/catalog.sqlite, got %#v", openSource("sqlite:///tmp/catalog.sqlite"))
	}
	if _, ok := openSource("items.json").(catalog.FileSource); !ok {
		t.Fatal("expected a file source for plain paths")
	}
}

func TestReloadIntervalFlagOverridesConfig(t *testing.T) {
	viper.Set("catalog.reload_interval", "15m")
	defer viper.Set("catalog.reload_interval", nil)

	c := &cobra.Command{}
	c.Flags().Duration("reload-interval", 0, "")

	if got := reloadInterval(c); got != 15*time.Minute {
		t.Fatalf("expected config interval 15m, got %s", got)
	}

	if err := c.Flags().Set("reload-interval", "30s"); err != nil {
		t.Fatal(err)
	}
	if got := reloadInterval(c); got != 30*time.Second {
		t.Fatalf("expected flag interval 30s, got %s", got)
	}
}

func TestLoadAliasesUnset(t *testing.T) {
	viper.Set("catalog.aliases", "")
	tbl, err := loadAliases()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl != nil {
		t.Fatal("expected no alias table when none is configured")
	}
}

type countingSource struct {
	catalog.BytesSource
	reads *int
}

func (s countingSource) Read(ctx context.Context) ([]byte, error) {
	*s.reads++
	return s.BytesSource.Read(ctx)
}

func TestPrintListingUsesLoadedEngine(t *testing.T) {
	reads := 0
	src := countingSource{
		BytesSource: catalog.BytesSource{Label: "mem", Data: []byte(`[
			{"name":"Diamond","price":"1.5b"},
			{"name":"Ruby","price":"450m"},
			{"name":"Gold Bar","price":"250k"}
		]`)},
		reads: &reads,
	}
	e := engine.New(nil, nil)
	if _, err := e.LoadCatalog(context.Background(), src); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := printListing(&buf, e, 2); err != nil {
		t.Fatal(err)
	}
	if reads != 1 {
		t.Fatalf("expected the catalog to be read once, got %d reads", reads)
	}
	want := "3 items\n\nItems 1-2:\n  Diamond | Ruby\n\nItems 3-3:\n  Gold Bar\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestPrintTokensKeepsFractions(t *testing.T) {
	var buf bytes.Buffer
	if err := printTokens(&buf, []string{"1.5", "1.5b", "abc"}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %q", buf.String())
	}
	tests := []struct {
		line   string
		fields []string
	}{
		{lines[1], []string{"1.5", "1.5", "1.5"}},
		{lines[2], []string{"1.5b", "1500000000", "1.5b"}},
		{lines[3], []string{"abc", "0", "0"}},
	}
	for _, tt := range tests {
		if got := strings.Fields(tt.line); strings.Join(got, " ") != strings.Join(tt.fields, " ") {
			t.Fatalf("expected row %v, got %v", tt.fields, got)
		}
	}
}
