package alias

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	tbl := New(map[string]string{"الماس": "Diamond", "Diamante": "Diamond"})

	tests := []struct {
		in   string
		want string
	}{
		{"الماس", "diamond"},
		{"diamante", "diamond"},
		{"DIAMANTE", "diamond"},
		{"Gold Bar", "Gold Bar"},
		{"diam", "diam"},
	}
	for _, tt := range tests {
		if got := tbl.Resolve(tt.in); got != tt.want {
			t.Fatalf("Resolve(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestNilTablePassesThrough(t *testing.T) {
	var tbl *Table
	if got := tbl.Resolve("Diamond"); got != "Diamond" {
		t.Fatalf("expected passthrough, got %q", got)
	}
	if tbl.Len() != 0 || len(tbl.Conflicts()) != 0 {
		t.Fatal("nil table should be empty")
	}
}

func TestLoad(t *testing.T) {
	doc := `{
		"ar": {"الماس": "Diamond", "ذهب": "Gold"},
		"es": {"diamante": "Diamond", "oro": "Gold"}
	}`
	tbl, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != 4 {
		t.Fatalf("expected 4 aliases, got %d", tbl.Len())
	}
	if got := tbl.Resolve("ذهب"); got != "gold" {
		t.Fatalf("expected gold, got %q", got)
	}
	if l := tbl.Locales(); l["ar"] != 2 || l["es"] != 2 {
		t.Fatalf("unexpected locale counts: %v", l)
	}
}

func TestLoadConflictLaterLocaleWins(t *testing.T) {
	doc := `{"en": {"rock": "Stone"}, "fr": {"rock": "Rock Candy"}}`
	tbl, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.Resolve("rock"); got != "rock candy" {
		t.Fatalf("expected later locale to win, got %q", got)
	}
	c := tbl.Conflicts()
	if len(c) != 1 || c[0].Previous != "Stone" || c[0].Locale != "fr" {
		t.Fatalf("unexpected conflicts: %#v", c)
	}
}

func TestLoadErrors(t *testing.T) {
	for _, doc := range []string{
		`not json`,
		`["ar"]`,
		`{"ar": "Diamond"}`,
		`{"ar": {"الماس": 5}}`,
		`{"ar": {"الماس": ""}}`,
	} {
		if _, err := Load(strings.NewReader(doc)); err == nil {
			t.Fatalf("expected error for %s", doc)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json")
	if err := os.WriteFile(path, []byte(`{"ar": {"الماس": "Diamond"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Resolve("الماس") != "diamond" {
		t.Fatal("alias from file not resolved")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTargets(t *testing.T) {
	tbl := New(map[string]string{"الماس": "Diamond", "diamante": "DIAMOND", "oro": "Gold Bar"})
	got := tbl.Targets()
	if strings.Join(got, ",") != "diamond,gold bar" {
		t.Fatalf("expected [diamond gold bar], got %v", got)
	}

	var nilTbl *Table
	if nilTbl.Targets() != nil {
		t.Fatal("expected nil targets for nil table")
	}
}
