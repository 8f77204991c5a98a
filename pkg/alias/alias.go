package alias

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sw33tLie/pricebot/internal/utils"
	"github.com/tidwall/gjson"
)

// Table maps alternate or localized spellings to canonical item names.
// Lookups are exact after case folding; there is no partial matching.
type Table struct {
	// aliases is keyed by the folded alias token.
	aliases   map[string]string
	locales   map[string]int
	conflicts []Conflict
}

// Conflict records a token that two locales map to different names.
type Conflict struct {
	Token     string
	Locale    string
	Canonical string
	Previous  string
}

// New builds a flat table from alias -> canonical name.
func New(m map[string]string) *Table {
	t := &Table{aliases: make(map[string]string, len(m)), locales: map[string]int{}}
	for token, canonical := range m {
		t.aliases[utils.Fold(token)] = canonical
	}
	return t
}

// FromLocales builds a table from locale -> (alias -> canonical name).
// Locales are applied in sorted order, so on a clash the later locale wins
// and the clash is kept in Conflicts.
func FromLocales(byLocale map[string]map[string]string) *Table {
	t := &Table{aliases: map[string]string{}, locales: map[string]int{}}

	locales := make([]string, 0, len(byLocale))
	for l := range byLocale {
		locales = append(locales, l)
	}
	sort.Strings(locales)

	for _, l := range locales {
		tokens := make([]string, 0, len(byLocale[l]))
		for tok := range byLocale[l] {
			tokens = append(tokens, tok)
		}
		sort.Strings(tokens)

		for _, tok := range tokens {
			canonical := byLocale[l][tok]
			key := utils.Fold(tok)
			if prev, ok := t.aliases[key]; ok && prev != canonical {
				t.conflicts = append(t.conflicts, Conflict{Token: tok, Locale: l, Canonical: canonical, Previous: prev})
			}
			t.aliases[key] = canonical
			t.locales[l]++
		}
	}
	return t
}

// Load parses a locale-keyed alias document:
//
//	{"ar": {"الماس": "Diamond"}, "es": {"diamante": "Diamond"}}
func Load(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("alias table: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.New("alias table: expected an object keyed by locale")
	}

	byLocale := map[string]map[string]string{}
	var perr error
	root.ForEach(func(locale, tokens gjson.Result) bool {
		if !tokens.IsObject() {
			perr = fmt.Errorf("alias table: locale %q is not an object", locale.String())
			return false
		}
		m := map[string]string{}
		tokens.ForEach(func(tok, canonical gjson.Result) bool {
			if canonical.Type != gjson.String || canonical.String() == "" {
				perr = fmt.Errorf("alias table: %s/%s must map to a non-empty name", locale.String(), tok.String())
				return false
			}
			m[tok.String()] = canonical.String()
			return true
		})
		byLocale[locale.String()] = m
		return perr == nil
	})
	if perr != nil {
		return nil, perr
	}
	return FromLocales(byLocale), nil
}

// LoadFile reads an alias document from path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Resolve returns the folded canonical name for query, or query unchanged
// when it is not an alias. A nil table resolves nothing.
func (t *Table) Resolve(query string) string {
	if t == nil {
		return query
	}
	if canonical, ok := t.aliases[utils.Fold(query)]; ok {
		return utils.Fold(canonical)
	}
	return query
}

// Len returns the number of distinct alias tokens.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.aliases)
}

// Locales returns the number of aliases each locale contributed.
func (t *Table) Locales() map[string]int {
	out := map[string]int{}
	if t == nil {
		return out
	}
	for k, v := range t.locales {
		out[k] = v
	}
	return out
}

// Targets returns the distinct folded canonical names, sorted.
func (t *Table) Targets() []string {
	if t == nil {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, canonical := range t.aliases {
		f := utils.Fold(canonical)
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}

func (t *Table) Conflicts() []Conflict {
	if t == nil {
		return nil
	}
	return t.conflicts
}
