package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sw33tLie/pricebot/pkg/catalog"
	"github.com/sw33tLie/pricebot/pkg/paginate"
)

func TestItemCard(t *testing.T) {
	it := catalog.NewItem(catalog.Record{Name: "Diamond", Price: "1,500,000k", Sales: "hot", LastUpdate: "2024-05-01", Category: "Gems", Icon: "https://img/d.png"})
	card := ItemCard(it, "!")

	if card.Title != "🏷️ Diamond" || card.Color != ColorHot || card.Thumbnail != "https://img/d.png" {
		t.Fatalf("unexpected card: %#v", card)
	}
	if card.Fields[0].Value != "**1,500,000k**" {
		t.Fatalf("expected raw price token, got %q", card.Fields[0].Value)
	}
	if card.Fields[1].Value != "🔥 Hot" {
		t.Fatalf("unexpected status field: %q", card.Fields[1].Value)
	}
	if last := card.Fields[len(card.Fields)-1]; last.Value != "1.5b" {
		t.Fatalf("expected normalized price field, got %#v", last)
	}
	if !strings.Contains(card.Text(), "Use !price [Item Name] to check price.") {
		t.Fatalf("footer missing from text:\n%s", card.Text())
	}
}

func TestItemCardColdNoNormalizedField(t *testing.T) {
	it := catalog.NewItem(catalog.Record{Name: "Iron", Price: "250k", Sales: "whatever"})
	card := ItemCard(it, "/")
	if card.Color != ColorCold || card.Fields[1].Value != "❄️ Cold" {
		t.Fatalf("unexpected cold card: %#v", card)
	}
	if len(card.Fields) != 4 {
		t.Fatalf("expected 4 fields when the token is already normalized, got %d", len(card.Fields))
	}
	if card.Fields[2].Value != "-" {
		t.Fatalf("expected placeholder for empty last update, got %q", card.Fields[2].Value)
	}
}

func mkCatalog(n int, nameLen int) *catalog.Catalog {
	items := make([]catalog.Item, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%0*d", nameLen, i)
		items = append(items, catalog.Item{Name: name})
	}
	return catalog.New(items)
}

func TestListing(t *testing.T) {
	c := mkCatalog(25, 4)
	card := Listing(paginate.Pages(c, paginate.CompactPageSize), c.Len(), "!", 0)

	if len(card.Fields) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(card.Fields))
	}
	if card.Fields[0].Name != "Items 1-10" || card.Fields[2].Name != "Items 21-25" {
		t.Fatalf("unexpected section names: %q, %q", card.Fields[0].Name, card.Fields[2].Name)
	}
	if !strings.HasPrefix(card.Fields[0].Value, "`0000` | `0001`") {
		t.Fatalf("unexpected section value: %q", card.Fields[0].Value)
	}
}

func TestListingFallsBackToSummary(t *testing.T) {
	c := mkCatalog(200, 20)
	card := Listing(paginate.Pages(c, paginate.DefaultPageSize), c.Len(), "!", MaxRenderLength)

	if len(card.Fields) != 0 {
		t.Fatalf("expected summary without sections, got %d", len(card.Fields))
	}
	if !strings.Contains(card.Description, "There are 200 items") {
		t.Fatalf("unexpected summary: %q", card.Description)
	}
	if n := len([]rune(card.Text())); n > MaxRenderLength {
		t.Fatalf("summary exceeds render budget: %d", n)
	}
}

func TestListingStaysUnderBudget(t *testing.T) {
	c := mkCatalog(60, 12)
	card := Listing(paginate.Pages(c, 20), c.Len(), "!", MaxRenderLength)
	if n := len([]rune(card.Text())); n > MaxRenderLength {
		t.Fatalf("listing text exceeds budget: %d", n)
	}
	if len(card.Fields) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(card.Fields))
	}
}

func TestListingCountsSectionLabels(t *testing.T) {
	// Values alone fit in the budget; labels and separators push it over.
	items := make([]catalog.Item, 300)
	for i := range items {
		items[i] = catalog.Item{Name: "x"}
	}
	c := catalog.New(items)

	card := Listing(paginate.Pages(c, paginate.CompactPageSize), c.Len(), "!", MaxRenderLength)
	if n := len([]rune(card.Text())); n > MaxRenderLength {
		t.Fatalf("flattened listing is %d runes, over %d", n, MaxRenderLength)
	}
	if len(card.Fields) != 0 {
		t.Fatalf("expected summary fallback, got %d sections", len(card.Fields))
	}
}

func TestListingBudgetIsExact(t *testing.T) {
	c := mkCatalog(25, 4)
	full := Listing(paginate.Pages(c, paginate.CompactPageSize), c.Len(), "!", 100000)
	n := len([]rune(full.Text()))

	if card := Listing(paginate.Pages(c, paginate.CompactPageSize), c.Len(), "!", n); len(card.Fields) != 3 {
		t.Fatalf("expected full listing at exactly %d runes, got %d sections", n, len(card.Fields))
	}
	if card := Listing(paginate.Pages(c, paginate.CompactPageSize), c.Len(), "!", n-1); len(card.Fields) != 0 {
		t.Fatalf("expected summary at %d runes, got %d sections", n-1, len(card.Fields))
	}
}

func TestMessages(t *testing.T) {
	if !strings.Contains(NotFound("!"), "`!price`") {
		t.Fatalf("unexpected not-found message: %q", NotFound("!"))
	}
	if !strings.Contains(Unavailable(), "unavailable") {
		t.Fatalf("unexpected unavailable message: %q", Unavailable())
	}
}
