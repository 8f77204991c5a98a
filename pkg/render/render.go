package render

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/sw33tLie/pricebot/pkg/catalog"
	"github.com/sw33tLie/pricebot/pkg/price"
)

const (
	ColorHot  = 0xff6b6b
	ColorCold = 0x6bb0ff
	ColorList = 0xfdcb6e

	// MaxRenderLength is the character ceiling most chat platforms put on a
	// single message body.
	MaxRenderLength = 2000
)

// Field is one labelled value of a Card.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Card is a platform-neutral rich message.
type Card struct {
	Title       string
	Description string
	Color       int
	Fields      []Field
	Thumbnail   string
	Footer      string
}

// Text flattens the card for plain-text transports.
func (c Card) Text() string {
	var b strings.Builder
	b.WriteString(c.Title)
	if c.Description != "" {
		b.WriteString("\n\n" + c.Description)
	}
	if len(c.Fields) > 0 {
		b.WriteString("\n")
	}
	for _, f := range c.Fields {
		b.WriteString("\n" + f.Name + ": " + f.Value)
	}
	if c.Footer != "" {
		b.WriteString("\n\n" + c.Footer)
	}
	return b.String()
}

func Color(s catalog.SalesStatus) int {
	if s == catalog.Hot {
		return ColorHot
	}
	return ColorCold
}

func statusEmoji(s catalog.SalesStatus) string {
	if s == catalog.Hot {
		return "🔥"
	}
	return "❄️"
}

// ItemCard builds the price card for a single item.
func ItemCard(it catalog.Item, prefix string) Card {
	fields := []Field{
		{Name: "💰 Current Price", Value: "**" + it.PriceToken + "**", Inline: true},
		{Name: "🌟 Status", Value: statusEmoji(it.Sales) + " " + it.Sales.String(), Inline: true},
		{Name: "🗓️ Last Update", Value: orDash(it.LastUpdate), Inline: true},
		{Name: "📦 Category", Value: orDash(it.Category), Inline: true},
	}
	if it.NumericPrice > 0 && price.Format(it.NumericPrice) != it.PriceToken {
		fields = append(fields, Field{Name: "🔢 Normalized", Value: price.Format(it.NumericPrice), Inline: true})
	}
	return Card{
		Title:     "🏷️ " + it.Name,
		Color:     Color(it.Sales),
		Fields:    fields,
		Thumbnail: it.IconRef,
		Footer:    fmt.Sprintf("Use %sprice [Item Name] to check price.", prefix),
	}
}

// Listing renders item names one section per group. When the flattened
// card text would exceed maxLen it returns a summary card instead, so callers
// never emit an oversized payload. maxLen <= 0 uses MaxRenderLength.
func Listing(pages iter.Seq[[]string], total int, prefix string, maxLen int) Card {
	if maxLen <= 0 {
		maxLen = MaxRenderLength
	}
	card := Card{
		Title:       "📋 Market Item List",
		Description: "Please specify an item from the list below:",
		Color:       ColorList,
		Footer:      fmt.Sprintf("Use %sprice [Item Name]", prefix),
	}

	// Card.Text adds one blank line before the fields, then "\n<name>: <value>"
	// per field.
	length := utf8.RuneCountInString(card.Text()) + 1
	start := 1
	for group := range pages {
		f := Field{
			Name:  fmt.Sprintf("Items %d-%d", start, start+len(group)-1),
			Value: formatGroup(group),
		}
		length += utf8.RuneCountInString("\n" + f.Name + ": " + f.Value)
		if length > maxLen {
			return Summary(total, prefix)
		}
		card.Fields = append(card.Fields, f)
		start += len(group)
	}
	return card
}

// Summary is the collapsed listing used when the full list is too long.
func Summary(total int, prefix string) Card {
	return Card{
		Title:       "📋 Market Item List",
		Color:       ColorList,
		Description: fmt.Sprintf("There are %d items in the market. Use `%sprice [Item Name]` to look one up by name.", total, prefix),
		Footer:      fmt.Sprintf("Use %sprice [Item Name]", prefix),
	}
}

func formatGroup(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, " | ")
}

func NotFound(prefix string) string {
	return fmt.Sprintf("❌ Item not found. Please use `%sprice` for the full list of items.", prefix)
}

func Unavailable() string {
	return "Error: Market data is currently unavailable. Please check the logs."
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
