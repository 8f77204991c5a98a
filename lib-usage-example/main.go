package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/sw33tLie/pricebot/pkg/alias"
	"github.com/sw33tLie/pricebot/pkg/catalog"
	"github.com/sw33tLie/pricebot/pkg/engine"
	"github.com/sw33tLie/pricebot/pkg/render"
)

func main() {
	// Usage: go run . -catalog ../data/market_data.json -aliases ../data/aliases.json الماس

	catalogFlag := flag.String("catalog", "market_data.json", "Catalog JSON file")
	aliasesFlag := flag.String("aliases", "", "Alias table JSON file")
	flag.Parse()

	var aliases *alias.Table
	if *aliasesFlag != "" {
		tbl, err := alias.LoadFile(*aliasesFlag)
		if err != nil {
			log.Fatal(err)
		}
		aliases = tbl
	}

	// The engine can be used without any logger
	e := engine.New(aliases, nil)
	if _, err := e.LoadCatalog(context.Background(), catalog.FileSource{Path: *catalogFlag}); err != nil {
		log.Fatal(err)
	}

	it, err := e.ResolveQuery(strings.Join(flag.Args(), " "))
	if err != nil {
		fmt.Println("Lookup failed:", err)
		return
	}

	fmt.Println(render.ItemCard(it, "!").Text())
	fmt.Printf("\nNumeric price: %.0f\n", it.NumericPrice)
}
