package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sw33tLie/pricebot/internal/utils"
	"github.com/sw33tLie/pricebot/pkg/catalog"
	"github.com/sw33tLie/pricebot/pkg/price"
)

type categorySummary struct {
	items    int
	hot      int
	min, max float64
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the catalog and aliases and report problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		aliases, err := loadAliases()
		if err != nil {
			return err
		}

		src := openSource(viper.GetString("catalog.source"))
		c, err := catalog.Load(context.Background(), src)
		if err != nil {
			var le *catalog.LoadError
			if errors.As(err, &le) {
				fmt.Printf("Catalog is invalid (%s)\n", le.Reason)
			}
			return err
		}

		fmt.Printf("Loaded %d items from %s\n\n", c.Len(), src.Name())

		summaries := map[string]*categorySummary{}
		for _, it := range c.All() {
			s, ok := summaries[it.Category]
			if !ok {
				s = &categorySummary{min: it.NumericPrice, max: it.NumericPrice}
				summaries[it.Category] = s
			}
			s.items++
			if it.Sales == catalog.Hot {
				s.hot++
			}
			s.min = min(s.min, it.NumericPrice)
			s.max = max(s.max, it.NumericPrice)
		}

		categories := make([]string, 0, len(summaries))
		for name := range summaries {
			categories = append(categories, name)
		}
		sort.Strings(categories)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "CATEGORY\tITEMS\tHOT\tMIN\tMAX\t")
		for _, name := range categories {
			s := summaries[name]
			label := name
			if label == "" {
				label = "-"
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t\n", label, s.items, s.hot, price.Format(s.min), price.Format(s.max))
		}
		fmt.Fprintln(w, " \t \t \t \t \t")
		fmt.Fprintf(w, "TOTAL\t%d\t\t\t\t\n", c.Len())
		w.Flush()

		problems := 0
		for _, name := range utils.HasDuplicates(c.Names()) {
			utils.Log.Warnf("Duplicate item name %q, only the first entry is reachable", name)
			problems++
		}
		for _, it := range c.All() {
			if it.NumericPrice == 0 {
				utils.Log.Warnf("Price %q of %q normalizes to 0", it.PriceToken, it.Name)
				problems++
			}
		}

		if aliases != nil {
			known := map[string]bool{}
			for _, name := range c.Names() {
				known[utils.Fold(name)] = true
			}
			for _, canonical := range aliases.Targets() {
				if !known[canonical] {
					utils.Log.Warnf("Alias target %q is not an exact catalog name", canonical)
					problems++
				}
			}
			problems += len(aliases.Conflicts())
		}

		if problems > 0 {
			fmt.Printf("\n%d warning(s)\n", problems)
		} else {
			fmt.Println("\nNo problems found")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
