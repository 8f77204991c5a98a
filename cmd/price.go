package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sw33tLie/pricebot/pkg/catalog"
	"github.com/sw33tLie/pricebot/pkg/render"
)

const cliPrefix = "pricebot "

// priceCmd represents the price command
var priceCmd = &cobra.Command{
	Use:   "price [item name...]",
	Short: "Look up the price of a market item",
	Long: `Look up the price of a market item.

The query may be a partial name or any configured alias. Without a query,
the catalog names are listed instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		e, err := loadedEngine(context.Background())
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		it, err := e.ResolveQuery(query)
		switch {
		case errors.Is(err, catalog.ErrEmpty):
			return printListing(os.Stdout, e, 0)
		case errors.Is(err, catalog.ErrNotFound):
			fmt.Println(render.NotFound(cliPrefix))
			return fmt.Errorf("no item matches %q", query)
		case err != nil:
			return err
		}

		if asJSON {
			out, err := json.MarshalIndent(it, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		fmt.Println(render.ItemCard(it, cliPrefix).Text())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(priceCmd)
	priceCmd.Flags().Bool("json", false, "Print the matched item as JSON")
}
