package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sw33tLie/pricebot/pkg/engine"
	"github.com/sw33tLie/pricebot/pkg/paginate"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog item names in fixed-size groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("page-size")
		e, err := loadedEngine(context.Background())
		if err != nil {
			return err
		}
		return printListing(os.Stdout, e, size)
	},
}

// printListing prints every name group of the engine's current catalog.
func printListing(w io.Writer, e *engine.Engine, size int) error {
	if size <= 0 {
		size = paginate.DefaultPageSize
	}
	pages, total, err := e.ListPages(size)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%d items\n", total)
	start := 1
	for group := range pages {
		fmt.Fprintf(w, "\nItems %d-%d:\n", start, start+len(group)-1)
		fmt.Fprintln(w, "  "+strings.Join(group, " | "))
		start += len(group)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntP("page-size", "p", paginate.DefaultPageSize, "Names per group")
}
