package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sw33tLie/pricebot/pkg/price"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:     "parse <token>...",
	Short:   "Convert price tokens such as 1.5b or 250k into numbers",
	Example: "  pricebot parse 1.5b 250k 2,000,000 \"3.2 M\"",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printTokens(os.Stdout, args)
	},
}

// printTokens writes one row per token with its exact value and compact form.
func printTokens(out io.Writer, tokens []string) error {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TOKEN\tVALUE\tFORMATTED\t")
	for _, token := range tokens {
		v := price.ParseToken(token)
		fmt.Fprintf(w, "%s\t%s\t%s\t\n", token, strconv.FormatFloat(v, 'f', -1, 64), price.Format(v))
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
