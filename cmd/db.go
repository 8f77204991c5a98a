package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sw33tLie/pricebot/internal/utils"
	"github.com/sw33tLie/pricebot/pkg/catalog"
	"github.com/sw33tLie/pricebot/pkg/price"
	"github.com/sw33tLie/pricebot/pkg/storage"
)

var dbPath string

// dbCmd represents the db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the SQLite catalog store",
	Long: `Manage the SQLite catalog store.

An imported store can be served directly with --catalog sqlite://<dbpath>.`,
}

// openStore resolves --dbpath and opens the store, creating its directory.
func openStore() (*storage.DB, string, error) {
	path, err := utils.GetAbsDBPath(dbPath)
	if err != nil {
		return nil, "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, "", err
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, "", err
	}
	return db, path, nil
}

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <json file or url>",
	Short: "Validate a catalog and replace the stored one with it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		allowEmpty, _ := cmd.Flags().GetBool("allow-empty")
		ctx := context.Background()

		src := openSource(args[0])
		c, err := catalog.Load(ctx, src)
		if err != nil {
			return err
		}

		db, path, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		lock, err := utils.NewDBLock(path)
		if err != nil {
			return err
		}
		if err := lock.Lock(); err != nil {
			return err
		}
		defer lock.Unlock()

		if err := db.ReplaceItems(ctx, src.Name(), c.Items(), allowEmpty); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		utils.Log.Infof("Imported %d items from %s into %s", c.Len(), src.Name(), path)
		return nil
	},
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored catalog as catalog JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		records, err := db.ListRecords(context.Background())
		if err != nil {
			return err
		}
		data, err := storage.EncodeRecords(records)
		if err != nil {
			return err
		}

		if output == "" || output == "-" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return err
		}
		utils.Log.Infof("Exported %d items to %s", len(records), output)
		return nil
	},
}

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints per-category statistics about the stored catalog.",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()
		stats, err := db.GetStats(ctx)
		if err != nil {
			return err
		}

		if len(stats) == 0 {
			fmt.Println("No data in the database to generate stats.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "CATEGORY\tITEMS\tHOT\tMIN\tMAX\t")

		var totalItems, totalHot int
		for _, s := range stats {
			category := s.Category
			if category == "" {
				category = "-"
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t\n", category, s.ItemCount, s.HotCount, price.Format(s.MinPrice), price.Format(s.MaxPrice))
			totalItems += s.ItemCount
			totalHot += s.HotCount
		}

		fmt.Fprintln(w, " \t \t \t \t \t")
		fmt.Fprintf(w, "TOTAL\t%d\t%d\t\t\t\n", totalItems, totalHot)
		w.Flush()

		imports, err := db.ListImports(ctx, 5)
		if err != nil {
			return err
		}
		if len(imports) > 0 {
			fmt.Println("\nRecent imports:")
			for _, imp := range imports {
				fmt.Printf("  %s  %d items  %s\n", imp.OccurredAt.Format("2006-01-02 15:04:05"), imp.ItemCount, imp.Source)
			}
		}
		return nil
	},
}

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell to the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := utils.GetAbsDBPath(dbPath)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("database file not found: %s", path)
		}

		sqlitePath, err := exec.LookPath("sqlite3")
		if err != nil {
			return fmt.Errorf("sqlite3 command not found in your PATH. Please install it to use the db shell")
		}

		fmt.Println("--> Database schema:")
		schemaCmd := exec.Command(sqlitePath, path, ".schema")
		schemaCmd.Stdout = os.Stdout
		schemaCmd.Stderr = os.Stderr
		if err := schemaCmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: couldn't retrieve schema: %v\n", err)
		}
		fmt.Println("\n--> Starting interactive shell... (Ctrl+D to exit)")

		c := exec.Command(sqlitePath, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr

		return c.Run()
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(importCmd)
	dbCmd.AddCommand(exportCmd)
	dbCmd.AddCommand(statsCmd)
	dbCmd.AddCommand(shellCmd)
	dbCmd.PersistentFlags().StringVar(&dbPath, "dbpath", "", "Path to SQLite DB file (default ~/.config/pricebot/catalog.sqlite)")

	importCmd.Flags().Bool("allow-empty", false, "Allow importing a catalog with no items")
	exportCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
}
