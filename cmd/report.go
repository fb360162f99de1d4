package cmd

import (
	"fmt"
	"os"
	"time"

	"enbyscan/internal/collate"
	"enbyscan/internal/db"
	"enbyscan/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the HTML comparison table from the local cache",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "comparison_table.html", "Output file")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	items, err := db.ListItems(database)
	if err != nil {
		return err
	}
	sitelinks, err := db.ListSitelinks(database)
	if err != nil {
		return err
	}
	articles, err := db.ListArticles(database)
	if err != nil {
		return err
	}
	if len(items) == 0 && len(articles) == 0 {
		return fmt.Errorf("cache is empty, run `enbyscan fetch` first")
	}

	rows := collate.Rows(items, sitelinks, articles, cfg.Languages)
	logger.Info("collated comparison rows",
		zap.Int("rows", len(rows)),
		zap.Int("languages", len(cfg.Languages)))

	f, err := os.Create(reportOutput)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", reportOutput, err)
	}
	defer f.Close()

	page := report.Page{
		Languages: cfg.Languages,
		Rows:      rows,
		Generated: time.Now(),
	}
	if err := report.Render(f, page); err != nil {
		return err
	}

	fmt.Printf("Wrote %d people to %s\n", len(rows), reportOutput)
	return nil
}
