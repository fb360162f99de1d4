package cmd

import (
	"fmt"

	"enbyscan/internal/db"
	"enbyscan/internal/petscan"
	"enbyscan/internal/wikidata"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch category members and Wikidata items into the local cache",
	Long: `Queries PetScan for the members of each configured category and the
Wikidata SPARQL endpoint for non-binary people, then replaces the local
SQLite cache with the results.`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	ps := petscan.New(cfg.PetScanURL, cfg.PetScanTimeout.Std(), logger)
	for _, lang := range cfg.Languages {
		logger.Info("fetching category members",
			zap.String("language", lang.Code),
			zap.String("category", lang.Category))

		articles, err := ps.CategoryMembers(ctx, lang.Code, lang.Category, cfg.Depth)
		if err != nil {
			return fmt.Errorf("failed to fetch %s category: %w", lang.Code, err)
		}
		if err := db.ReplaceArticles(database, lang.Project(), articles); err != nil {
			return fmt.Errorf("failed to store %s articles: %w", lang.Code, err)
		}
		logger.Info("stored category members",
			zap.String("project", lang.Project()),
			zap.Int("count", len(articles)))
	}

	wd := wikidata.New(cfg.SPARQLEndpoint, cfg.SPARQLTimeout.Std(), logger)
	logger.Info("querying wikidata for non-binary people")
	items, sitelinks, err := wd.NonBinaryPeople(ctx, cfg.Languages)
	if err != nil {
		return fmt.Errorf("failed to query wikidata: %w", err)
	}
	if err := db.ReplaceItems(database, items, sitelinks); err != nil {
		return fmt.Errorf("failed to store items: %w", err)
	}
	logger.Info("stored wikidata results",
		zap.Int("items", len(items)),
		zap.Int("sitelinks", len(sitelinks)))

	fmt.Printf("Fetched %d items and %d category lists into %s\n",
		len(items), len(cfg.Languages), dbPath)
	return nil
}
