package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"enbyscan/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	dbPath     string
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "enbyscan",
	Short: "Compare non-binary gender coverage across Wikipedia editions",
	Long: `enbyscan cross-references Wikidata's non-binary people with the
non-binary categories of several Wikipedia language editions and highlights
disagreements: articles outside the category, missing articles, and items
without gender data.

Run without arguments to browse the cached comparison interactively.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env files first so env-based defaults work.
		loadDotEnv(".env")
		loadDotEnv(".env.local")

		var err error
		cfg, err = config.Load(resolveConfigPath())
		if err != nil {
			return err
		}

		if dbPath == "" {
			dir, err := config.Dir()
			if err != nil {
				return err
			}
			dbPath = filepath.Join(dir, "enbyscan.db")
		}

		// Skip logger init for the interactive screens (they have their own UI)
		if cmd.Name() == "browse" || cmd.Name() == cmd.Root().Name() {
			logger = zap.NewNop()
			return nil
		}

		logConfig := zap.NewProductionConfig()
		if verbose {
			logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = logConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowse()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite cache (default: ~/.enbyscan/enbyscan.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config (default: ~/.enbyscan/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	if env := os.Getenv("ENBYSCAN_CONFIG"); env != "" {
		return env
	}
	dir, err := config.Dir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "config.yaml")
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}

		value = strings.Trim(value, `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
