package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"enbyscan/internal/report"
	"enbyscan/internal/table"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	resortColumn     string
	resortDesc       bool
	resortErrorsOnly bool
	resortShowAll    bool
	resortOutput     string
)

var resortCmd = &cobra.Command{
	Use:   "resort [file]",
	Short: "Re-sort or re-filter an existing HTML comparison table",
	Long: `Parses a previously generated comparison page, applies a column sort
or the errors-only filter, and writes the page back with the header markers,
row order and row visibility updated. Columns are addressed by 1-based number
or by header text. Without --output the file is rewritten in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runResort,
}

func init() {
	resortCmd.Flags().StringVarP(&resortColumn, "column", "c", "", "Column to sort by (1-based number or header name)")
	resortCmd.Flags().BoolVar(&resortDesc, "desc", false, "Sort descending instead of ascending")
	resortCmd.Flags().BoolVarP(&resortErrorsOnly, "errors-only", "e", false, "Hide rows without a potential error")
	resortCmd.Flags().BoolVar(&resortShowAll, "show-all", false, "Show all rows again")
	resortCmd.Flags().StringVarP(&resortOutput, "output", "o", "", "Output file (default: rewrite input)")
	rootCmd.AddCommand(resortCmd)
}

func runResort(cmd *cobra.Command, args []string) error {
	path := args[0]
	if resortErrorsOnly && resortShowAll {
		return fmt.Errorf("--errors-only and --show-all are mutually exclusive")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := report.ParseDocument(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	ctrl := doc.Controller()

	if resortColumn != "" {
		col, err := resolveColumn(resortColumn, doc.Headers())
		if err != nil {
			return err
		}

		want := table.Ascending
		if resortDesc {
			want = table.Descending
		}
		malformed, err := ctrl.SortByColumn(col)
		if err != nil {
			return err
		}
		if _, dir := ctrl.SortState(); dir != want {
			if _, err := ctrl.SortByColumn(col); err != nil {
				return err
			}
		}
		for _, m := range malformed {
			logger.Warn("row has too few cells, sorted with an empty key", zap.Int("row", m.Row), zap.Int("cells", m.Cells))
		}
	}

	if resortErrorsOnly {
		ctrl.ToggleErrorFilter(true)
	}
	if resortShowAll {
		ctrl.ToggleErrorFilter(false)
	}

	out := resortOutput
	if out == "" {
		out = path
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	if err := doc.Write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	col, dir := ctrl.SortState()
	switch {
	case col >= 0:
		fmt.Printf("Wrote %s sorted by %s %s\n", out, doc.Headers()[col], dir)
	case ctrl.ErrorsOnly():
		fmt.Printf("Wrote %s showing only potential errors\n", out)
	default:
		fmt.Printf("Wrote %s\n", out)
	}
	return nil
}

// resolveColumn accepts a 1-based column number or a header name.
func resolveColumn(arg string, headers []string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(headers) {
			return 0, fmt.Errorf("column %d out of range, page has columns 1-%d (%s)",
				n, len(headers), strings.Join(headers, ", "))
		}
		return n - 1, nil
	}
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(arg)) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no column named %q, page has %s", arg, strings.Join(headers, ", "))
}
