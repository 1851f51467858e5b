package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/grcdash/fbk/internal/format"
	"github.com/grcdash/fbk/internal/models"
)

var (
	exportFormat string
	exportCached bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export feedback as JSON, CSV, or Markdown",
	Long:  "Export feedback for reporting. With --cached, exports the newest local snapshot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportRun(cmd.Context())
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, csv, markdown")
	exportCmd.Flags().BoolVar(&exportCached, "cached", false, "Export from the local snapshot cache instead of the API")
	rootCmd.AddCommand(exportCmd)
}

func exportRun(ctx context.Context) error {
	var items []models.Feedback

	if exportCached {
		s, err := getStore()
		if err != nil {
			return err
		}
		snap, err := s.LatestSnapshot(ctx)
		if err != nil {
			return fmt.Errorf("no cached feedback: %w", err)
		}
		items = snap.Items
	} else {
		res, err := getClient().List(ctx, models.Filters{SortBy: models.SortNewest}, 1, 500)
		if err != nil {
			return err
		}
		items = res.Items
	}

	switch exportFormat {
	case "json":
		enc := json.NewEncoder(ui.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "csv":
		return exportCSV(items)
	case "markdown":
		return exportMarkdown(items)
	default:
		return fmt.Errorf("unknown format: %s (use: json, csv, markdown)", exportFormat)
	}
}

func exportCSV(items []models.Feedback) error {
	w := csv.NewWriter(ui.Out)
	if err := w.Write([]string{"id", "title", "description", "category", "priority", "status", "votes", "comments", "submitted"}); err != nil {
		return err
	}
	for _, item := range items {
		record := []string{
			item.ID,
			item.Title,
			item.Description,
			string(item.Category),
			string(item.Priority),
			string(item.Status),
			strconv.Itoa(item.Votes),
			strconv.Itoa(item.Comments),
			format.Date(item.SubmittedAt),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func exportMarkdown(items []models.Feedback) error {
	fmt.Fprintln(ui.Out, "| ID | Title | Category | Priority | Status | Votes |")
	fmt.Fprintln(ui.Out, "|----|-------|----------|----------|--------|-------|")
	for _, item := range items {
		fmt.Fprintf(ui.Out, "| %s | %s | %s | %s | %s | %d |\n",
			item.ID, item.Title, item.Category, item.Priority, item.Status, item.Votes)
	}
	return nil
}
