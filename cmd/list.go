package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/grcdash/fbk/internal/filter"
	"github.com/grcdash/fbk/internal/format"
	"github.com/grcdash/fbk/internal/models"
	"github.com/grcdash/fbk/internal/output"
)

var (
	listSearch   string
	listCategory string
	listStatus   string
	listPriority string
	listSort     string
	listFrom     string
	listTo       string
	listPage     int
	listCached   bool
	listNoSave   bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List feedback",
	Long: `List feedback from the API, filtered and sorted.

With --cached, lists from the newest local snapshot instead of the API and
applies the filters locally, so it works offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRun(cmd.Context())
	},
}

func init() {
	listCmd.Flags().StringVar(&listSearch, "search", "", "Free-text search over title and description")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category: feature, bug, improvement, integration, performance")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status: new, under-review, planned, in-progress, completed, rejected")
	listCmd.Flags().StringVar(&listPriority, "priority", "", "Filter by priority: low, medium, high, critical")
	listCmd.Flags().StringVar(&listSort, "sort", "newest", "Sort: newest, oldest, most-voted, most-commented")
	listCmd.Flags().StringVar(&listFrom, "from", "", "Only feedback submitted on or after this date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "Only feedback submitted on or before this date (YYYY-MM-DD)")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().BoolVar(&listCached, "cached", false, "List from the local snapshot cache instead of the API")
	listCmd.Flags().BoolVar(&listNoSave, "no-save", false, "Do not cache the fetched page locally")
	rootCmd.AddCommand(listCmd)
}

// listFilters builds a filter patch from the list flags.
func listFilters() (models.FilterPatch, error) {
	patch := models.FilterPatch{
		Search:   &listSearch,
		Category: ptrOf(models.Category(listCategory)),
		Status:   ptrOf(models.Status(listStatus)),
		Priority: ptrOf(models.Priority(listPriority)),
		SortBy:   ptrOf(models.SortKey(listSort)),
	}
	if listFrom != "" {
		from, err := time.Parse("2006-01-02", listFrom)
		if err != nil {
			return patch, fmt.Errorf("invalid --from date %q (want YYYY-MM-DD)", listFrom)
		}
		patch.From = &from
	}
	if listTo != "" {
		to, err := time.Parse("2006-01-02", listTo)
		if err != nil {
			return patch, fmt.Errorf("invalid --to date %q (want YYYY-MM-DD)", listTo)
		}
		patch.To = &to
	}
	return patch, nil
}

func listRun(ctx context.Context) error {
	patch, err := listFilters()
	if err != nil {
		return err
	}

	if listCached {
		return listCachedRun(ctx, patch)
	}

	f := getFeed()
	if err := f.SetFilters(ctx, patch); err != nil {
		return err
	}
	if listPage > 1 {
		if err := f.SetPage(ctx, listPage); err != nil {
			return err
		}
	}

	snap := f.Snapshot()
	renderFeedbackTable(snap.Items)
	ui.Info("%d of %d feedback items (page %d)", len(snap.Items), snap.Total, snap.Page)

	if !listNoSave {
		saveSnapshot(ctx, snap.Items, snap.Total, snap.Filters)
	}
	return nil
}

// listCachedRun lists from the newest local snapshot, filtering locally.
func listCachedRun(ctx context.Context, patch models.FilterPatch) error {
	s, err := getStore()
	if err != nil {
		return err
	}

	snap, err := s.LatestSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("no cached feedback: %w (run 'fbk list' online first)", err)
	}

	filters := models.Filters{}.Merge(patch)
	items := filter.Apply(snap.Items, filters)
	renderFeedbackTable(items)
	ui.Info("%d cached items (snapshot taken %s)", len(items), format.RelativeTime(snap.TakenAt, time.Now()))
	return nil
}

// saveSnapshot caches a fetched page, best-effort.
func saveSnapshot(ctx context.Context, items []models.Feedback, total int, filters models.Filters) {
	s, err := getStore()
	if err != nil {
		ui.VerboseLog("cache unavailable: %v", err)
		return
	}
	if _, err := s.SaveSnapshot(ctx, items, total, filters); err != nil {
		ui.VerboseLog("cache snapshot failed: %v", err)
		return
	}
	if _, err := s.PruneSnapshots(ctx, viperCacheKeep()); err != nil {
		ui.VerboseLog("cache prune failed: %v", err)
	}
}

func renderFeedbackTable(items []models.Feedback) {
	if len(items) == 0 {
		ui.Info("No feedback matches.")
		return
	}

	table := ui.Table([]string{"ID", "TITLE", "CATEGORY", "PRIORITY", "STATUS", "VOTES", "COMMENTS", "SUBMITTED"})
	for _, item := range items {
		_ = table.Append([]string{
			item.ID,
			truncate(item.Title, 48),
			output.CategoryColor(string(item.Category)),
			output.PriorityColor(string(item.Priority)),
			output.StatusColor(string(item.Status)),
			strconv.Itoa(item.Votes),
			strconv.Itoa(item.Comments),
			format.RelativeTime(item.SubmittedAt, time.Now()),
		})
	}
	_ = table.Render()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func ptrOf[T any](v T) *T { return &v }
