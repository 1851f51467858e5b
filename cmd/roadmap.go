package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grcdash/fbk/internal/output"
)

var roadmapQuarter string

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Show the feedback-driven roadmap",
	Long:  "Show planned feedback items grouped by delivery quarter.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return roadmapRun(cmd)
	},
}

func init() {
	roadmapCmd.Flags().StringVar(&roadmapQuarter, "quarter", "", "Limit to one quarter, e.g. 2026-Q1")
	rootCmd.AddCommand(roadmapCmd)
}

func roadmapRun(cmd *cobra.Command) error {
	items, err := getClient().Roadmap(cmd.Context(), roadmapQuarter)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		ui.Info("Nothing on the roadmap.")
		return nil
	}

	table := ui.Table([]string{"QUARTER", "ID", "TITLE", "STATUS"})
	for _, item := range items {
		_ = table.Append([]string{
			item.Quarter,
			item.FeedbackID,
			truncate(item.Title, 48),
			output.StatusColor(string(item.Status)),
		})
	}
	_ = table.Render()
	return nil
}
