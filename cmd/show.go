package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grcdash/fbk/internal/format"
	"github.com/grcdash/fbk/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <feedback-id>",
	Short: "Show feedback details and comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return showRun(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func showRun(cmd *cobra.Command, id string) error {
	ctx := cmd.Context()
	api := getClient()

	fb, err := api.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "%s  %s\n", output.Cyan(fb.ID), fb.Title)
	fmt.Fprintf(ui.Out, "  Category:  %s\n", output.CategoryColor(string(fb.Category)))
	fmt.Fprintf(ui.Out, "  Priority:  %s\n", output.PriorityColor(string(fb.Priority)))
	fmt.Fprintf(ui.Out, "  Status:    %s\n", output.StatusColor(string(fb.Status)))
	fmt.Fprintf(ui.Out, "  Votes:     %d\n", fb.Votes)
	fmt.Fprintf(ui.Out, "  Submitted: %s (%s)\n", format.Date(fb.SubmittedAt), format.RelativeTime(fb.SubmittedAt, time.Now()))
	if fb.ImpactArea != "" {
		fmt.Fprintf(ui.Out, "  Impact:    %s\n", fb.ImpactArea)
	}
	if fb.Description != "" {
		fmt.Fprintf(ui.Out, "\n%s\n", fb.Description)
	}

	comments, err := api.ListComments(ctx, id)
	if err != nil {
		// The item rendered fine; comments are best-effort.
		ui.Warning("Could not load comments: %v", err)
		return nil
	}
	if len(comments) == 0 {
		return nil
	}

	fmt.Fprintf(ui.Out, "\nComments (%d):\n", len(comments))
	for _, c := range comments {
		fmt.Fprintf(ui.Out, "  %s %s\n", output.Yellow(format.RelativeTime(c.CreatedAt, time.Now())), c.Body)
	}
	return nil
}
