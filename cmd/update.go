package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grcdash/fbk/internal/client"
	"github.com/grcdash/fbk/internal/models"
)

var (
	updateTitle    string
	updateDesc     string
	updateCategory string
	updatePriority string
	updateStatus   string
)

var updateCmd = &cobra.Command{
	Use:   "update <feedback-id>",
	Short: "Update a feedback item",
	Long:  "Apply a partial update to a feedback item. Only the provided flags change.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateRun(cmd, args[0])
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVar(&updateDesc, "desc", "", "New description")
	updateCmd.Flags().StringVar(&updateCategory, "category", "", "New category")
	updateCmd.Flags().StringVar(&updatePriority, "priority", "", "New priority")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "New status")
	rootCmd.AddCommand(updateCmd)
}

func updateRun(cmd *cobra.Command, id string) error {
	var req client.UpdateRequest

	if updateTitle != "" {
		req.Title = &updateTitle
	}
	if updateDesc != "" {
		req.Description = &updateDesc
	}
	if updateCategory != "" {
		category := models.Category(updateCategory)
		if !category.Valid() {
			return fmt.Errorf("invalid category: %s", updateCategory)
		}
		req.Category = &category
	}
	if updatePriority != "" {
		priority := models.Priority(updatePriority)
		if !priority.Valid() {
			return fmt.Errorf("invalid priority: %s", updatePriority)
		}
		req.Priority = &priority
	}
	if updateStatus != "" {
		status := models.Status(updateStatus)
		if !status.Valid() {
			return fmt.Errorf("invalid status: %s", updateStatus)
		}
		req.Status = &status
	}

	if req == (client.UpdateRequest{}) {
		return fmt.Errorf("nothing to update (set at least one of --title, --desc, --category, --priority, --status)")
	}

	if dryRun {
		ui.DryRunMsg("Would update feedback %s", id)
		return nil
	}

	fb, err := getFeed().Update(cmd.Context(), id, req)
	if err != nil {
		return err
	}
	ui.Success("Feedback %s updated (status: %s)", fb.ID, fb.Status)
	return nil
}
