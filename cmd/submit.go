package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grcdash/fbk/internal/client"
	"github.com/grcdash/fbk/internal/models"
)

var (
	submitTitle    string
	submitDesc     string
	submitCategory string
	submitPriority string
	submitImpact   string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit new feedback",
	Long:  "Submit a new feedback item to the dashboard's feedback API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return submitRun(cmd)
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitTitle, "title", "", "Feedback title (required)")
	submitCmd.Flags().StringVar(&submitDesc, "desc", "", "Feedback description (required)")
	submitCmd.Flags().StringVar(&submitCategory, "category", "feature", "Category: feature, bug, improvement, integration, performance")
	submitCmd.Flags().StringVar(&submitPriority, "priority", "medium", "Priority: low, medium, high, critical")
	submitCmd.Flags().StringVar(&submitImpact, "impact", "", "Affected dashboard area, e.g. risk-register")
	_ = submitCmd.MarkFlagRequired("title")
	_ = submitCmd.MarkFlagRequired("desc")
	rootCmd.AddCommand(submitCmd)
}

func submitRun(cmd *cobra.Command) error {
	category := models.Category(submitCategory)
	if !category.Valid() {
		return fmt.Errorf("invalid category: %s", submitCategory)
	}
	priority := models.Priority(submitPriority)
	if !priority.Valid() {
		return fmt.Errorf("invalid priority: %s", submitPriority)
	}

	if dryRun {
		ui.DryRunMsg("Would submit %q (%s/%s)", submitTitle, category, priority)
		return nil
	}

	fb, err := getFeed().Submit(cmd.Context(), client.CreateRequest{
		Title:       submitTitle,
		Description: submitDesc,
		Category:    category,
		Priority:    priority,
		ImpactArea:  submitImpact,
	})
	if err != nil {
		return err
	}

	ui.Success("Feedback submitted: %s", fb.ID)
	return nil
}
