package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grcdash/fbk/internal/client"
	"github.com/grcdash/fbk/internal/llm"
	"github.com/grcdash/fbk/internal/models"
	"github.com/grcdash/fbk/internal/output"
)

var triageApply bool

var triageCmd = &cobra.Command{
	Use:   "triage <feedback-id>",
	Short: "Suggest category and priority for a feedback item",
	Long: `Ask the configured LLM to classify a feedback item.

By default only prints the suggestion; with --apply, the suggested category
and priority are written back through the API.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return triageRun(cmd, args[0])
	},
}

func init() {
	triageCmd.Flags().BoolVar(&triageApply, "apply", false, "Apply the suggestion to the feedback item")
	rootCmd.AddCommand(triageCmd)
}

func triageRun(cmd *cobra.Command, id string) error {
	apiKey := viper.GetString("anthropic.api_key")
	if apiKey == "" {
		return fmt.Errorf("anthropic.api_key is not configured (set FBK_ANTHROPIC_API_KEY or add it to config.yaml)")
	}
	ctx := cmd.Context()

	fb, err := getClient().Get(ctx, id)
	if err != nil {
		return err
	}

	lc := llm.NewClient(apiKey, viper.GetString("anthropic.model"))
	suggestion, err := lc.Triage(ctx, fb.Title, fb.Description)
	if err != nil {
		return err
	}

	ui.Info("Suggested category: %s", output.CategoryColor(suggestion.Category))
	ui.Info("Suggested priority: %s", output.PriorityColor(suggestion.Priority))
	fmt.Fprintf(ui.Out, "  %s\n", suggestion.Rationale)

	if !triageApply {
		return nil
	}

	category := models.Category(suggestion.Category)
	priority := models.Priority(suggestion.Priority)
	if !category.Valid() || !priority.Valid() {
		return fmt.Errorf("LLM returned an unknown classification (%s/%s); not applying", suggestion.Category, suggestion.Priority)
	}

	if dryRun {
		ui.DryRunMsg("Would set %s to %s/%s", id, category, priority)
		return nil
	}

	if _, err := getFeed().Update(ctx, id, client.UpdateRequest{
		Category: &category,
		Priority: &priority,
	}); err != nil {
		return err
	}
	ui.Success("Feedback %s reclassified as %s/%s", id, category, priority)
	return nil
}
