package cmd

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <feedback-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a feedback item",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteRun(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func deleteRun(cmd *cobra.Command, id string) error {
	if dryRun {
		ui.DryRunMsg("Would delete feedback %s", id)
		return nil
	}

	if err := getFeed().Delete(cmd.Context(), id); err != nil {
		return err
	}
	ui.Success("Feedback %s deleted", id)
	return nil
}
