package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment <feedback-id> <body...>",
	Short: "Comment on a feedback item",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return commentRun(cmd, args[0], strings.Join(args[1:], " "))
	},
}

func init() {
	rootCmd.AddCommand(commentCmd)
}

func commentRun(cmd *cobra.Command, id, body string) error {
	if dryRun {
		ui.DryRunMsg("Would comment on feedback %s", id)
		return nil
	}

	comment, err := getClient().AddComment(cmd.Context(), id, body)
	if err != nil {
		return err
	}
	ui.Success("Comment %s added to feedback %s", comment.ID, id)
	return nil
}
