package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grcdash/fbk/internal/models"
)

var voteCmd = &cobra.Command{
	Use:   "vote <feedback-id> [up|down]",
	Short: "Vote on a feedback item",
	Long:  "Cast a vote on a feedback item. Direction defaults to up.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := models.VoteUp
		if len(args) == 2 {
			dir = models.VoteDirection(args[1])
		}
		return voteRun(cmd, args[0], dir)
	},
}

func init() {
	rootCmd.AddCommand(voteCmd)
}

func voteRun(cmd *cobra.Command, id string, dir models.VoteDirection) error {
	if !dir.Valid() {
		return fmt.Errorf("invalid vote direction: %s (use up or down)", dir)
	}

	if dryRun {
		ui.DryRunMsg("Would vote %s on feedback %s", dir, id)
		return nil
	}

	votes, err := getFeed().Vote(cmd.Context(), id, dir)
	if err != nil {
		return err
	}
	ui.Success("Feedback %s now has %d votes", id, votes)
	return nil
}
