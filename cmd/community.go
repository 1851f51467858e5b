package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

var communityCmd = &cobra.Command{
	Use:   "community",
	Short: "Show community statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return communityRun(cmd)
	},
}

func init() {
	rootCmd.AddCommand(communityCmd)
}

func communityRun(cmd *cobra.Command) error {
	stats, err := getClient().Community(cmd.Context())
	if err != nil {
		return err
	}

	ui.Info("Community: %d contributors across %d organizations", stats.Contributors, stats.Organizations)

	if len(stats.TopVoted) > 0 {
		table := ui.Table([]string{"ID", "TITLE", "VOTES"})
		for _, item := range stats.TopVoted {
			_ = table.Append([]string{item.ID, truncate(item.Title, 48), strconv.Itoa(item.Votes)})
		}
		_ = table.Render()
	}
	return nil
}
