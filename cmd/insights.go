package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grcdash/fbk/internal/engage"
	"github.com/grcdash/fbk/internal/llm"
	"github.com/grcdash/fbk/internal/models"
	"github.com/grcdash/fbk/internal/output"
)

var (
	insightsDigest bool
	insightsLocal  bool
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show feedback analytics and insights",
	Long: `Show aggregate analytics, engagement metrics, and AI-generated insights.

With --digest, additionally asks the configured LLM for a prose summary of
the current feedback themes. With --local, scores engagement per item from
the newest cached snapshot without touching the API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if insightsLocal {
			return insightsLocalRun(cmd.Context())
		}
		return insightsRun(cmd.Context())
	},
}

func init() {
	insightsCmd.Flags().BoolVar(&insightsDigest, "digest", false, "Generate an LLM digest of feedback themes")
	insightsCmd.Flags().BoolVar(&insightsLocal, "local", false, "Score engagement from the local cache, offline")
	rootCmd.AddCommand(insightsCmd)
}

func insightsRun(ctx context.Context) error {
	api := getClient()

	analytics, err := api.Analytics(ctx)
	if err != nil {
		return err
	}

	ui.Info("Feedback: %d items, %d votes total", analytics.Total, analytics.TotalVotes)

	table := ui.Table([]string{"CATEGORY", "COUNT"})
	for category, count := range analytics.ByCategory {
		_ = table.Append([]string{output.CategoryColor(string(category)), strconv.Itoa(count)})
	}
	_ = table.Render()

	table = ui.Table([]string{"STATUS", "COUNT"})
	for status, count := range analytics.ByStatus {
		_ = table.Append([]string{output.StatusColor(string(status)), strconv.Itoa(count)})
	}
	_ = table.Render()

	if engagement, err := api.Engagement(ctx); err == nil {
		ui.Info("Engagement: %d active users, %d votes, %d comments (avg %.1f votes/item)",
			engagement.ActiveUsers, engagement.VotesCast, engagement.CommentsAdded, engagement.AvgVotes)
	} else {
		ui.VerboseLog("engagement unavailable: %v", err)
	}

	if insights, err := api.AIInsights(ctx); err == nil && len(insights) > 0 {
		fmt.Fprintln(ui.Out)
		for _, insight := range insights {
			fmt.Fprintf(ui.Out, "%s %s\n    %s\n", output.Cyan("•"), insight.Title, insight.Summary)
		}
	} else if err != nil {
		ui.VerboseLog("ai insights unavailable: %v", err)
	}

	if insightsDigest {
		return digestRun(ctx)
	}
	return nil
}

// digestRun summarizes the current feedback list with the configured LLM.
func digestRun(ctx context.Context) error {
	apiKey := viper.GetString("anthropic.api_key")
	if apiKey == "" {
		return fmt.Errorf("anthropic.api_key is not configured (set FBK_ANTHROPIC_API_KEY or add it to config.yaml)")
	}

	res, err := getClient().List(ctx, models.Filters{SortBy: models.SortMostVoted}, 1, 50)
	if err != nil {
		return err
	}
	if len(res.Items) == 0 {
		ui.Info("No feedback to digest.")
		return nil
	}

	lc := llm.NewClient(apiKey, viper.GetString("anthropic.model"))
	digest, err := lc.Digest(ctx, res.Items)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "\n%s\n", digest)
	return nil
}

// insightsLocalRun scores engagement per item from the newest cached snapshot.
func insightsLocalRun(ctx context.Context) error {
	s, err := getStore()
	if err != nil {
		return err
	}

	snap, err := s.LatestSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("no cached feedback: %w (run 'fbk list' online first)", err)
	}

	scorer := engage.NewScorer()
	now := time.Now()

	table := ui.Table([]string{"ID", "TITLE", "SCORE", "VOTES", "COMMENTS", "RECENCY"})
	for _, item := range snap.Items {
		score := scorer.Score(item, now)
		_ = table.Append([]string{
			item.ID,
			truncate(item.Title, 40),
			output.ScoreColor(score.Total),
			strconv.Itoa(score.Votes),
			strconv.Itoa(score.Comments),
			strconv.Itoa(score.Recency),
		})
	}
	_ = table.Render()
	ui.Info("Scored %d cached items", len(snap.Items))
	return nil
}
