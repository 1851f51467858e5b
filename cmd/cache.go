package cmd

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grcdash/fbk/internal/format"
)

var cachePruneKeep int

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local snapshot cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cacheListRun(cmd)
	},
}

var cacheListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List cached snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cacheListRun(cmd)
	},
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cachePruneRun(cmd)
	},
}

func init() {
	cachePruneCmd.Flags().IntVar(&cachePruneKeep, "keep", 0, "Snapshots to keep (default from config cache.keep)")
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	rootCmd.AddCommand(cacheCmd)
}

func viperCacheKeep() int {
	return viper.GetInt("cache.keep")
}

func cacheListRun(cmd *cobra.Command) error {
	s, err := getStore()
	if err != nil {
		return err
	}

	metas, err := s.ListSnapshots(cmd.Context(), 50)
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		ui.Info("Cache is empty. Run 'fbk list' online to populate it.")
		return nil
	}

	table := ui.Table([]string{"ID", "TAKEN", "ITEMS", "TOTAL"})
	for _, m := range metas {
		_ = table.Append([]string{
			m.ID,
			format.RelativeTime(m.TakenAt, time.Now()),
			strconv.Itoa(m.ItemCount),
			strconv.Itoa(m.Total),
		})
	}
	_ = table.Render()
	return nil
}

func cachePruneRun(cmd *cobra.Command) error {
	keep := cachePruneKeep
	if keep <= 0 {
		keep = viperCacheKeep()
	}

	if dryRun {
		ui.DryRunMsg("Would prune cache to the newest %d snapshots", keep)
		return nil
	}

	s, err := getStore()
	if err != nil {
		return err
	}

	removed, err := s.PruneSnapshots(cmd.Context(), keep)
	if err != nil {
		return err
	}
	ui.Success("Pruned %d snapshots (kept %d)", removed, keep)
	return nil
}
