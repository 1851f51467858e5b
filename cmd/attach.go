package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var attachCmd = &cobra.Command{
	Use:   "attach <file>",
	Short: "Upload an attachment",
	Long:  "Upload a file (screenshot, evidence document) to attach to feedback.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return attachRun(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(attachCmd)
}

func attachRun(cmd *cobra.Command, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	if dryRun {
		ui.DryRunMsg("Would upload %s", path)
		return nil
	}

	att, err := getClient().UploadAttachment(cmd.Context(), filepath.Base(path), f)
	if err != nil {
		return err
	}
	ui.Success("Uploaded %s: %s (%s)", filepath.Base(path), att.ID, att.URL)
	return nil
}
