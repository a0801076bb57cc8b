package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iautotransfer/iautotransfer/internal/update"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, optionally checking for updates",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("check", false, "ask the release feed for a newer version")
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Println("iactl", update.Version)

	check, _ := cmd.Flags().GetBool("check")
	if !check {
		return nil
	}

	newer, release, err := update.NewChecker().Check()
	if err != nil {
		return fmt.Errorf("release check failed: %w", err)
	}
	if newer {
		fmt.Printf("update available: %s (%s)\n", release.TagName, release.HTMLURL)
	} else {
		fmt.Println("up to date")
	}
	return nil
}
