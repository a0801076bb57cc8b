package main

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/iautotransfer/iautotransfer/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently transferred files",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Int("limit", 20, "entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(history.DefaultPath())
	if err != nil {
		return fmt.Errorf("opening transfer history: %w", err)
	}
	defer store.Close()

	total, err := store.Count()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.Recent(limit)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Copied at", "Remote path", "Size"})
	table.SetBorder(false)
	for _, e := range entries {
		table.Append([]string{
			e.CopiedAt.Local().Format(time.DateTime),
			e.RemotePath,
			fmt.Sprintf("%.1f MB", float64(e.Size)/1024/1024),
		})
	}
	table.Render()

	fmt.Printf("\n%d files recorded in total\n", total)
	return nil
}
