package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iautotransfer/iautotransfer/internal/device"
	"github.com/iautotransfer/iautotransfer/internal/media"
	"github.com/iautotransfer/iautotransfer/internal/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List camera media on the connected device",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().String("type", media.KindAll, "media type: all, photos or videos")
	scanCmd.Flags().Int("year", 0, "only files from this year (0 = any)")
	scanCmd.Flags().Int("month", 0, "only files from this month (0 = any)")
	scanCmd.Flags().Bool("list", false, "print every matched file, not just the summary")

	viper.BindPFlag("type", scanCmd.Flags().Lookup("type"))
	viper.BindPFlag("year", scanCmd.Flags().Lookup("year"))
	viper.BindPFlag("month", scanCmd.Flags().Lookup("month"))
}

func runScan(cmd *cobra.Command, args []string) error {
	scanner := scan.NewScanner(device.NewMuxDialer(viper.GetString("udid")))
	scanner.SetLogCallback(func(msg string) { fmt.Fprintln(os.Stderr, msg) })
	scanner.SetProgressCallback(func(filesSeen int) {
		fmt.Fprintf(os.Stderr, "\rinspected %d files", filesSeen)
	})

	filter := media.NewFilter(viper.GetString("type"), viper.GetInt("year"), viper.GetInt("month"))

	result, err := scanner.Scan(cmd.Context(), filter)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr)

	listAll, _ := cmd.Flags().GetBool("list")
	if listAll {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Path", "Kind", "Size", "Date"})
		table.SetBorder(false)
		for _, f := range result.Files {
			date := "-"
			if f.Year != 0 {
				date = fmt.Sprintf("%d", f.Year)
				if f.Month != 0 {
					date = fmt.Sprintf("%d-%02d", f.Year, f.Month)
				}
			}
			table.Append([]string{
				f.RemotePath,
				string(f.Kind),
				fmt.Sprintf("%.1f MB", float64(f.Size)/1024/1024),
				date,
			})
		}
		table.Render()
	}

	fmt.Printf("\n%s (iOS %s): %d files, %d photos, %d videos, %.1f MB\n",
		result.Device.Name, result.Device.ProductVersion,
		result.Summary.Total, result.Summary.Photos, result.Summary.Videos,
		float64(result.Summary.TotalBytes)/1024/1024)
	return nil
}
