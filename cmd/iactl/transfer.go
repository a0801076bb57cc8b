package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iautotransfer/iautotransfer/internal/convert"
	"github.com/iautotransfer/iautotransfer/internal/device"
	"github.com/iautotransfer/iautotransfer/internal/history"
	"github.com/iautotransfer/iautotransfer/internal/media"
	"github.com/iautotransfer/iautotransfer/internal/model"
	"github.com/iautotransfer/iautotransfer/internal/platform"
	"github.com/iautotransfer/iautotransfer/internal/scan"
	"github.com/iautotransfer/iautotransfer/internal/transfer"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Copy camera media from the device to a local folder",
	RunE:  runTransfer,
}

func init() {
	rootCmd.AddCommand(transferCmd)

	transferCmd.Flags().String("dest", "", "destination folder (default ~/Pictures/iAutoTransfer)")
	transferCmd.Flags().Int("workers", 3, "parallel transfer sessions (1-8)")
	transferCmd.Flags().Bool("flatten", true, "drop the device folder structure")
	transferCmd.Flags().Bool("skip-existing", true, "skip files already present at the destination")
	transferCmd.Flags().Bool("convert-heic", false, "convert HEIC stills to JPEG")
	transferCmd.Flags().Bool("delete-heic", false, "remove the HEIC after a successful conversion")
	transferCmd.Flags().Bool("manifest", true, "write a CSV manifest into the destination")
	transferCmd.Flags().Bool("skip-transferred", false, "skip files recorded in the transfer history")
	transferCmd.Flags().String("type", media.KindAll, "media type: all, photos or videos")
	transferCmd.Flags().Int("year", 0, "only files from this year (0 = any)")
	transferCmd.Flags().Int("month", 0, "only files from this month (0 = any)")

	viper.BindPFlag("dest", transferCmd.Flags().Lookup("dest"))
	viper.BindPFlag("workers", transferCmd.Flags().Lookup("workers"))
	viper.BindPFlag("flatten", transferCmd.Flags().Lookup("flatten"))
	viper.BindPFlag("convert_heic", transferCmd.Flags().Lookup("convert-heic"))
}

func runTransfer(cmd *cobra.Command, args []string) error {
	dest := viper.GetString("dest")
	if dest == "" {
		var err error
		if dest, err = platform.DefaultDestinationDir(); err != nil {
			return err
		}
	}

	dialer := device.NewMuxDialer(viper.GetString("udid"))

	scanner := scan.NewScanner(dialer)
	scanner.SetLogCallback(func(msg string) { fmt.Fprintln(os.Stderr, msg) })

	filter := media.NewFilter(viper.GetString("type"), viper.GetInt("year"), viper.GetInt("month"))

	result, err := scanner.Scan(cmd.Context(), filter)
	if err != nil {
		return err
	}
	if result.Summary.Total == 0 {
		fmt.Println("nothing to transfer")
		return nil
	}

	converter := convert.NewService()
	converter.SetLogCallback(func(msg string) { fmt.Fprintln(os.Stderr, msg) })

	opts := transfer.Options{
		DestRoot:      dest,
		Workers:       viper.GetInt("workers"),
		Flatten:       viper.GetBool("flatten"),
		SkipExisting:  mustFlagBool(cmd, "skip-existing"),
		WriteManifest: mustFlagBool(cmd, "manifest"),
		ConvertHEIC:   viper.GetBool("convert_heic"),
		DeleteHEIC:    mustFlagBool(cmd, "delete-heic"),
		Converter:     converter,
	}

	if mustFlagBool(cmd, "skip-transferred") {
		store, err := history.Open(history.DefaultPath())
		if err != nil {
			return fmt.Errorf("opening transfer history: %w", err)
		}
		defer store.Close()
		opts.SkipTransferred = true
		opts.Recorder = store
	}

	controller := transfer.New(dialer, opts)

	bar := progressbar.DefaultBytes(result.Summary.TotalBytes, "transferring")
	controller.SetStatsCallback(func(stats model.TransferStats) {
		bar.Set64(stats.BytesDone)
	})

	var workerMu sync.Mutex
	workers := map[int]model.WorkerStatus{}
	controller.SetWorkerCallback(func(ws model.WorkerStatus) {
		workerMu.Lock()
		defer workerMu.Unlock()
		if ws.MBPS == 0 {
			if prev, ok := workers[ws.ID]; ok {
				ws.MBPS = prev.MBPS
			}
		}
		workers[ws.ID] = ws
	})

	runResult, err := controller.Run(cmd.Context(), result.Files)
	bar.Finish()
	fmt.Println()
	if err != nil {
		return err
	}

	printWorkerTable(workers)

	fmt.Printf("\n%d copied, %d skipped, %d failed in %s\n",
		runResult.Copied, runResult.Skipped, len(runResult.Failed),
		runResult.Duration.Round(time.Second))
	if runResult.ManifestPath != "" {
		fmt.Println("manifest:", runResult.ManifestPath)
	}
	for _, f := range runResult.Failed {
		fmt.Fprintf(os.Stderr, "failed: %s: %s\n", f.File.RemotePath, f.Err)
	}
	if len(runResult.Failed) > 0 {
		return fmt.Errorf("%d files failed", len(runResult.Failed))
	}
	return nil
}

func printWorkerTable(workers map[int]model.WorkerStatus) {
	if len(workers) == 0 {
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Worker", "Files", "MB/s", "Last file"})
	table.SetBorder(false)
	for id := 1; id <= transfer.MaxWorkers; id++ {
		ws, ok := workers[id]
		if !ok {
			continue
		}
		speed := "-"
		if ws.MBPS > 0 {
			speed = fmt.Sprintf("%.1f", ws.MBPS)
		}
		table.Append([]string{
			fmt.Sprintf("%d", id),
			fmt.Sprintf("%d", ws.Files),
			speed,
			ws.LastFile,
		})
	}
	table.Render()
}

func mustFlagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}
