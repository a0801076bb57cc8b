package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/iautotransfer/iautotransfer/internal/config"
	"github.com/iautotransfer/iautotransfer/internal/convert"
	"github.com/iautotransfer/iautotransfer/internal/device"
	"github.com/iautotransfer/iautotransfer/internal/history"
	"github.com/iautotransfer/iautotransfer/internal/media"
	"github.com/iautotransfer/iautotransfer/internal/model"
	"github.com/iautotransfer/iautotransfer/internal/platform"
	"github.com/iautotransfer/iautotransfer/internal/scan"
	"github.com/iautotransfer/iautotransfer/internal/transfer"
	"github.com/iautotransfer/iautotransfer/internal/update"
)

// Year filter range shown in the dropdown
const oldestFilterYear = 2010

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window

	settings     *config.Settings
	localization *Localization

	dialer       device.Dialer
	scanner      *scan.Scanner
	converter    *convert.Service
	historyStore *history.Store

	// Run state
	mu         sync.Mutex
	scanResult *scan.Result
	controller *transfer.Controller
	lastFailed []transfer.FailedFile
	cancelRun  context.CancelFunc
	running    atomic.Bool
	scanning   atomic.Bool

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex

	// Device header
	deviceLabel  *widget.Label
	storageBar   *widget.ProgressBar
	storageLabel *widget.Label

	// Filters and destination
	typeSelect  *widget.Select
	yearSelect  *widget.Select
	monthSelect *widget.Select
	destEntry   *widget.Entry

	// Controls
	scanBtn     *widget.Button
	transferBtn *widget.Button
	pauseBtn    *widget.Button
	stopBtn     *widget.Button
	retryBtn    *widget.Button

	workersSlider *widget.Slider
	workersLabel  *widget.Label

	// Progress
	progressBar  *widget.ProgressBar
	statsLabel   *widget.Label
	summaryLabel *widget.Label

	workerTable *WorkerTable
	failedList  *FailedList

	// Log panel
	logList  *widget.List
	logMutex sync.Mutex
	logLines []string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, dialer device.Dialer, scanner *scan.Scanner, converter *convert.Service, historyStore *history.Store) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	destDir := settings.GetDestinationDirectory()
	platform.CreateDirectoryIfNotExists(destDir)

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		dialer:       dialer,
		scanner:      scanner,
		converter:    converter,
		historyStore: historyStore,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	scanner.SetLogCallback(ui.appendLog)
	scanner.SetProgressCallback(func(filesSeen int) {
		ui.appendLog(fmt.Sprintf("[scan] %d files inspected", filesSeen))
	})
	converter.SetLogCallback(ui.appendLog)

	ui.setupUI()

	if !platform.HasAppleDrivers() {
		ui.scanBtn.Disable()
		ui.transferBtn.Disable()
		ui.appendLog(localization.GetText(KeyNoDriver))
		dialog.ShowError(fmt.Errorf("%s", localization.GetText(KeyNoDriver)), window)
	}

	go ui.checkForUpdate()

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	loc := ui.localization

	ui.createMenu()

	// Device header
	ui.deviceLabel = widget.NewLabel(IconPhone + " " + loc.GetText(KeyNoDevice))
	ui.storageBar = widget.NewProgressBar()
	ui.storageBar.TextFormatter = func() string { return "" }
	ui.storageLabel = widget.NewLabel(DashPlaceholder)

	ui.scanBtn = widget.NewButton(loc.GetText(KeyScan), ui.onScanClick)
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	storageBox := container.NewBorder(nil, nil, nil, ui.storageLabel, ui.storageBar)
	header := container.NewBorder(nil, nil, nil,
		container.NewHBox(ui.scanBtn, settingsBtn),
		container.NewVBox(ui.deviceLabel, storageBox),
	)

	// Filter row
	ui.typeSelect = widget.NewSelect([]string{
		loc.GetText(KeyTypeAll), loc.GetText(KeyTypePhotos), loc.GetText(KeyTypeVideos),
	}, nil)
	ui.typeSelect.SetSelectedIndex(0)

	ui.yearSelect = widget.NewSelect(yearOptions(loc), nil)
	ui.yearSelect.SetSelectedIndex(0)

	ui.monthSelect = widget.NewSelect(monthOptions(loc), nil)
	ui.monthSelect.SetSelectedIndex(0)

	ui.destEntry = widget.NewEntry()
	ui.destEntry.SetText(ui.settings.GetDestinationDirectory())
	browseBtn := widget.NewButton(loc.GetText(KeyBrowse), ui.onBrowseDestination)
	openBtn := widget.NewButton(IconFolder, ui.onOpenDestination)
	openBtn.Importance = widget.LowImportance

	filterRow := container.NewBorder(nil, nil,
		container.NewHBox(ui.typeSelect, ui.yearSelect, ui.monthSelect),
		container.NewHBox(browseBtn, openBtn),
		ui.destEntry,
	)

	// Control row
	ui.transferBtn = widget.NewButton(loc.GetText(KeyTransfer), ui.onTransferClick)
	ui.transferBtn.Importance = widget.HighImportance
	ui.transferBtn.Disable()

	ui.pauseBtn = widget.NewButton(IconPause+" "+loc.GetText(KeyPause), ui.onPauseClick)
	ui.pauseBtn.Disable()
	ui.stopBtn = widget.NewButton(IconStop+" "+loc.GetText(KeyStop), ui.onStopClick)
	ui.stopBtn.Disable()
	ui.retryBtn = widget.NewButton(IconRefresh+" "+loc.GetText(KeyRetryFailed), ui.onRetryFailed)
	ui.retryBtn.Disable()

	ui.workersSlider = widget.NewSlider(transfer.MinWorkers, transfer.MaxWorkers)
	ui.workersSlider.Step = 1
	ui.workersSlider.SetValue(float64(ui.settings.GetWorkers()))
	ui.workersLabel = widget.NewLabel(fmt.Sprintf("%s: %d", loc.GetText(KeyWorkers), ui.settings.GetWorkers()))
	ui.workersSlider.OnChanged = ui.onWorkersChanged

	controlRow := container.NewBorder(nil, nil,
		container.NewHBox(ui.transferBtn, ui.pauseBtn, ui.stopBtn, ui.retryBtn),
		container.NewHBox(ui.workersLabel),
		ui.workersSlider,
	)

	// Progress
	ui.progressBar = widget.NewProgressBar()
	ui.statsLabel = widget.NewLabel(DashPlaceholder)
	ui.summaryLabel = widget.NewLabel("")

	// Worker telemetry
	ui.workerTable = NewWorkerTable()

	// Failed files pane, mirrors the controller's failed list
	ui.failedList = NewFailedList()

	// Log panel
	ui.logList = widget.NewList(
		func() int {
			ui.logMutex.Lock()
			defer ui.logMutex.Unlock()
			return len(ui.logLines)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			ui.logMutex.Lock()
			defer ui.logMutex.Unlock()
			if id < len(ui.logLines) {
				obj.(*widget.Label).SetText(ui.logLines[id])
			}
		},
	)

	top := container.NewVBox(
		header,
		widget.NewSeparator(),
		filterRow,
		controlRow,
		ui.summaryLabel,
		ui.progressBar,
		ui.statsLabel,
	)

	failedBox := container.NewBorder(
		widget.NewLabel(loc.GetText(KeyFailedFiles)), nil, nil, nil,
		ui.failedList.Widget(),
	)
	lower := container.NewHSplit(ui.logList, failedBox)
	lower.SetOffset(0.62)

	split := container.NewVSplit(ui.workerTable.Widget(), lower)
	split.SetOffset(0.55)

	content := container.NewBorder(top, nil, nil, nil, split)
	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	loc := ui.localization
	ui.window.SetTitle(loc.GetText(KeyAppTitle))
	ui.scanBtn.SetText(loc.GetText(KeyScan))
	ui.transferBtn.SetText(loc.GetText(KeyTransfer))
	ui.pauseBtn.SetText(IconPause + " " + loc.GetText(KeyPause))
	ui.stopBtn.SetText(IconStop + " " + loc.GetText(KeyStop))
	ui.retryBtn.SetText(IconRefresh + " " + loc.GetText(KeyRetryFailed))
}

// currentFilter builds a media filter from the dropdowns
func (ui *RootUI) currentFilter() media.Filter {
	kind := media.KindAll
	switch ui.typeSelect.SelectedIndex() {
	case 1:
		kind = media.KindPhotos
	case 2:
		kind = media.KindVideos
	}

	year := 0
	if ui.yearSelect.SelectedIndex() > 0 {
		if y, err := strconv.Atoi(ui.yearSelect.Selected); err == nil {
			year = y
		}
	}

	month := ui.monthSelect.SelectedIndex() // 0 is "any", then 1..12

	return media.NewFilter(kind, year, month)
}

// onScanClick starts a device scan in the background
func (ui *RootUI) onScanClick() {
	if ui.scanning.Load() || ui.running.Load() {
		return
	}
	ui.scanning.Store(true)

	ui.scanBtn.Disable()
	ui.transferBtn.Disable()
	ui.stopBtn.Enable()
	ui.summaryLabel.SetText(ui.localization.GetText(KeyScanning))

	ctx, cancel := context.WithCancel(context.Background())
	ui.mu.Lock()
	ui.cancelRun = cancel
	ui.mu.Unlock()

	filter := ui.currentFilter()

	go func() {
		defer ui.scanning.Store(false)

		result, err := ui.scanner.Scan(ctx, filter)

		fyne.Do(func() {
			ui.scanBtn.Enable()
			ui.stopBtn.Disable()

			if err != nil {
				ui.onScanError(err)
				return
			}

			ui.mu.Lock()
			ui.scanResult = result
			ui.mu.Unlock()

			ui.updateDeviceHeader(result.Device)
			ui.summaryLabel.SetText(fmt.Sprintf("%s: %d (%d %s, %d %s, %.1f MB)",
				ui.localization.GetText(KeyScanComplete),
				result.Summary.Total,
				result.Summary.Photos, ui.localization.GetText(KeyTypePhotos),
				result.Summary.Videos, ui.localization.GetText(KeyTypeVideos),
				float64(result.Summary.TotalBytes)/1024/1024))

			if result.Summary.Total > 0 {
				ui.transferBtn.Enable()
			}
		})
	}()
}

func (ui *RootUI) onScanError(err error) {
	if errors.Is(err, context.Canceled) {
		ui.summaryLabel.SetText(DashPlaceholder)
		return
	}
	msg := scanErrorMessage(ui.localization, err)
	ui.summaryLabel.SetText(msg)
	ui.appendLog(msg)
	dialog.ShowError(fmt.Errorf("%s", msg), ui.window)
}

// scanErrorMessage maps device errors, wrapped or not, to localized text
func scanErrorMessage(loc *Localization, err error) string {
	switch {
	case errors.Is(err, device.ErrNoDevice):
		return loc.GetText(KeyNoDevice)
	case errors.Is(err, device.ErrNotPaired):
		return loc.GetText(KeyNotPaired)
	}
	return err.Error()
}

// updateDeviceHeader renders device name, iOS version, battery and storage
func (ui *RootUI) updateDeviceHeader(info model.DeviceInfo) {
	battery := DashPlaceholder
	if info.BatteryPercent != model.BatteryUnknown {
		battery = fmt.Sprintf("%d%%", info.BatteryPercent)
		if info.BatteryCharging {
			battery += "+"
		}
	}

	ui.deviceLabel.SetText(fmt.Sprintf("%s %s%siOS %s%s%s %s%s%s",
		IconPhone, info.Name,
		MiddleDotSeparator, info.ProductVersion,
		MiddleDotSeparator, IconBattery, battery,
		MiddleDotSeparator, info.ShortUDID()))

	if info.Storage.TotalBytes > 0 {
		ui.storageBar.SetValue(info.Storage.PercentUsed() / 100)
		gb := float64(1024 * 1024 * 1024)
		ui.storageLabel.SetText(fmt.Sprintf("%.1f / %.1f GB",
			float64(info.Storage.UsedBytes())/gb,
			float64(info.Storage.TotalBytes)/gb))
	} else {
		ui.storageBar.SetValue(0)
		ui.storageLabel.SetText(DashPlaceholder)
	}
}

// onTransferClick starts a transfer run with the scanned files
func (ui *RootUI) onTransferClick() {
	ui.mu.Lock()
	result := ui.scanResult
	ui.mu.Unlock()

	if result == nil || len(result.Files) == 0 {
		ui.appendLog(ui.localization.GetText(KeyNothingToDo))
		return
	}

	ui.startTransfer(result.Files)
}

// startTransfer spins up a controller for the given files
func (ui *RootUI) startTransfer(files []model.MediaFile) {
	if ui.running.Load() {
		return
	}
	ui.running.Store(true)

	destDir := ui.destEntry.Text
	if destDir == "" {
		destDir = ui.settings.GetDestinationDirectory()
	}
	ui.settings.SetDestinationDirectory(destDir)

	opts := transfer.Options{
		DestRoot:      destDir,
		Workers:       ui.settings.GetWorkers(),
		Flatten:       ui.settings.GetFlatten(),
		SkipExisting:  true,
		WriteManifest: ui.settings.GetWriteManifest(),
		ConvertHEIC:   ui.settings.GetConvertHEIC(),
		DeleteHEIC:    ui.settings.GetDeleteHEIC(),
		Converter:     ui.converter,
	}
	if ui.historyStore != nil {
		opts.SkipTransferred = ui.settings.GetSkipTransferred()
		opts.Recorder = ui.historyStore
	}

	controller := transfer.New(ui.dialer, opts)
	controller.SetLogCallback(ui.appendLog)
	controller.SetWorkerCallback(ui.onWorkerUpdate)
	controller.SetStatsCallback(ui.onStatsUpdate)

	ctx, cancel := context.WithCancel(context.Background())
	ui.mu.Lock()
	ui.controller = controller
	ui.cancelRun = cancel
	ui.mu.Unlock()

	ui.workerTable.Reset()
	ui.workerTable.Refresh()
	ui.failedList.Reset()
	ui.failedList.Refresh()
	ui.progressBar.SetValue(0)
	ui.scanBtn.Disable()
	ui.transferBtn.Disable()
	ui.retryBtn.Disable()
	ui.pauseBtn.Enable()
	ui.stopBtn.Enable()

	go func() {
		result, err := controller.Run(ctx, files)
		cancel()

		ui.mu.Lock()
		ui.controller = nil
		if result != nil {
			ui.lastFailed = result.Failed
		}
		ui.mu.Unlock()
		ui.running.Store(false)

		fyne.Do(func() { ui.onTransferDone(result, err) })
	}()
}

// onTransferDone updates controls after a run
func (ui *RootUI) onTransferDone(result *transfer.Result, err error) {
	loc := ui.localization

	ui.scanBtn.Enable()
	ui.transferBtn.Enable()
	ui.pauseBtn.Disable()
	ui.pauseBtn.SetText(IconPause + " " + loc.GetText(KeyPause))
	ui.stopBtn.Disable()
	ui.workerTable.Refresh()

	if err != nil && err != context.Canceled {
		log.Printf("transfer finished with error: %v", err)
	}
	if result == nil {
		return
	}

	ui.summaryLabel.SetText(fmt.Sprintf("%s: %d ok, %d skipped, %d failed",
		loc.GetText(KeyTransferComplete), result.Copied, result.Skipped, len(result.Failed)))

	ui.failedList.SetAll(result.Failed)
	ui.failedList.Refresh()

	if len(result.Failed) > 0 {
		ui.retryBtn.Enable()
	}
	if result.ManifestPath != "" {
		ui.appendLog("[manifest] " + result.ManifestPath)
	}
}

// onWorkerUpdate receives per-worker telemetry from worker goroutines
func (ui *RootUI) onWorkerUpdate(ws model.WorkerStatus) {
	ui.workerTable.Update(ws)

	if ws.Status == model.TransferStatusFailed {
		ui.mu.Lock()
		controller := ui.controller
		ui.mu.Unlock()
		if controller != nil {
			ui.failedList.SetAll(controller.FailedFiles())
			fyne.Do(func() { ui.failedList.Refresh() })
		}
	}

	if !ui.shouldUpdateUI() {
		return
	}
	fyne.Do(func() { ui.workerTable.Refresh() })
}

// onStatsUpdate receives aggregate progress from the controller
func (ui *RootUI) onStatsUpdate(stats model.TransferStats) {
	fyne.Do(func() {
		ui.progressBar.SetValue(stats.ProgressPercent() / 100)
		ui.statsLabel.SetText(stats.RateString())
	})
}

// shouldUpdateUI debounces high-frequency telemetry redraws
func (ui *RootUI) shouldUpdateUI() bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()
	if time.Since(ui.lastUIUpdate) < UIUpdateDebounce {
		return false
	}
	ui.lastUIUpdate = time.Now()
	return true
}

// onPauseClick toggles pause and resume
func (ui *RootUI) onPauseClick() {
	ui.mu.Lock()
	controller := ui.controller
	ui.mu.Unlock()
	if controller == nil {
		return
	}

	loc := ui.localization
	if controller.IsPaused() {
		controller.Resume()
		ui.pauseBtn.SetText(IconPause + " " + loc.GetText(KeyPause))
	} else {
		controller.Pause()
		ui.pauseBtn.SetText(IconPause + " " + loc.GetText(KeyResume))
	}
}

// onStopClick stops the active transfer or scan. A transfer lets each
// worker finish its current file first.
func (ui *RootUI) onStopClick() {
	ui.mu.Lock()
	controller := ui.controller
	cancel := ui.cancelRun
	ui.mu.Unlock()

	if controller != nil {
		controller.Stop()
		controller.Resume() // a paused pool must drain to stop
		return
	}
	if cancel != nil {
		cancel()
	}
}

// onRetryFailed requeues failures, either into the live run or as a new one
func (ui *RootUI) onRetryFailed() {
	ui.mu.Lock()
	controller := ui.controller
	failed := ui.lastFailed
	ui.mu.Unlock()

	if controller != nil {
		n := controller.RetryFailed()
		ui.failedList.SetAll(controller.FailedFiles())
		ui.failedList.Refresh()
		ui.appendLog(fmt.Sprintf("[retry] %d files requeued", n))
		return
	}

	if len(failed) == 0 {
		return
	}
	files := make([]model.MediaFile, 0, len(failed))
	for _, f := range failed {
		files = append(files, f.File)
	}
	ui.retryBtn.Disable()
	ui.startTransfer(files)
}

// onWorkersChanged applies the slider to settings and the live pool
func (ui *RootUI) onWorkersChanged(value float64) {
	workers := int(value)
	ui.settings.SetWorkers(workers)
	ui.workersLabel.SetText(fmt.Sprintf("%s: %d", ui.localization.GetText(KeyWorkers), workers))

	ui.mu.Lock()
	controller := ui.controller
	ui.mu.Unlock()
	if controller != nil {
		controller.ScaleWorkers(workers)
	}
}

// onBrowseDestination handles destination directory browsing
func (ui *RootUI) onBrowseDestination() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.destEntry.SetText(uri.Path())
		ui.settings.SetDestinationDirectory(uri.Path())
	}, ui.window)
}

// onOpenDestination reveals the destination folder
func (ui *RootUI) onOpenDestination() {
	dir := ui.destEntry.Text
	if dir == "" {
		return
	}
	platform.CreateDirectoryIfNotExists(dir)
	if err := platform.OpenFileWithDefaultApp(dir); err != nil {
		ui.appendLog(fmt.Sprintf("could not open %s: %v", dir, err))
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window).Show()
}

// appendLog adds a timestamped line to the log panel. Safe to call from
// any goroutine.
func (ui *RootUI) appendLog(msg string) {
	line := time.Now().Format("15:04:05") + "  " + msg

	ui.logMutex.Lock()
	ui.logLines = append(ui.logLines, line)
	if len(ui.logLines) > MaxLogLines {
		ui.logLines = ui.logLines[len(ui.logLines)-MaxLogLines:]
	}
	last := len(ui.logLines) - 1
	ui.logMutex.Unlock()

	fyne.Do(func() {
		ui.logList.Refresh()
		ui.logList.ScrollTo(last)
	})
}

// checkForUpdate pings the release feed once at startup
func (ui *RootUI) checkForUpdate() {
	newer, release, err := update.NewChecker().Check()
	if err != nil || !newer {
		return
	}
	ui.appendLog(fmt.Sprintf("%s: %s (%s)",
		ui.localization.GetText(KeyUpdateAvailable), release.TagName, release.HTMLURL))
}

// yearOptions returns "any" plus a descending year list
func yearOptions(loc *Localization) []string {
	options := []string{loc.GetText(KeyAnyYear)}
	for y := time.Now().Year(); y >= oldestFilterYear; y-- {
		options = append(options, strconv.Itoa(y))
	}
	return options
}

// monthOptions returns "any" plus 01..12
func monthOptions(loc *Localization) []string {
	options := []string{loc.GetText(KeyAnyMonth)}
	for m := 1; m <= 12; m++ {
		options = append(options, fmt.Sprintf("%02d", m))
	}
	return options
}
