package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/iautotransfer/iautotransfer/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	dialog       *dialog.ConfirmDialog

	// UI components
	destDirEntry         *widget.Entry
	workersEntry         *widget.Entry
	flattenCheck         *widget.Check
	convertHEICCheck     *widget.Check
	deleteHEICCheck      *widget.Check
	writeManifestCheck   *widget.Check
	skipTransferredCheck *widget.Check
	languageSelect       *widget.Select
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: localization,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	loc := sd.localization

	// Destination directory selection
	sd.destDirEntry = widget.NewEntry()
	sd.destDirEntry.SetPlaceHolder("Destination directory path")

	browseDirBtn := widget.NewButton(loc.GetText(KeyBrowse), sd.onBrowseDirectory)
	destDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.destDirEntry)

	// Worker count
	sd.workersEntry = widget.NewEntry()
	sd.workersEntry.SetPlaceHolder("1-8")

	// Behavior toggles
	sd.flattenCheck = widget.NewCheck(loc.GetText(KeyFlatten), nil)
	sd.convertHEICCheck = widget.NewCheck(loc.GetText(KeyConvertHEIC), nil)
	sd.deleteHEICCheck = widget.NewCheck(loc.GetText(KeyDeleteHEIC), nil)
	sd.writeManifestCheck = widget.NewCheck(loc.GetText(KeyWriteManifest), nil)
	sd.skipTransferredCheck = widget.NewCheck(loc.GetText(KeySkipTransferred), nil)

	// Deleting originals without converting makes no sense
	sd.convertHEICCheck.OnChanged = func(on bool) {
		if on {
			sd.deleteHEICCheck.Enable()
		} else {
			sd.deleteHEICCheck.SetChecked(false)
			sd.deleteHEICCheck.Disable()
		}
	}

	// Language selection
	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = "Select language"

	// Create form
	form := container.NewVBox(
		widget.NewLabel(loc.GetText(KeyTransfer)),
		widget.NewSeparator(),

		widget.NewLabel(loc.GetText(KeyDestinationDir)+":"),
		destDirRow,

		widget.NewLabel(loc.GetText(KeyWorkers)+":"),
		sd.workersEntry,

		sd.flattenCheck,
		sd.convertHEICCheck,
		sd.deleteHEICCheck,
		sd.writeManifestCheck,
		sd.skipTransferredCheck,

		widget.NewSeparator(),

		widget.NewLabel(loc.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeySettings),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(520, 480))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.destDirEntry.SetText(sd.settings.GetDestinationDirectory())
	sd.workersEntry.SetText(strconv.Itoa(sd.settings.GetWorkers()))
	sd.flattenCheck.SetChecked(sd.settings.GetFlatten())
	sd.convertHEICCheck.SetChecked(sd.settings.GetConvertHEIC())
	sd.deleteHEICCheck.SetChecked(sd.settings.GetDeleteHEIC())
	sd.writeManifestCheck.SetChecked(sd.settings.GetWriteManifest())
	sd.skipTransferredCheck.SetChecked(sd.settings.GetSkipTransferred())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.destDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.destDirEntry.Text; dir != "" {
		sd.settings.SetDestinationDirectory(dir)
	}

	if workersStr := sd.workersEntry.Text; workersStr != "" {
		if workers, err := strconv.Atoi(workersStr); err == nil {
			sd.settings.SetWorkers(workers)
		}
	}

	sd.settings.SetFlatten(sd.flattenCheck.Checked)
	sd.settings.SetConvertHEIC(sd.convertHEICCheck.Checked)
	sd.settings.SetDeleteHEIC(sd.deleteHEICCheck.Checked)
	sd.settings.SetWriteManifest(sd.writeManifestCheck.Checked)
	sd.settings.SetSkipTransferred(sd.skipTransferredCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	dialog.ShowInformation(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySettingsSaved),
		sd.window,
	)
}
