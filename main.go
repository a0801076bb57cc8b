package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/iautotransfer/iautotransfer/internal/config"
	"github.com/iautotransfer/iautotransfer/internal/convert"
	"github.com/iautotransfer/iautotransfer/internal/device"
	"github.com/iautotransfer/iautotransfer/internal/history"
	"github.com/iautotransfer/iautotransfer/internal/platform"
	"github.com/iautotransfer/iautotransfer/internal/scan"
	"github.com/iautotransfer/iautotransfer/internal/ui"
	"github.com/iautotransfer/iautotransfer/internal/update"
)

const (
	AppID   = "com.iautotransfer.iautotransfer"
	AppName = "iAutoTransfer"

	WindowWidth  = 1180
	WindowHeight = 840
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, update.Version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, update.Version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services
	settings := config.NewSettings(myApp)
	destDir := settings.GetDestinationDirectory()
	if err := platform.CreateDirectoryIfNotExists(destDir); err != nil {
		fmt.Printf("failed to ensure destination dir: %v\n", err)
	}

	dialer := device.NewMuxDialer("")
	scanner := scan.NewScanner(dialer)
	converter := convert.NewService()

	// Same database the CLI uses, so either frontend skips what the
	// other already transferred
	historyStore, err := history.Open(history.DefaultPath())
	if err != nil {
		fmt.Printf("failed to open transfer history: %v\n", err)
	}
	if historyStore != nil {
		defer historyStore.Close()
	}

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, dialer, scanner, converter, historyStore)

	// Show and run
	myWindow.ShowAndRun()
}
