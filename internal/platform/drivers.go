package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// Environment overrides for the driver check, used in development and tests
const (
	SimulateAppleEnv   = "IAUTOTRANSFER_SIMULATE_APPLE"
	SimulateNoAppleEnv = "IAUTOTRANSFER_SIMULATE_NO_APPLE"
)

// Known install locations of the Apple Mobile Device Support DLL on Windows
var appleDriverPaths = []string{
	`C:\Program Files\Common Files\Apple\Mobile Device Support\MobileDevice.dll`,
	`C:\Program Files (x86)\Common Files\Apple\Mobile Device Support\MobileDevice.dll`,
}

// HasAppleDrivers reports whether the Apple mobile device drivers look
// installed. On macOS and Linux the usbmuxd transport needs no separate
// driver, so the check always passes there. On Windows the iTunes or
// Apple Devices install is required for the device to enumerate.
func HasAppleDrivers() bool {
	if os.Getenv(SimulateAppleEnv) == "1" {
		return true
	}
	if os.Getenv(SimulateNoAppleEnv) == "1" {
		return false
	}

	if runtime.GOOS != OSWindows {
		return true
	}

	for _, p := range appleDriverPaths {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return true
		}
	}

	// Some installs relocate Common Files; honor an explicit override
	if custom := os.Getenv("IAUTOTRANSFER_MOBILEDEVICE_DLL"); custom != "" {
		if fi, err := os.Stat(filepath.Clean(custom)); err == nil && !fi.IsDir() {
			return true
		}
	}

	return false
}
