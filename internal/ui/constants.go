package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPause    = "⏸"
	IconStop     = "⏹"
	IconFolder   = "📁"
	IconRefresh  = "🔄"
	IconPhone    = "📱"
	IconBattery  = "🔋"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing
const (
	WorkerColIDWidth     float32 = 44
	WorkerColStatusWidth float32 = 90
	WorkerColFilesWidth  float32 = 60
	WorkerColSpeedWidth  float32 = 90
	WorkerColFileWidth   float32 = 260

	LogListMinHeight   float32 = 140
	WorkerTableRowH    float32 = 28
	StorageBarMinWidth float32 = 180
)

// Debounce durations
const (
	UIUpdateDebounce = 100 * time.Millisecond
)

// Log retention
const (
	MaxLogLines = 500
)
