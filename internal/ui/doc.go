package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user interactions to the scan and transfer services and renders the
// device header, worker telemetry, progress, and settings. All UI strings are
// localized via Localization.
