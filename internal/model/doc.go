package model

// Package model defines domain data structures used across the app: media
// files discovered on the device, device and storage info, worker telemetry,
// and transfer status enums. Structures are designed for direct binding in
// the UI and explicit state transitions.
