package model

// BatteryUnknown marks an unavailable battery reading. Not every iOS build
// exposes battery keys over lockdown.
const BatteryUnknown = -1

// StorageInfo describes the data partition of the device
type StorageInfo struct {
	TotalBytes int64
	FreeBytes  int64
}

// UsedBytes returns the used portion of the data partition
func (s StorageInfo) UsedBytes() int64 {
	used := s.TotalBytes - s.FreeBytes
	if used < 0 {
		return 0
	}
	return used
}

// PercentUsed returns storage usage as 0..100, or 0 when capacity is unknown
func (s StorageInfo) PercentUsed() float64 {
	if s.TotalBytes <= 0 {
		return 0
	}
	return float64(s.UsedBytes()) / float64(s.TotalBytes) * 100.0
}

// DeviceInfo holds best-effort lockdown fields for the connected device
type DeviceInfo struct {
	Name            string // DeviceName, e.g. "Anna's iPhone"
	ProductType     string // e.g. "iPhone14,5"
	ProductVersion  string // iOS version, e.g. "17.4.1"
	SerialNumber    string
	UDID            string
	BatteryPercent  int // 0-100, BatteryUnknown when not exposed
	BatteryCharging bool
	Storage         StorageInfo
}

// ShortUDID returns a truncated UDID suitable for the header line
func (d DeviceInfo) ShortUDID() string {
	if len(d.UDID) <= 8 {
		return d.UDID
	}
	return d.UDID[:8] + "…"
}
