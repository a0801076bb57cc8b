package model

import (
	"testing"
)

func TestTransferStatus_IsBusy(t *testing.T) {
	tests := []struct {
		status   TransferStatus
		expected bool
	}{
		{TransferStatusIdle, false},
		{TransferStatusCopying, true},
		{TransferStatusOK, false},
		{TransferStatusFailed, false},
		{TransferStatusSkipped, false},
	}

	for _, test := range tests {
		if got := test.status.IsBusy(); got != test.expected {
			t.Errorf("IsBusy() for %s = %v, expected %v", test.status, got, test.expected)
		}
	}
}

func TestTransferStatus_IsOutcome(t *testing.T) {
	tests := []struct {
		status   TransferStatus
		expected bool
	}{
		{TransferStatusIdle, false},
		{TransferStatusCopying, false},
		{TransferStatusOK, true},
		{TransferStatusFailed, true},
		{TransferStatusSkipped, true},
	}

	for _, test := range tests {
		if got := test.status.IsOutcome(); got != test.expected {
			t.Errorf("IsOutcome() for %s = %v, expected %v", test.status, got, test.expected)
		}
	}
}

func TestStorageInfo(t *testing.T) {
	s := StorageInfo{TotalBytes: 1000, FreeBytes: 250}
	if s.UsedBytes() != 750 {
		t.Errorf("UsedBytes() = %d, expected 750", s.UsedBytes())
	}
	if s.PercentUsed() != 75.0 {
		t.Errorf("PercentUsed() = %.1f, expected 75.0", s.PercentUsed())
	}

	// Free larger than total must not go negative
	s = StorageInfo{TotalBytes: 100, FreeBytes: 200}
	if s.UsedBytes() != 0 {
		t.Errorf("UsedBytes() = %d, expected 0", s.UsedBytes())
	}

	var zero StorageInfo
	if zero.PercentUsed() != 0 {
		t.Errorf("PercentUsed() on zero storage = %.1f, expected 0", zero.PercentUsed())
	}
}

func TestDeviceInfo_ShortUDID(t *testing.T) {
	d := DeviceInfo{UDID: "00008110-000A1D2E3F45801E"}
	if got := d.ShortUDID(); got != "00008110…" {
		t.Errorf("ShortUDID() = %s, expected 00008110…", got)
	}

	d = DeviceInfo{UDID: "short"}
	if got := d.ShortUDID(); got != "short" {
		t.Errorf("ShortUDID() = %s, expected short", got)
	}
}
