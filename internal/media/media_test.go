package media

import (
	"testing"

	"github.com/iautotransfer/iautotransfer/internal/model"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name     string
		expected model.MediaKind
		ok       bool
	}{
		{"IMG_0001.JPG", model.MediaKindPhoto, true},
		{"IMG_0002.heic", model.MediaKindPhoto, true},
		{"IMG_0003.DNG", model.MediaKindPhoto, true},
		{"IMG_0004.MOV", model.MediaKindVideo, true},
		{"clip.mp4", model.MediaKindVideo, true},
		{"notes.txt", "", false},
		{"IMG_0005.AAE", "", false}, // Apple edit sidecar, not media
		{"noextension", "", false},
	}

	for _, test := range tests {
		kind, ok := Kind(test.name)
		if ok != test.ok || kind != test.expected {
			t.Errorf("Kind(%q) = (%s, %v), expected (%s, %v)",
				test.name, kind, ok, test.expected, test.ok)
		}
	}
}

func TestGuessYearMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
	}{
		{"IMG_20250118_103000.jpg", 2025, 1},
		{"VID_20241005.mov", 2024, 10},
		{"PXL_20240908_120000.jpg", 2024, 9},
		{"DSC-20231201.jpg", 2023, 12},
		{"IMG_2025.jpg", 2025, 0},
		{"IMG_20251301.jpg", 2025, 0}, // month 13 out of range
		{"IMG_0001.jpg", 0, 0},
		{"random.jpg", 0, 0},
	}

	for _, test := range tests {
		year, month := GuessYearMonth(test.name)
		if year != test.year || month != test.month {
			t.Errorf("GuessYearMonth(%q) = (%d, %d), expected (%d, %d)",
				test.name, year, month, test.year, test.month)
		}
	}
}

func TestFilter_Match(t *testing.T) {
	tests := []struct {
		filter   Filter
		path     string
		expected bool
	}{
		{NewFilter("all", 0, 0), "/DCIM/100APPLE/IMG_0001.JPG", true},
		{NewFilter("all", 0, 0), "/DCIM/100APPLE/notes.txt", false},
		{NewFilter("photos", 0, 0), "/DCIM/100APPLE/IMG_0001.HEIC", true},
		{NewFilter("photos", 0, 0), "/DCIM/100APPLE/IMG_0002.MOV", false},
		{NewFilter("videos", 0, 0), "/DCIM/100APPLE/IMG_0002.MOV", true},
		{NewFilter("videos", 0, 0), "/DCIM/100APPLE/IMG_0001.JPG", false},
		{NewFilter("all", 2025, 0), "/DCIM/100APPLE/IMG_20250118.JPG", true},
		{NewFilter("all", 2024, 0), "/DCIM/100APPLE/IMG_20250118.JPG", false},
		{NewFilter("all", 2025, 1), "/DCIM/100APPLE/IMG_20250118.JPG", true},
		{NewFilter("all", 2025, 2), "/DCIM/100APPLE/IMG_20250118.JPG", false},
		// Date filter rejects undated names
		{NewFilter("all", 2025, 0), "/DCIM/100APPLE/IMG_0001.JPG", false},
		// Unknown kind falls back to all
		{NewFilter("bogus", 0, 0), "/DCIM/100APPLE/IMG_0002.MOV", true},
	}

	for _, test := range tests {
		if got := test.filter.Match(test.path); got != test.expected {
			t.Errorf("Filter%+v.Match(%q) = %v, expected %v",
				test.filter, test.path, got, test.expected)
		}
	}
}

func TestClassify(t *testing.T) {
	f, ok := Classify("/DCIM/101APPLE/IMG_20240915_081500.HEIC", 2048)
	if !ok {
		t.Fatal("Classify() should accept a HEIC file")
	}
	if f.Kind != model.MediaKindPhoto || f.Year != 2024 || f.Month != 9 || f.Size != 2048 {
		t.Errorf("Classify() = %+v, unexpected fields", f)
	}
	if f.Name() != "IMG_20240915_081500.HEIC" {
		t.Errorf("Name() = %s, expected base name", f.Name())
	}

	if _, ok := Classify("/DCIM/101APPLE/.thumbs.db", 10); ok {
		t.Error("Classify() should reject non-media files")
	}
}

func TestSummarize(t *testing.T) {
	files := []model.MediaFile{
		{Kind: model.MediaKindPhoto, Size: 100},
		{Kind: model.MediaKindPhoto, Size: 200},
		{Kind: model.MediaKindVideo, Size: 1000},
	}

	s := Summarize(files)
	if s.Total != 3 || s.Photos != 2 || s.Videos != 1 || s.TotalBytes != 1300 {
		t.Errorf("Summarize() = %+v, expected totals 3/2/1 and 1300 bytes", s)
	}
}
