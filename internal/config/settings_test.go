package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/iautotransfer/iautotransfer/internal/transfer"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestDestinationDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetDestinationDirectory()
	if dir == "" {
		t.Error("Destination directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/photos"
	settings.SetDestinationDirectory(customDir)

	retrievedDir := settings.GetDestinationDirectory()
	if retrievedDir != customDir {
		t.Errorf("Expected destination directory %s, got %s", customDir, retrievedDir)
	}
}

func TestWorkers(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	workers := settings.GetWorkers()
	if workers != DefaultWorkers {
		t.Errorf("Expected default workers %d, got %d", DefaultWorkers, workers)
	}

	// Test setting custom value
	settings.SetWorkers(5)

	retrieved := settings.GetWorkers()
	if retrieved != 5 {
		t.Errorf("Expected workers 5, got %d", retrieved)
	}

	// Test boundary values
	settings.SetWorkers(0) // Should be clamped to minimum
	if settings.GetWorkers() != transfer.MinWorkers {
		t.Errorf("Workers should be clamped to minimum %d", transfer.MinWorkers)
	}

	settings.SetWorkers(15) // Should be clamped to maximum
	if settings.GetWorkers() != transfer.MaxWorkers {
		t.Errorf("Workers should be clamped to maximum %d", transfer.MaxWorkers)
	}
}

func TestBooleanSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetFlatten() != DefaultFlatten {
		t.Errorf("Expected default flatten %v", DefaultFlatten)
	}
	settings.SetFlatten(false)
	if settings.GetFlatten() {
		t.Error("Expected flatten false after set")
	}

	if settings.GetConvertHEIC() != DefaultConvertHEIC {
		t.Errorf("Expected default convert HEIC %v", DefaultConvertHEIC)
	}
	settings.SetConvertHEIC(true)
	if !settings.GetConvertHEIC() {
		t.Error("Expected convert HEIC true after set")
	}

	if settings.GetDeleteHEIC() != DefaultDeleteHEIC {
		t.Errorf("Expected default delete HEIC %v", DefaultDeleteHEIC)
	}

	if settings.GetWriteManifest() != DefaultWriteManifest {
		t.Errorf("Expected default write manifest %v", DefaultWriteManifest)
	}
	settings.SetWriteManifest(false)
	if settings.GetWriteManifest() {
		t.Error("Expected write manifest false after set")
	}

	if settings.GetSkipTransferred() != DefaultSkipTransferred {
		t.Errorf("Expected default skip transferred %v", DefaultSkipTransferred)
	}
	settings.SetSkipTransferred(true)
	if !settings.GetSkipTransferred() {
		t.Error("Expected skip transferred true after set")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	// Test setting custom value
	settings.SetLanguage("en")

	retrievedLang := settings.GetLanguage()
	if retrievedLang != "en" {
		t.Errorf("Expected language 'en', got %s", retrievedLang)
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}
