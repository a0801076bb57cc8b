package config

import (
	"fyne.io/fyne/v2"

	"github.com/iautotransfer/iautotransfer/internal/platform"
	"github.com/iautotransfer/iautotransfer/internal/transfer"
)

// Settings keys for Fyne preferences
const (
	KeyDestinationDir  = "destination_directory"
	KeyWorkers         = "transfer_workers"
	KeyFlatten         = "flatten_structure"
	KeyConvertHEIC     = "convert_heic"
	KeyDeleteHEIC      = "delete_heic_after_convert"
	KeyWriteManifest   = "write_manifest"
	KeySkipTransferred = "skip_transferred"
	KeyLanguage        = "app_language"
)

// Default values
const (
	DefaultWorkers         = 3
	DefaultFlatten         = true
	DefaultConvertHEIC     = false
	DefaultDeleteHEIC      = false
	DefaultWriteManifest   = true
	DefaultSkipTransferred = false
	DefaultLanguage        = "system"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDestinationDirectory returns the configured destination directory
func (s *Settings) GetDestinationDirectory() string {
	dir := s.app.Preferences().String(KeyDestinationDir)
	if dir == "" {
		defaultDir, err := platform.DefaultDestinationDir()
		if err != nil {
			defaultDir = "/tmp/iAutoTransfer"
		}
		s.SetDestinationDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDestinationDirectory sets the destination directory
func (s *Settings) SetDestinationDirectory(dir string) {
	s.app.Preferences().SetString(KeyDestinationDir, dir)
}

// GetWorkers returns the configured transfer worker count
func (s *Settings) GetWorkers() int {
	value := s.app.Preferences().Int(KeyWorkers)
	if value <= 0 {
		s.SetWorkers(DefaultWorkers)
		return DefaultWorkers
	}
	if value > transfer.MaxWorkers {
		return transfer.MaxWorkers
	}
	return value
}

// SetWorkers sets the transfer worker count
func (s *Settings) SetWorkers(count int) {
	if count < transfer.MinWorkers {
		count = transfer.MinWorkers
	}
	if count > transfer.MaxWorkers {
		count = transfer.MaxWorkers
	}
	s.app.Preferences().SetInt(KeyWorkers, count)
}

// GetFlatten returns whether to drop the device directory structure
func (s *Settings) GetFlatten() bool {
	return s.app.Preferences().BoolWithFallback(KeyFlatten, DefaultFlatten)
}

// SetFlatten sets whether to drop the device directory structure
func (s *Settings) SetFlatten(flatten bool) {
	s.app.Preferences().SetBool(KeyFlatten, flatten)
}

// GetConvertHEIC returns whether to convert HEIC files to JPEG
func (s *Settings) GetConvertHEIC() bool {
	return s.app.Preferences().BoolWithFallback(KeyConvertHEIC, DefaultConvertHEIC)
}

// SetConvertHEIC sets whether to convert HEIC files to JPEG
func (s *Settings) SetConvertHEIC(convert bool) {
	s.app.Preferences().SetBool(KeyConvertHEIC, convert)
}

// GetDeleteHEIC returns whether to remove the HEIC after conversion
func (s *Settings) GetDeleteHEIC() bool {
	return s.app.Preferences().BoolWithFallback(KeyDeleteHEIC, DefaultDeleteHEIC)
}

// SetDeleteHEIC sets whether to remove the HEIC after conversion
func (s *Settings) SetDeleteHEIC(remove bool) {
	s.app.Preferences().SetBool(KeyDeleteHEIC, remove)
}

// GetWriteManifest returns whether to write a CSV manifest per run
func (s *Settings) GetWriteManifest() bool {
	return s.app.Preferences().BoolWithFallback(KeyWriteManifest, DefaultWriteManifest)
}

// SetWriteManifest sets whether to write a CSV manifest per run
func (s *Settings) SetWriteManifest(write bool) {
	s.app.Preferences().SetBool(KeyWriteManifest, write)
}

// GetSkipTransferred returns whether to skip files found in history
func (s *Settings) GetSkipTransferred() bool {
	return s.app.Preferences().BoolWithFallback(KeySkipTransferred, DefaultSkipTransferred)
}

// SetSkipTransferred sets whether to skip files found in history
func (s *Settings) SetSkipTransferred(skip bool) {
	s.app.Preferences().SetBool(KeySkipTransferred, skip)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}
