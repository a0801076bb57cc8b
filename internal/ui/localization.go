package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyScan             = "scan"
	KeyTransfer         = "transfer"
	KeyPause            = "pause"
	KeyResume           = "resume"
	KeyStop             = "stop"
	KeyRetryFailed      = "retry_failed"
	KeyFailedFiles      = "failed_files"
	KeySettings         = "settings"
	KeyFile             = "file"
	KeyLanguage         = "language"
	KeyDestinationDir   = "destination_directory"
	KeyWorkers          = "workers"
	KeyFlatten          = "flatten_structure"
	KeyConvertHEIC      = "convert_heic"
	KeyDeleteHEIC       = "delete_heic"
	KeyWriteManifest    = "write_manifest"
	KeySkipTransferred  = "skip_transferred"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeyBrowse           = "browse"
	KeyNoDevice         = "no_device"
	KeyNoDriver         = "no_driver"
	KeyNotPaired        = "not_paired"
	KeyScanning         = "scanning"
	KeyScanComplete     = "scan_complete"
	KeyTransferComplete = "transfer_complete"
	KeyNothingToDo      = "nothing_to_do"
	KeySettingsSaved    = "settings_saved"
	KeyOpenDestination  = "open_destination"
	KeyTypeAll          = "type_all"
	KeyTypePhotos       = "type_photos"
	KeyTypeVideos       = "type_videos"
	KeyAnyYear          = "any_year"
	KeyAnyMonth         = "any_month"
	KeyUpdateAvailable  = "update_available"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "iAutoTransfer",
		KeyScan:             "Scan",
		KeyTransfer:         "Transfer",
		KeyPause:            "Pause",
		KeyResume:           "Resume",
		KeyStop:             "Stop",
		KeyRetryFailed:      "Retry failed",
		KeyFailedFiles:      "Failed files",
		KeySettings:         "Settings",
		KeyFile:             "File",
		KeyLanguage:         "Language",
		KeyDestinationDir:   "Destination folder",
		KeyWorkers:          "Workers",
		KeyFlatten:          "Flatten folder structure",
		KeyConvertHEIC:      "Convert HEIC to JPEG",
		KeyDeleteHEIC:       "Delete HEIC after conversion",
		KeyWriteManifest:    "Write CSV manifest",
		KeySkipTransferred:  "Skip previously transferred",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeyBrowse:           "Browse",
		KeyNoDevice:         "No iPhone detected. Unlock the device and tap Trust.",
		KeyNoDriver:         "Apple mobile device drivers not found. Install iTunes or Apple Devices.",
		KeyNotPaired:        "Device is not paired. Unlock it and tap Trust on the screen.",
		KeyScanning:         "Scanning device...",
		KeyScanComplete:     "Scan complete",
		KeyTransferComplete: "Transfer complete",
		KeyNothingToDo:      "Nothing to transfer. Run a scan first.",
		KeySettingsSaved:    "Settings saved successfully!",
		KeyOpenDestination:  "Open destination",
		KeyTypeAll:          "All",
		KeyTypePhotos:       "Photos",
		KeyTypeVideos:       "Videos",
		KeyAnyYear:          "Any year",
		KeyAnyMonth:         "Any month",
		KeyUpdateAvailable:  "Update available",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "iAutoTransfer",
		KeyScan:             "Сканировать",
		KeyTransfer:         "Перенести",
		KeyPause:            "Пауза",
		KeyResume:           "Продолжить",
		KeyStop:             "Стоп",
		KeyRetryFailed:      "Повторить ошибки",
		KeyFailedFiles:      "Файлы с ошибками",
		KeySettings:         "Настройки",
		KeyFile:             "Файл",
		KeyLanguage:         "Язык",
		KeyDestinationDir:   "Папка назначения",
		KeyWorkers:          "Потоки",
		KeyFlatten:          "Без структуры папок",
		KeyConvertHEIC:      "Конвертировать HEIC в JPEG",
		KeyDeleteHEIC:       "Удалять HEIC после конвертации",
		KeyWriteManifest:    "Писать CSV-манифест",
		KeySkipTransferred:  "Пропускать уже перенесённые",
		KeySave:             "Сохранить",
		KeyCancel:           "Отмена",
		KeyBrowse:           "Обзор",
		KeyNoDevice:         "iPhone не найден. Разблокируйте устройство и нажмите «Доверять».",
		KeyNoDriver:         "Драйверы Apple не найдены. Установите iTunes или Apple Devices.",
		KeyNotPaired:        "Устройство не сопряжено. Разблокируйте его и нажмите «Доверять».",
		KeyScanning:         "Сканирование устройства...",
		KeyScanComplete:     "Сканирование завершено",
		KeyTransferComplete: "Перенос завершён",
		KeyNothingToDo:      "Нечего переносить. Сначала выполните сканирование.",
		KeySettingsSaved:    "Настройки успешно сохранены!",
		KeyOpenDestination:  "Открыть папку",
		KeyTypeAll:          "Все",
		KeyTypePhotos:       "Фото",
		KeyTypeVideos:       "Видео",
		KeyAnyYear:          "Любой год",
		KeyAnyMonth:         "Любой месяц",
		KeyUpdateAvailable:  "Доступно обновление",
	}
}
