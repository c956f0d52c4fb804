package config

import (
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"

	"github.com/nduc/bgm-player/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDataDir     = "data_directory"
	KeyVolume      = "volume"
	KeyBufferMs    = "output_buffer_ms"
	KeyPowerSaving = "power_saving"
	KeyLanguage    = "app_language"
)

// Default values
const (
	DefaultVolume      = 0.8
	DefaultBufferMs    = 100
	DefaultPowerSaving = false
	DefaultLanguage    = "system"

	MinBufferMs = 20
	MaxBufferMs = 1000

	// PowerSavingBufferMs is the minimum output buffer when power saving is on
	PowerSavingBufferMs = 500
)

// Settings manages application configuration
type Settings struct {
	app       fyne.App
	overrides Overrides
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// ApplyOverrides makes environment overrides take precedence over preferences
func (s *Settings) ApplyOverrides(o Overrides) {
	s.overrides = o
}

// GetDataDirectory returns the directory holding the slot copies and data.txt
func (s *Settings) GetDataDirectory() string {
	if s.overrides.DataDir != "" {
		return s.overrides.DataDir
	}

	dir := s.app.Preferences().String(KeyDataDir)
	if dir == "" {
		defaultDir, err := platform.GetAppDataDir()
		if err != nil {
			defaultDir = filepath.Join(s.app.Storage().RootURI().Path(), platform.AppDirName)
		}
		s.SetDataDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDataDirectory sets the data directory
func (s *Settings) SetDataDirectory(dir string) {
	s.app.Preferences().SetString(KeyDataDir, dir)
}

// GetVolume returns the output level in the range 0..1
func (s *Settings) GetVolume() float64 {
	return s.app.Preferences().FloatWithFallback(KeyVolume, DefaultVolume)
}

// SetVolume sets the output level
func (s *Settings) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	s.app.Preferences().SetFloat(KeyVolume, level)
}

// GetBufferMs returns the configured output buffer in milliseconds
func (s *Settings) GetBufferMs() int {
	value := s.app.Preferences().Int(KeyBufferMs)
	if value <= 0 {
		s.SetBufferMs(DefaultBufferMs)
		return DefaultBufferMs
	}
	return value
}

// SetBufferMs sets the output buffer in milliseconds
func (s *Settings) SetBufferMs(ms int) {
	if ms < MinBufferMs {
		ms = MinBufferMs
	}
	if ms > MaxBufferMs {
		ms = MaxBufferMs
	}
	s.app.Preferences().SetInt(KeyBufferMs, ms)
}

// GetPowerSaving returns whether the larger power saving buffer is used
func (s *Settings) GetPowerSaving() bool {
	return s.app.Preferences().BoolWithFallback(KeyPowerSaving, DefaultPowerSaving)
}

// SetPowerSaving sets the power saving preference
func (s *Settings) SetPowerSaving(enabled bool) {
	s.app.Preferences().SetBool(KeyPowerSaving, enabled)
}

// OutputBuffer returns the effective output buffer of the playback engine
func (s *Settings) OutputBuffer() time.Duration {
	ms := s.GetBufferMs()
	if s.GetPowerSaving() && ms < PowerSavingBufferMs {
		ms = PowerSavingBufferMs
	}
	return time.Duration(ms) * time.Millisecond
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	if s.overrides.Language != "" {
		return s.overrides.Language
	}

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
		"pt":     "Português",
	}
}
