package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyIntro            = "intro"
	KeyLoop             = "loop"
	KeySetIntro         = "set_intro"
	KeySetLoop          = "set_loop"
	KeyNoFile           = "no_file"
	KeyPlay             = "play"
	KeyPause            = "pause"
	KeyStop             = "stop"
	KeyClear            = "clear"
	KeyVolume           = "volume"
	KeySettings         = "settings"
	KeyFile             = "file"
	KeyLanguage         = "language"
	KeyDataDirectory    = "data_directory"
	KeyOutputBuffer     = "output_buffer"
	KeyPowerSaving      = "power_saving"
	KeyRestartRequired  = "restart_required"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeyBrowse           = "browse"
	KeySettingsSaved    = "settings_saved"
	KeyNoFileSelected   = "no_file_selected"
	KeySourceUnreadable = "source_unreadable"
	KeyInvalidWav       = "invalid_wav"
	KeyPlaybackFailed   = "playback_failed"
	KeyImported         = "imported"
	KeyImporting        = "importing"
	KeyStateIdle        = "state_idle"
	KeyStateIntroLoop   = "state_intro_loop"
	KeyStateLoopOnly    = "state_loop_only"
	KeyStateStopped     = "state_stopped"
	KeyStatePaused      = "state_paused"
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
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "BGM Player",
		KeyIntro:            "Intro",
		KeyLoop:             "Loop",
		KeySetIntro:         "Set intro file",
		KeySetLoop:          "Set loop file",
		KeyNoFile:           "No file",
		KeyPlay:             "Play",
		KeyPause:            "Pause",
		KeyStop:             "Stop",
		KeyClear:            "Clear playlist",
		KeyVolume:           "Volume",
		KeySettings:         "Settings",
		KeyFile:             "File",
		KeyLanguage:         "Language",
		KeyDataDirectory:    "Data Directory",
		KeyOutputBuffer:     "Output Buffer (ms)",
		KeyPowerSaving:      "Power saving playback",
		KeyRestartRequired:  "Data directory and audio output changes apply after restart",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeyBrowse:           "Browse",
		KeySettingsSaved:    "Settings saved successfully!",
		KeyNoFileSelected:   "No intro or loop file selected",
		KeySourceUnreadable: "Cannot read the selected file",
		KeyInvalidWav:       "Not a valid WAV file",
		KeyPlaybackFailed:   "Playback failed",
		KeyImported:         "File set",
		KeyImporting:        "Copying file...",
		KeyStateIdle:        "Ready",
		KeyStateIntroLoop:   "Playing intro, then loop",
		KeyStateLoopOnly:    "Looping",
		KeyStateStopped:     "Stopped",
		KeyStatePaused:      "Paused",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "BGM Плеер",
		KeyIntro:            "Вступление",
		KeyLoop:             "Петля",
		KeySetIntro:         "Выбрать вступление",
		KeySetLoop:          "Выбрать петлю",
		KeyNoFile:           "Нет файла",
		KeyPlay:             "Играть",
		KeyPause:            "Пауза",
		KeyStop:             "Стоп",
		KeyClear:            "Очистить плейлист",
		KeyVolume:           "Громкость",
		KeySettings:         "Настройки",
		KeyFile:             "Файл",
		KeyLanguage:         "Язык",
		KeyDataDirectory:    "Папка данных",
		KeyOutputBuffer:     "Буфер вывода (мс)",
		KeyPowerSaving:      "Энергосберегающее воспроизведение",
		KeyRestartRequired:  "Изменения папки данных и аудиовывода вступят в силу после перезапуска",
		KeySave:             "Сохранить",
		KeyCancel:           "Отмена",
		KeyBrowse:           "Обзор",
		KeySettingsSaved:    "Настройки успешно сохранены!",
		KeyNoFileSelected:   "Не выбран файл вступления или петли",
		KeySourceUnreadable: "Не удалось прочитать выбранный файл",
		KeyInvalidWav:       "Файл не является WAV",
		KeyPlaybackFailed:   "Ошибка воспроизведения",
		KeyImported:         "Файл выбран",
		KeyImporting:        "Копирование файла...",
		KeyStateIdle:        "Готово",
		KeyStateIntroLoop:   "Вступление, затем петля",
		KeyStateLoopOnly:    "Повтор",
		KeyStateStopped:     "Остановлено",
		KeyStatePaused:      "Пауза",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:         "BGM Player",
		KeyIntro:            "Introdução",
		KeyLoop:             "Loop",
		KeySetIntro:         "Definir introdução",
		KeySetLoop:          "Definir loop",
		KeyNoFile:           "Nenhum arquivo",
		KeyPlay:             "Tocar",
		KeyPause:            "Pausar",
		KeyStop:             "Parar",
		KeyClear:            "Limpar playlist",
		KeyVolume:           "Volume",
		KeySettings:         "Configurações",
		KeyFile:             "Arquivo",
		KeyLanguage:         "Idioma",
		KeyDataDirectory:    "Diretório de Dados",
		KeyOutputBuffer:     "Buffer de Saída (ms)",
		KeyPowerSaving:      "Reprodução com economia de energia",
		KeyRestartRequired:  "Mudanças de diretório de dados e saída de áudio valem após reiniciar",
		KeySave:             "Salvar",
		KeyCancel:           "Cancelar",
		KeyBrowse:           "Navegar",
		KeySettingsSaved:    "Configurações salvas com sucesso!",
		KeyNoFileSelected:   "Nenhum arquivo de introdução ou loop selecionado",
		KeySourceUnreadable: "Não foi possível ler o arquivo selecionado",
		KeyInvalidWav:       "Não é um arquivo WAV válido",
		KeyPlaybackFailed:   "Falha na reprodução",
		KeyImported:         "Arquivo definido",
		KeyImporting:        "Copiando arquivo...",
		KeyStateIdle:        "Pronto",
		KeyStateIntroLoop:   "Tocando introdução, depois loop",
		KeyStateLoopOnly:    "Repetindo",
		KeyStateStopped:     "Parado",
		KeyStatePaused:      "Pausado",
	}
}
