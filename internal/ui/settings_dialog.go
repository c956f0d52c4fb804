package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/nduc/bgm-player/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog

	// UI components
	dataDirEntry     *widget.Entry
	bufferEntry      *widget.Entry
	powerSavingCheck *widget.Check
	languageSelect   *widget.Select

	onSaved func()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// SetOnSaved sets the callback run after settings were saved
func (sd *SettingsDialog) SetOnSaved(onSaved func()) {
	sd.onSaved = onSaved
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.dataDirEntry = widget.NewEntry()
	sd.dataDirEntry.SetPlaceHolder(text(KeyDataDirectory))

	browseDirBtn := widget.NewButton(text(KeyBrowse), sd.onBrowseDirectory)
	dataDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.dataDirEntry)

	sd.bufferEntry = widget.NewEntry()
	sd.bufferEntry.SetPlaceHolder(strconv.Itoa(config.MinBufferMs) + "-" + strconv.Itoa(config.MaxBufferMs))

	sd.powerSavingCheck = widget.NewCheck(text(KeyPowerSaving), nil)

	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	restartLabel := widget.NewLabel(text(KeyRestartRequired))
	restartLabel.TextStyle = fyne.TextStyle{Italic: true}
	restartLabel.Wrapping = fyne.TextWrapWord

	form := container.NewVBox(
		widget.NewLabel(text(KeyDataDirectory)+":"),
		dataDirRow,

		widget.NewLabel(text(KeyOutputBuffer)+":"),
		sd.bufferEntry,
		sd.powerSavingCheck,
		restartLabel,

		widget.NewSeparator(),

		widget.NewLabel(text(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.dataDirEntry.SetText(sd.settings.GetDataDirectory())
	sd.bufferEntry.SetText(strconv.Itoa(sd.settings.GetBufferMs()))
	sd.powerSavingCheck.SetChecked(sd.settings.GetPowerSaving())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.dataDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.dataDirEntry.Text; dir != "" {
		sd.settings.SetDataDirectory(dir)
	}

	if ms, err := strconv.Atoi(sd.bufferEntry.Text); err == nil {
		sd.settings.SetBufferMs(ms)
	}

	sd.settings.SetPowerSaving(sd.powerSavingCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
