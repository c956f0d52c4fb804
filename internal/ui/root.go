package ui

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/nduc/bgm-player/internal/config"
	"github.com/nduc/bgm-player/internal/engine"
	"github.com/nduc/bgm-player/internal/library"
	"github.com/nduc/bgm-player/internal/model"
	"github.com/nduc/bgm-player/internal/sequencer"
)

// Volume slider range
const (
	VolumeSliderMax  = 100
	VolumeSliderStep = 1
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI

	library   library.Resolver
	engine    engine.Engine
	sequencer *sequencer.Sequencer

	introRow *SlotRow
	loopRow  *SlotRow

	playBtn  *widget.Button
	pauseBtn *widget.Button
	stopBtn  *widget.Button
	clearBtn *widget.Button

	volumeLabel  *widget.Label
	volumeSlider *widget.Slider
	statusLabel  *widget.Label
	titleLabel   *widget.Label

	engineStatus model.EngineStatus
	importing    int

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
	notificationSeq       int
}

// NewRootUI creates and initializes the main UI. Every method runs on the
// Fyne main thread; background work reports back through fyne.Do.
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, lib library.Resolver, eng engine.Engine, seq *sequencer.Sequencer) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		mobile:       NewMobileUI(app),
		library:      lib,
		engine:       eng,
		sequencer:    seq,
		engineStatus: model.EngineStatus{Index: -1},
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	// Imports finish on worker goroutines
	ui.library.SetUpdateCallback(func(slot model.TrackSlot) {
		fyne.Do(func() { ui.refreshSlot(slot.Slot) })
	})
	ui.engine.SetUpdateCallback(ui.onEngineUpdate)
	ui.sequencer.SetUpdateCallback(ui.onSequencerUpdate)

	ui.setupUI()
	ui.refreshSlots()
	ui.refreshStatus()

	window.SetOnDropped(ui.onDropped)
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	text := ui.localization.GetText

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.titleLabel = widget.NewLabel(text(KeyAppTitle))
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	header := container.NewBorder(nil, nil, nil, settingsBtn, ui.titleLabel)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		header = container.NewBorder(nil, nil, logoImage, settingsBtn, ui.titleLabel)
	}

	// Notification panel under the header (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	rowHeight := ui.mobile.SlotRowHeight()
	ui.introRow = NewSlotRow(model.SlotIntro, ui.localization, rowHeight)
	ui.introRow.SetOnPick(ui.onPickSlot)
	ui.loopRow = NewSlotRow(model.SlotLoop, ui.localization, rowHeight)
	ui.loopRow.SetOnPick(ui.onPickSlot)

	ui.playBtn = ui.mobile.CreateMobileButton(IconPlay+" "+text(KeyPlay), ui.onPlay)
	ui.playBtn.Importance = widget.HighImportance
	ui.pauseBtn = ui.mobile.CreateMobileButton(IconPause+" "+text(KeyPause), ui.onPause)
	ui.stopBtn = ui.mobile.CreateMobileButton(IconStop+" "+text(KeyStop), ui.onStop)
	ui.clearBtn = ui.mobile.CreateMobileButton(IconClear+" "+text(KeyClear), ui.onClear)
	ui.clearBtn.Importance = widget.DangerImportance

	controls := ui.mobile.CreateControlsContainer(ui.playBtn, ui.pauseBtn, ui.stopBtn, ui.clearBtn)

	ui.volumeLabel = widget.NewLabel("")
	ui.volumeSlider = widget.NewSlider(0, VolumeSliderMax)
	ui.volumeSlider.Step = VolumeSliderStep
	ui.volumeSlider.SetValue(ui.settings.GetVolume() * VolumeSliderMax)
	ui.volumeSlider.OnChanged = func(value float64) {
		ui.engine.SetVolume(value / VolumeSliderMax)
		ui.updateVolumeLabel(value)
	}
	ui.volumeSlider.OnChangeEnded = func(value float64) {
		ui.settings.SetVolume(value / VolumeSliderMax)
	}
	ui.updateVolumeLabel(ui.volumeSlider.Value)
	volumeRow := container.NewBorder(nil, nil, ui.volumeLabel, nil, ui.volumeSlider)

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Alignment = fyne.TextAlignCenter

	content := container.NewVBox(
		header,
		ui.notificationContainer,
		widget.NewSeparator(),
		ui.introRow,
		ui.loopRow,
		controls,
		volumeRow,
		ui.statusLabel,
	)

	ui.window.SetContent(container.NewPadded(content))
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	text := ui.localization.GetText

	ui.window.SetTitle(text(KeyAppTitle))
	ui.titleLabel.SetText(text(KeyAppTitle))

	ui.playBtn.SetText(IconPlay + " " + text(KeyPlay))
	ui.pauseBtn.SetText(IconPause + " " + text(KeyPause))
	ui.stopBtn.SetText(IconStop + " " + text(KeyStop))
	ui.clearBtn.SetText(IconClear + " " + text(KeyClear))

	ui.introRow.RefreshTexts()
	ui.loopRow.RefreshTexts()
	ui.updateVolumeLabel(ui.volumeSlider.Value)
	ui.refreshStatus()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

func (ui *RootUI) onShowSettings() {
	sd := NewSettingsDialog(ui.settings, ui.localization, ui.window)
	sd.SetOnSaved(func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
	})
	sd.Show()
}

// onPickSlot opens a WAV picker for slot
func (ui *RootUI) onPickSlot(slot model.Slot) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			ui.showNotification(ui.localization.GetText(KeySourceUnreadable)+": "+err.Error(), false)
			return
		}
		if reader == nil {
			// Picker cancelled
			return
		}

		name, ok := ui.library.ResolveDisplayName(reader.URI())
		if !ok {
			log.Printf("Could not resolve display name for %s", reader.URI())
		}

		ui.runImport(slot, func() error {
			defer reader.Close()
			return ui.library.Import(slot, reader, name)
		})
	}, ui.window)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{WavExtension}))
	fd.Show()
}

// onDropped imports dropped files: one file goes to the row it was dropped
// on (loop elsewhere), two files become intro and loop
func (ui *RootUI) onDropped(pos fyne.Position, uris []fyne.URI) {
	switch len(uris) {
	case 0:
		return
	case 1:
		slot, ok := ui.slotAt(pos)
		if !ok {
			slot = model.SlotLoop
		}
		uri := uris[0]
		ui.runImport(slot, func() error { return ui.library.ImportURI(slot, uri) })
	default:
		intro, loop := uris[0], uris[1]
		ui.runImport(model.SlotIntro, func() error { return ui.library.ImportURI(model.SlotIntro, intro) })
		ui.runImport(model.SlotLoop, func() error { return ui.library.ImportURI(model.SlotLoop, loop) })
	}
}

// slotAt returns the slot whose row contains the absolute position pos
func (ui *RootUI) slotAt(pos fyne.Position) (model.Slot, bool) {
	driver := fyne.CurrentApp().Driver()
	for _, row := range []*SlotRow{ui.introRow, ui.loopRow} {
		origin := driver.AbsolutePositionForObject(row)
		size := row.Size()
		if pos.X >= origin.X && pos.X <= origin.X+size.Width &&
			pos.Y >= origin.Y && pos.Y <= origin.Y+size.Height {
			return row.slot.Slot, true
		}
	}
	return model.SlotIntro, false
}

// runImport copies a source off the main thread and reports the outcome
func (ui *RootUI) runImport(slot model.Slot, importFn func() error) {
	// The replaced file must not be held open by a decoder
	if ui.sequencer.StopUsing(slot) {
		log.Printf("Stopped playback to replace the %s source", slot)
	}

	ui.importing++
	ui.setPickEnabled(false)
	ui.showNotification(ui.localization.GetText(KeyImporting), true)

	go func() {
		err := importFn()
		fyne.Do(func() {
			ui.importing--
			if ui.importing == 0 {
				ui.setPickEnabled(true)
			}
			ui.onImportDone(slot, err)
		})
	}()
}

func (ui *RootUI) onImportDone(slot model.Slot, err error) {
	ui.refreshSlot(slot)

	switch {
	case err == nil:
		ui.showNotification(fmt.Sprintf("%s: %s", ui.localization.GetText(KeyImported), ui.library.TrackSlot(slot).DisplayName), false)
	case errors.Is(err, library.ErrInvalidWavHeader):
		log.Printf("Imported %s source is not a WAV file: %v", slot, err)
		ui.showNotification(ui.localization.GetText(KeyInvalidWav), false)
	default:
		log.Printf("Failed to import %s source: %v", slot, err)
		ui.showNotification(ui.localization.GetText(KeySourceUnreadable), false)
	}
}

func (ui *RootUI) setPickEnabled(enabled bool) {
	ui.introRow.SetPickEnabled(enabled)
	ui.loopRow.SetPickEnabled(enabled)
}

func (ui *RootUI) onPlay() {
	err := ui.sequencer.Play()
	switch {
	case err == nil:
		ui.hideNotification()
	case errors.Is(err, sequencer.ErrNoSourceSelected):
		ui.showNotification(ui.localization.GetText(KeyNoFileSelected), false)
	default:
		log.Printf("Play failed: %v", err)
		ui.showNotification(ui.localization.GetText(KeyPlaybackFailed)+": "+err.Error(), false)
	}
}

func (ui *RootUI) onPause() {
	ui.sequencer.Pause()
}

func (ui *RootUI) onStop() {
	ui.sequencer.Stop()
}

func (ui *RootUI) onClear() {
	ui.sequencer.Clear()
}

func (ui *RootUI) onSequencerUpdate(model.SequencerState) {
	ui.refreshStatus()
}

func (ui *RootUI) onEngineUpdate(status model.EngineStatus) {
	ui.engineStatus = status
	if status.Ended && ui.sequencer.State().IsActive() {
		ui.sequencer.OnPlaybackEnded()
	}
	ui.refreshStatus()
}

// refreshSlots reloads both slot rows from the library
func (ui *RootUI) refreshSlots() {
	for _, slot := range model.AllSlots {
		ui.refreshSlot(slot)
	}
}

func (ui *RootUI) refreshSlot(slot model.Slot) {
	row := ui.introRow
	if slot == model.SlotLoop {
		row = ui.loopRow
	}
	if row == nil {
		return
	}

	valid := ui.library.Check(slot)
	info := ""
	if valid {
		if wavInfo, err := ui.library.Info(slot); err == nil {
			info = wavInfo.String()
		} else {
			log.Printf("Failed to read %s info: %v", slot, err)
		}
	}

	row.Update(ui.library.TrackSlot(slot), info, valid)
}

// refreshStatus updates the status label and transport buttons
func (ui *RootUI) refreshStatus() {
	if ui.statusLabel == nil {
		return
	}

	state := ui.sequencer.State()
	playing := ui.engineStatus.Playing

	var key string
	switch {
	case state.IsActive() && !playing:
		key = KeyStatePaused
	case state == model.StatePlayingIntroThenLoop:
		key = KeyStateIntroLoop
	case state == model.StatePlayingLoopOnly:
		key = KeyStateLoopOnly
	case state == model.StateStopped:
		key = KeyStateStopped
	default:
		key = KeyStateIdle
	}

	status := ui.localization.GetText(key)
	if state.IsActive() && ui.engineStatus.Index >= 0 {
		status += MiddleDotSeparator + ui.slotCaption(ui.engineStatus.Index) +
			MiddleDotSeparator + IconRepeat + " " + ui.engineStatus.Repeat.String()
	}
	ui.statusLabel.SetText(status)

	if state.IsActive() && playing {
		ui.pauseBtn.Enable()
	} else {
		ui.pauseBtn.Disable()
	}
	if state.HasSession() {
		ui.stopBtn.Enable()
		ui.clearBtn.Enable()
	} else {
		ui.stopBtn.Disable()
		ui.clearBtn.Disable()
	}
}

// slotCaption names the playlist entry at index for the current session
func (ui *RootUI) slotCaption(index int) string {
	items := ui.engine.Items()
	if index < len(items) && items[index].Slot == model.SlotIntro {
		return ui.localization.GetText(KeyIntro)
	}
	return ui.localization.GetText(KeyLoop)
}

func (ui *RootUI) updateVolumeLabel(value float64) {
	ui.volumeLabel.SetText(ui.localization.GetText(KeyVolume) + " " + strconv.Itoa(int(value)) + "%")
}

// showNotification displays a message in the notification panel under the header.
// Messages without a spinner hide themselves after NotificationAutoHide.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}

	ui.notificationSeq++
	seq := ui.notificationSeq

	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()

	if spinning {
		return
	}
	go func() {
		time.Sleep(NotificationAutoHide)
		fyne.Do(func() {
			if ui.notificationSeq == seq {
				ui.hideNotification()
			}
		})
	}()
}

func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	ui.notificationSpinner.Hide()
	ui.notificationContainer.Hide()
}
