package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/nduc/bgm-player/internal/model"
)

// SlotLabelWidth keeps the intro and loop captions aligned
const SlotLabelWidth float32 = 96

// SlotRow shows one track slot with its pick button
type SlotRow struct {
	widget.BaseWidget

	slot         model.TrackSlot
	info         string
	valid        bool
	localization *Localization
	minHeight    float32

	// UI components
	captionLabel *widget.Label
	nameLabel    *widget.Label
	infoLabel    *widget.Label
	pickBtn      *widget.Button

	onPick func(slot model.Slot)
}

// NewSlotRow creates a row for slot
func NewSlotRow(slot model.Slot, localization *Localization, minHeight float32) *SlotRow {
	sr := &SlotRow{
		slot:         model.TrackSlot{Slot: slot},
		localization: localization,
		minHeight:    minHeight,
	}
	sr.ExtendBaseWidget(sr)
	sr.createUI()
	sr.updateFromSlot()
	return sr
}

// SetOnPick sets the pick button callback
func (sr *SlotRow) SetOnPick(onPick func(slot model.Slot)) {
	sr.onPick = onPick
}

// Update replaces the displayed slot state. info is the WAV summary shown
// under the name and valid tells whether the backing copy is playable.
func (sr *SlotRow) Update(slot model.TrackSlot, info string, valid bool) {
	sr.slot = slot
	sr.info = info
	sr.valid = valid
	sr.updateFromSlot()
	sr.Refresh()
}

// SetPickEnabled enables or disables the pick button
func (sr *SlotRow) SetPickEnabled(enabled bool) {
	if enabled {
		sr.pickBtn.Enable()
	} else {
		sr.pickBtn.Disable()
	}
}

// RefreshTexts reapplies localized texts
func (sr *SlotRow) RefreshTexts() {
	sr.captionLabel.SetText(sr.captionText())
	sr.pickBtn.SetText(sr.pickText())
	sr.updateFromSlot()
}

func (sr *SlotRow) createUI() {
	sr.captionLabel = widget.NewLabel(sr.captionText())
	sr.captionLabel.TextStyle = fyne.TextStyle{Bold: true}

	sr.nameLabel = widget.NewLabel("")
	sr.nameLabel.Truncation = fyne.TextTruncateEllipsis

	sr.infoLabel = widget.NewLabel("")
	sr.infoLabel.TextStyle = fyne.TextStyle{Monospace: true}
	sr.infoLabel.Truncation = fyne.TextTruncateEllipsis

	sr.pickBtn = widget.NewButton(sr.pickText(), func() {
		if sr.onPick != nil {
			sr.onPick(sr.slot.Slot)
		}
	})
	sr.pickBtn.Importance = widget.MediumImportance
}

func (sr *SlotRow) updateFromSlot() {
	name := sr.slot.DisplayName
	if !sr.slot.HasDisplayName() {
		name = sr.localization.GetText(KeyNoFile)
	}
	sr.nameLabel.SetText(IconMusic + " " + name)

	switch {
	case !sr.slot.HasSource():
		sr.infoLabel.SetText(DashPlaceholder)
	case !sr.valid:
		sr.infoLabel.SetText(IconError + " " + sr.localization.GetText(KeyInvalidWav))
	case sr.info != "":
		sr.infoLabel.SetText(sr.info)
	default:
		sr.infoLabel.SetText(DashPlaceholder)
	}
}

func (sr *SlotRow) captionText() string {
	if sr.slot.Slot == model.SlotIntro {
		return sr.localization.GetText(KeyIntro)
	}
	return sr.localization.GetText(KeyLoop)
}

func (sr *SlotRow) pickText() string {
	if sr.slot.Slot == model.SlotIntro {
		return sr.localization.GetText(KeySetIntro)
	}
	return sr.localization.GetText(KeySetLoop)
}

// CreateRenderer creates the widget renderer
func (sr *SlotRow) CreateRenderer() fyne.WidgetRenderer {
	// Fixed caption width keeps both rows aligned
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(SlotLabelWidth, sr.minHeight))
	caption := container.NewStack(spacer, container.NewCenter(sr.captionLabel))

	details := container.NewVBox(sr.nameLabel, sr.infoLabel)
	row := container.NewBorder(nil, widget.NewSeparator(), caption, container.NewCenter(sr.pickBtn), details)

	return &slotRowRenderer{row: row}
}

// slotRowRenderer renders the slot row widget
type slotRowRenderer struct {
	row *fyne.Container
}

func (r *slotRowRenderer) Layout(size fyne.Size) {
	r.row.Resize(size)
}

func (r *slotRowRenderer) MinSize() fyne.Size {
	size := r.row.MinSize()
	if size.Width < SlotRowMinWidth {
		size.Width = SlotRowMinWidth
	}
	return size
}

func (r *slotRowRenderer) Refresh() {
	r.row.Refresh()
}

func (r *slotRowRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.row}
}

func (r *slotRowRenderer) Destroy() {}
