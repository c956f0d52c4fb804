package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MobileUI provides mobile-specific layout helpers
type MobileUI struct {
	app fyne.App
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(app fyne.App) *MobileUI {
	return &MobileUI{app: app}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return fyne.CurrentDevice().IsMobile()
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	orientation := fyne.CurrentDevice().Orientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}

// CreateMobileButton creates a button sized for touch on mobile devices
func (m *MobileUI) CreateMobileButton(text string, onTapped func()) *widget.Button {
	btn := widget.NewButton(text, onTapped)

	if m.IsMobileDevice() {
		btn.Resize(fyne.NewSize(MobileButtonWidth, MobileButtonHeight))
	}

	return btn
}

// CreateControlsContainer lays out the transport buttons: one row on desktop
// and in landscape, two columns in portrait on mobile
func (m *MobileUI) CreateControlsContainer(buttons ...fyne.CanvasObject) *fyne.Container {
	if m.IsMobileDevice() && !m.IsLandscape() {
		return container.NewGridWithColumns(2, buttons...)
	}
	return container.NewGridWithColumns(len(buttons), buttons...)
}

// SlotRowHeight returns the minimum height of a slot row
func (m *MobileUI) SlotRowHeight() float32 {
	if m.IsMobileDevice() {
		return MobileSlotRowMinHeight
	}
	return SlotRowMinHeight
}
