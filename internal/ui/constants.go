package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconStop     = "⏹"
	IconClear    = "⏏"
	IconFolder   = "📁"
	IconClose    = "×"
	IconError    = "❌"
	IconMusic    = "🎵"
	IconRepeat   = "🔁"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	WavExtension       = ".wav"
)

// Layout sizing
const (
	SlotRowMinWidth  float32 = 320
	SlotRowMinHeight float32 = 64

	MobileSlotRowMinHeight float32 = 88

	// Touch target minimum sizes (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
	MobileButtonHeight float32 = 48
	MobileButtonWidth  float32 = 60

	SettingsDialogWidth  float32 = 460
	SettingsDialogHeight float32 = 360
)

// Notification behavior
const (
	NotificationAutoHide = 5 * time.Second
)
