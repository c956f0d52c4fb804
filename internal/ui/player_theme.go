package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PlayerTheme is a compact dark-leaning theme with a teal accent
type PlayerTheme struct {
	mobile bool
}

// NewPlayerTheme creates the player theme; mobile enlarges text and padding
func NewPlayerTheme(mobile bool) fyne.Theme {
	return &PlayerTheme{mobile: mobile}
}

// Color returns theme colors
func (t *PlayerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.RGBA{R: 0, G: 150, B: 136, A: 255} // Teal
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 160, B: 0, A: 255}
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 16, G: 20, B: 24, A: 255}
		}
		return color.RGBA{R: 245, G: 247, B: 248, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *PlayerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *PlayerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *PlayerTheme) Size(name fyne.ThemeSizeName) float32 {
	if t.mobile {
		switch name {
		case theme.SizeNamePadding:
			return 6
		case theme.SizeNameText:
			return 16
		case theme.SizeNameHeadingText:
			return 22
		}
		return theme.DefaultTheme().Size(name)
	}

	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	}

	return theme.DefaultTheme().Size(name)
}
