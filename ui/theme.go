package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Alert colors for the remaining-time display.
var (
	ColorNormal  = color.NRGBA{R: 0xe8, G: 0xe2, B: 0xd0, A: 0xff}
	ColorWarning = color.NRGBA{R: 0xff, G: 0xa5, B: 0x1e, A: 0xff}
	ColorExpired = color.NRGBA{R: 0xe5, G: 0x3a, B: 0x3a, A: 0xff}
	ColorPaused  = color.NRGBA{R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff}
)

// TorchTheme darkens the default theme to match a table lit by torchlight.
type TorchTheme struct {
	fyne.Theme
}

// NewTorchTheme creates a new instance of the custom theme.
func NewTorchTheme() fyne.Theme {
	return &TorchTheme{Theme: theme.DefaultTheme()}
}

// Color forces the dark variant regardless of the system setting.
func (t *TorchTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, theme.VariantDark)
}
