// Package ui provides the ScatterBoard desktop preview.
//
// This file defines a compact Fyne theme so large fixtures fit on screen.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PreviewTheme wraps the default Fyne theme with compact sizing overrides.
type PreviewTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewPreviewTheme creates a theme that follows the system light/dark variant.
func NewPreviewTheme() *PreviewTheme {
	return &PreviewTheme{base: theme.DefaultTheme(), system: true}
}

// NewPreviewThemeFromConfig maps the AppConfig theme name ("light", "dark",
// "system") onto a theme.
func NewPreviewThemeFromConfig(name string) *PreviewTheme {
	t := NewPreviewTheme()
	t.SetVariantName(name)
	return t
}

// SetVariantName switches between "light", "dark" and "system".
func (t *PreviewTheme) SetVariantName(name string) {
	switch name {
	case "light":
		t.variant, t.system = theme.VariantLight, false
	case "dark":
		t.variant, t.system = theme.VariantDark, false
	default:
		t.system = true
	}
}

// Color delegates to the base theme, pinning the variant unless following the system.
func (t *PreviewTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if !t.system {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *PreviewTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *PreviewTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *PreviewTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 18
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}
