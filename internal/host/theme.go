package host

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/blockmark/internal/config"
)

// Theme holds the styles used to draw the document.
type Theme struct {
	Text      tcell.Style
	Muted     tcell.Style
	Accent    tcell.Style
	Active    tcell.Style
	Separator tcell.Style
	Status    tcell.Style
}

// DefaultTheme uses the terminal's own colors.
func DefaultTheme() Theme {
	return Theme{
		Text:      tcell.StyleDefault,
		Muted:     tcell.StyleDefault.Dim(true),
		Accent:    tcell.StyleDefault.Bold(true),
		Active:    tcell.StyleDefault.Reverse(true),
		Separator: tcell.StyleDefault.Dim(true),
		Status:    tcell.StyleDefault.Reverse(true),
	}
}

// ThemeFromConfig builds a true color theme from hex colors. Missing
// colors fall back to the default theme's styles. The separator color is
// blended between background and muted in Lab space.
func ThemeFromConfig(tc config.ThemeConfig) (Theme, error) {
	t := DefaultTheme()
	if tc.Background == "" || tc.Foreground == "" {
		return t, nil
	}

	parse := func(name, hex string, fallback colorful.Color) (colorful.Color, error) {
		if hex == "" {
			return fallback, nil
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("theme %s: %w", name, err)
		}
		return c, nil
	}

	bg, err := parse("background", tc.Background, colorful.Color{})
	if err != nil {
		return t, err
	}
	fg, err := parse("foreground", tc.Foreground, colorful.Color{})
	if err != nil {
		return t, err
	}
	accent, err := parse("accent", tc.Accent, fg)
	if err != nil {
		return t, err
	}
	muted, err := parse("muted", tc.Muted, fg.BlendLab(bg, 0.5))
	if err != nil {
		return t, err
	}
	active, err := parse("active_block", tc.ActiveBlock, bg.BlendLab(fg, 0.15))
	if err != nil {
		return t, err
	}

	base := tcell.StyleDefault.Background(toTcell(bg)).Foreground(toTcell(fg))
	t.Text = base
	t.Muted = base.Foreground(toTcell(muted))
	t.Accent = base.Foreground(toTcell(accent)).Bold(true)
	t.Active = base.Background(toTcell(active))
	t.Separator = base.Foreground(toTcell(bg.BlendLab(muted, 0.5)))
	t.Status = tcell.StyleDefault.Background(toTcell(accent)).Foreground(toTcell(bg))
	return t, nil
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
