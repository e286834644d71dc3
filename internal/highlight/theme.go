package highlight

import "github.com/gdamore/tcell/v2"

// Theme maps semantic classes to terminal styles.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Background is the editor background color.
	Background tcell.Color

	// Foreground is the default text color.
	Foreground tcell.Color

	// Selection is the selection highlight background.
	Selection tcell.Color

	// ClassStyles maps classes to their styles.
	ClassStyles map[Class]tcell.Style
}

// StyleFor returns the style for a class, falling back to the default
// foreground/background pair.
func (t *Theme) StyleFor(class Class) tcell.Style {
	if style, ok := t.ClassStyles[class]; ok {
		return style
	}
	return tcell.StyleDefault.Foreground(t.Foreground).Background(t.Background)
}

// DefaultTheme returns a dark theme with conventional coloring.
func DefaultTheme() *Theme {
	bg := tcell.ColorReset
	base := tcell.StyleDefault.Background(bg)
	return &Theme{
		Name:       "default-dark",
		Background: bg,
		Foreground: tcell.ColorReset,
		Selection:  tcell.ColorDarkSlateGray,
		ClassStyles: map[Class]tcell.Style{
			ClassComment:  base.Foreground(tcell.ColorGray).Italic(true),
			ClassString:   base.Foreground(tcell.ColorGreen),
			ClassNumber:   base.Foreground(tcell.ColorOrange),
			ClassKeyword:  base.Foreground(tcell.ColorPurple).Bold(true),
			ClassType:     base.Foreground(tcell.ColorTeal),
			ClassConstant: base.Foreground(tcell.ColorOrange),
			ClassFunction: base.Foreground(tcell.ColorBlue),
			ClassOperator: base.Foreground(tcell.ColorSilver),
		},
	}
}
