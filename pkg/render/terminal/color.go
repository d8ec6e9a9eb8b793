package terminal

import "github.com/fatih/color"

// Color names a terminal foreground color.
type Color int

// Color constants.
const (
	ColorNone Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorGray
	ColorBold
)

var attributes = map[Color][]color.Attribute{
	ColorRed:    {color.FgHiRed, color.Bold},
	ColorGreen:  {color.FgGreen},
	ColorYellow: {color.FgYellow},
	ColorCyan:   {color.FgCyan},
	ColorGray:   {color.FgHiBlack},
	ColorBold:   {color.Bold},
}

// Colorize applies color to text. If NoColor is true, returns text unchanged.
func (c Config) Colorize(text string, col Color) string {
	attrs, ok := attributes[col]
	if c.NoColor || !ok {
		return text
	}

	painter := color.New(attrs...)
	painter.EnableColor()

	return painter.Sprint(text)
}
