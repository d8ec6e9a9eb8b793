package terminal

import "strings"

// Progress bar characters.
const (
	ProgressFilled = "█"
	ProgressEmpty  = "░"
)

// DrawProgressBar draws a bar of the given width filled to value.
// Value is clamped to [0, 1].
// Example: DrawProgressBar(0.7, 10) returns "███████░░░".
func DrawProgressBar(value float64, width int) string {
	if width <= 0 {
		return ""
	}

	value = min(max(value, 0), 1)

	filled := int(value * float64(width))

	return strings.Repeat(ProgressFilled, filled) + strings.Repeat(ProgressEmpty, width-filled)
}

// DrawRatioBar draws a bar for count relative to the largest count.
func DrawRatioBar(count, largest, width int) string {
	if largest <= 0 {
		return DrawProgressBar(0, width)
	}

	return DrawProgressBar(float64(count)/float64(largest), width)
}
