package plotpage

// Theme represents a color theme for visualizations.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ParseTheme maps a theme name to a Theme. Unknown names select ThemeDark.
func ParseTheme(name string) Theme {
	if Theme(name) == ThemeLight {
		return ThemeLight
	}

	return ThemeDark
}

// ThemeConfig holds all theme-specific styling values.
type ThemeConfig struct {
	// Base colors.
	Background string
	Surface    string
	Border     string

	// Text colors.
	TextPrimary   string
	TextSecondary string
	TextMuted     string

	// Accent colors.
	Accent       string
	AccentSubtle string

	// Notice colors for disclosures and empty states.
	Notice       string
	NoticeSubtle string

	// Chart-specific.
	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// ECharts theme name.
	EChartsTheme string
}

// ChartPalette holds the series colors for one theme. Movie and Show color
// the two content types wherever they appear side by side.
type ChartPalette struct {
	Primary []string
	Movie   string
	Show    string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeLight {
		return lightTheme
	}

	return darkTheme
}

// GetChartPalette returns the chart color palette for a given theme.
func GetChartPalette(theme Theme) ChartPalette {
	if theme == ThemeLight {
		return lightChartPalette
	}

	return darkChartPalette
}

var lightTheme = ThemeConfig{
	Background: "#f5f5f5",
	Surface:    "#ffffff",
	Border:     "#e5e5e5",

	TextPrimary:   "#141414",
	TextSecondary: "#404040",
	TextMuted:     "#737373",

	Accent:       "#b20710",
	AccentSubtle: "#fde8e9",

	Notice:       "#a16207",
	NoticeSubtle: "#fef3c7",

	ChartBackground: "transparent",
	ChartGrid:       "#e5e5e5",
	ChartAxis:       "#a3a3a3",
	ChartText:       "#404040",
	ChartTextMuted:  "#737373",
}

var darkTheme = ThemeConfig{
	Background: "#141414",
	Surface:    "#1f1f1f",
	Border:     "#333333",

	TextPrimary:   "#f5f5f5",
	TextSecondary: "#d4d4d4",
	TextMuted:     "#a3a3a3",

	Accent:       "#e50914",
	AccentSubtle: "#3b0a0d",

	Notice:       "#fbbf24",
	NoticeSubtle: "#422006",

	ChartBackground: "transparent",
	ChartGrid:       "#333333",
	ChartAxis:       "#525252",
	ChartText:       "#d4d4d4",
	ChartTextMuted:  "#a3a3a3",
}

var lightChartPalette = ChartPalette{
	Primary: []string{"#b20710", "#0369a1", "#4d7c0f", "#7c3aed", "#be185d", "#0891b2", "#c2410c", "#4338ca"},
	Movie:   "#b20710",
	Show:    "#0369a1",
}

var darkChartPalette = ChartPalette{
	Primary: []string{"#e50914", "#38bdf8", "#a3e635", "#a78bfa", "#f472b6", "#22d3ee", "#fb923c", "#818cf8"},
	Movie:   "#e50914",
	Show:    "#38bdf8",
}
