package format

// ANSI escapes used by the history listing
const (
	Reset = "\033[0m"
	Dim   = "\033[2m"

	Magenta    = "\033[35m"
	Yellow     = "\033[33m"
	Gray       = "\033[37m"
	BrightBlue = "\033[94m"
)

// ColorizeIf wraps text in color when useColors is set.
func ColorizeIf(text, color string, useColors bool) string {
	if !useColors || text == "" {
		return text
	}
	return color + text + Reset
}

// DimIf renders text dimmed when useColors is set.
func DimIf(text string, useColors bool) string {
	return ColorizeIf(text, Dim, useColors)
}
