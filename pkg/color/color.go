// Package color styles diagnostic output. Styling follows the terminal's
// colour profile and turns into plain text when colour is disabled.
package color

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// ANSI colour indices.
const (
	Red    = "1"
	Green  = "2"
	Yellow = "3"
	Cyan   = "6"
	Gray   = "8"

	BrightRed = "9"
)

var profile = termenv.EnvColorProfile()

// EnableColor forces colour on (ANSI256) or off (Ascii).
func EnableColor(enable bool) {
	if enable {
		profile = termenv.ANSI256
		return
	}
	profile = termenv.Ascii
}

func IsColorEnabled() bool {
	return profile != termenv.Ascii
}

func Colorize(color, text string) string {
	return profile.String(text).Foreground(profile.Color(color)).String()
}

func RedText(text string) string {
	return Colorize(Red, text)
}

func BrightRedText(text string) string {
	return Colorize(BrightRed, text)
}

func GreenText(text string) string {
	return Colorize(Green, text)
}

func YellowText(text string) string {
	return Colorize(Yellow, text)
}

func CyanText(text string) string {
	return Colorize(Cyan, text)
}

func GrayText(text string) string {
	return Colorize(Gray, text)
}

func BoldText(text string) string {
	return profile.String(text).Bold().String()
}

func Error(message string) string {
	return BrightRedText("Error: ") + message
}

func Warning(message string) string {
	return YellowText("Warning: ") + message
}

func Success(message string) string {
	return GreenText("Success: ") + message
}

func Highlight(text, highlight string) string {
	if !IsColorEnabled() {
		return text
	}
	return strings.ReplaceAll(text, highlight, YellowText(highlight))
}

// Position renders a frame depth as a fixed-width marker.
func Position(depth int) string {
	return CyanText(fmt.Sprintf("#%-3d", depth))
}
