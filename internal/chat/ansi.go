package chat

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var namedColors = map[string]pterm.Color{
	"black":        pterm.FgBlack,
	"dark_blue":    pterm.FgBlue,
	"dark_green":   pterm.FgGreen,
	"dark_aqua":    pterm.FgCyan,
	"dark_red":     pterm.FgRed,
	"dark_purple":  pterm.FgMagenta,
	"gold":         pterm.FgYellow,
	"gray":         pterm.FgWhite,
	"dark_gray":    pterm.FgDarkGray,
	"blue":         pterm.FgLightBlue,
	"green":        pterm.FgLightGreen,
	"aqua":         pterm.FgLightCyan,
	"red":          pterm.FgLightRed,
	"light_purple": pterm.FgLightMagenta,
	"yellow":       pterm.FgLightYellow,
	"white":        pterm.FgLightWhite,
}

// ANSI renders the component tree with terminal escape sequences.
func (c Component) ANSI() string {
	var b strings.Builder
	c.walk(Style{}, func(text string, style Style) {
		b.WriteString(renderSegment(text, style))
	})
	return b.String()
}

func renderSegment(text string, s Style) string {
	var attrs []pterm.Color
	if isSet(s.Bold) {
		attrs = append(attrs, pterm.Bold)
	}
	if isSet(s.Italic) {
		attrs = append(attrs, pterm.Italic)
	}
	if isSet(s.Underlined) {
		attrs = append(attrs, pterm.Underscore)
	}
	if isSet(s.Strikethrough) {
		attrs = append(attrs, pterm.Strikethrough)
	}
	if isSet(s.Obfuscated) {
		attrs = append(attrs, pterm.Reverse)
	}

	if rgb, ok := parseHexColor(s.Color); ok {
		text = rgb.Sprint(text)
	} else if fg, ok := namedColors[s.Color]; ok {
		attrs = append(attrs, fg)
	}
	if len(attrs) == 0 {
		return text
	}
	return pterm.NewStyle(attrs...).Sprint(text)
}

func isSet(v *bool) bool {
	return v != nil && *v
}

func parseHexColor(raw string) (pterm.RGB, bool) {
	if len(raw) != 7 || raw[0] != '#' {
		return pterm.RGB{}, false
	}
	v, err := strconv.ParseUint(raw[1:], 16, 32)
	if err != nil {
		return pterm.RGB{}, false
	}
	return pterm.NewRGB(uint8(v>>16), uint8(v>>8), uint8(v)), true
}
