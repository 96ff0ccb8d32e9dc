// Package ui renders the operator-facing terminal surface: themed status
// lines, send progress, and the start confirmation. The engine never depends
// on this package, only on the small callback types it feeds.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// Theme maps the configured color names onto console printers. Unknown names
// fall back to the defaults, so a bad theme never breaks a run.
type Theme struct {
	message *color.Color
	value   *color.Color
	errc    *color.Color
}

var colorNames = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,

	"hi-red":     color.FgHiRed,
	"hi-green":   color.FgHiGreen,
	"hi-yellow":  color.FgHiYellow,
	"hi-blue":    color.FgHiBlue,
	"hi-magenta": color.FgHiMagenta,
	"hi-cyan":    color.FgHiCyan,
	"hi-white":   color.FgHiWhite,
}

func NewTheme(message, value, errName string) Theme {
	return Theme{
		message: color.New(attr(message, color.FgCyan)),
		value:   color.New(attr(value, color.FgHiMagenta)),
		errc:    color.New(attr(errName, color.FgRed)),
	}
}

func attr(name string, def color.Attribute) color.Attribute {
	if a, ok := colorNames[name]; ok {
		return a
	}
	return def
}

// Messagef prints one themed status line.
func (t Theme) Messagef(format string, a ...any) {
	t.message.Println(fmt.Sprintf(format, a...))
}

// Valuef highlights a value for embedding into a message line.
func (t Theme) Valuef(format string, a ...any) string {
	return t.value.Sprintf(format, a...)
}

// Errorf prints one themed error line.
func (t Theme) Errorf(format string, a ...any) {
	t.errc.Println(fmt.Sprintf(format, a...))
}
