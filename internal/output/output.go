// Package output provides portage-style colorized terminal output.
package output

import (
	"fmt"
	"io"
	"sync/atomic"
)

// ANSI escape sequences for the portage color classes.
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	teal   = "\033[36m"
	bold   = "\033[1m"
)

// Style identifies a portage output color class.
type Style string

// Styles mirror the class names used by portage.output.
const (
	StyleGood    Style = "GOOD"
	StyleWarn    Style = "WARN"
	StyleBad     Style = "BAD"
	StyleBracket Style = "BRACKET"
	StyleHilite  Style = "HILITE"
	StyleBold    Style = "BOLD"
)

var styleCodes = map[Style]string{
	StyleGood:    green,
	StyleWarn:    yellow,
	StyleBad:     red,
	StyleBracket: blue,
	StyleHilite:  teal,
	StyleBold:    bold,
}

var noColor atomic.Bool

// SetNoColor disables or re-enables color escapes globally.
func SetNoColor(disable bool) {
	noColor.Store(disable)
}

// Colorize wraps text in the escape codes of the given style. Unknown
// styles and disabled color both return the text unchanged.
func Colorize(style Style, text string) string {
	if noColor.Load() {
		return text
	}
	code, ok := styleCodes[style]
	if !ok {
		return text
	}
	return code + text + reset
}

// EInfo writes a portage " * " info line.
func EInfo(w io.Writer, format string, v ...interface{}) {
	fmt.Fprintf(w, "%s%s\n", Colorize(StyleGood, " * "), fmt.Sprintf(format, v...))
}

// EWarn writes a portage " * " warning line.
func EWarn(w io.Writer, format string, v ...interface{}) {
	fmt.Fprintf(w, "%s%s\n", Colorize(StyleWarn, " * "), fmt.Sprintf(format, v...))
}

// EError writes a portage " * " error line.
func EError(w io.Writer, format string, v ...interface{}) {
	fmt.Fprintf(w, "%s%s\n", Colorize(StyleBad, " * "), fmt.Sprintf(format, v...))
}
