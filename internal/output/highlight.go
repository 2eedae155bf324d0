package output

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

var assignmentRe = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(=)(.*)$`)

// HighlightBash writes shell text to w with comments and variable
// assignments colorized. background picks the comment style for dark or
// light terminals.
func HighlightBash(w io.Writer, text, background string) {
	commentStyle := StyleHilite
	if background == "light" {
		commentStyle = StyleBracket
	}

	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(strings.TrimSpace(line), "#"):
			fmt.Fprintln(w, Colorize(commentStyle, line))
		case assignmentRe.MatchString(line):
			m := assignmentRe.FindStringSubmatch(line)
			fmt.Fprintf(w, "%s%s%s\n", Colorize(StyleGood, m[1]), m[2], m[3])
		case strings.HasPrefix(line, "inherit "):
			fmt.Fprintf(w, "%s%s\n", Colorize(StyleBold, "inherit"), strings.TrimPrefix(line, "inherit"))
		default:
			fmt.Fprintln(w, line)
		}
	}
}
