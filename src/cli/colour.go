package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// StdOutIsATerminal is true if the process' stdout is an interactive TTY.
var StdOutIsATerminal = term.IsTerminal(int(os.Stdout.Fd()))

var colours = map[string]string{
	"BOLD":        "\x1b[1m",
	"BOLD_RED":    "\x1b[31;1m",
	"BOLD_GREEN":  "\x1b[32;1m",
	"BOLD_YELLOW": "\x1b[33;1m",
	"BOLD_WHITE":  "\x1b[37;1m",
	"GREY":        "\x1b[30m",
	"RED":         "\x1b[31m",
	"GREEN":       "\x1b[32m",
	"YELLOW":      "\x1b[33m",
	"RESET":       "\x1b[0m",
}

var colourReplacer, plainReplacer = newReplacers()

func newReplacers() (*strings.Replacer, *strings.Replacer) {
	coloured := make([]string, 0, 2*len(colours))
	plain := make([]string, 0, 2*len(colours))
	for k, v := range colours {
		coloured = append(coloured, "${"+k+"}", v)
		plain = append(plain, "${"+k+"}", "")
	}
	return strings.NewReplacer(coloured...), strings.NewReplacer(plain...)
}

// Colourise replaces ${BOLD}, ${RED} etc. in msg with the corresponding ANSI sequences,
// or strips them if coloured is false.
func Colourise(msg string, coloured bool) string {
	if coloured {
		return colourReplacer.Replace(msg)
	}
	return plainReplacer.Replace(msg)
}

// Fprintf is fmt.Fprintf with colour replacements in the format string.
// Colours are only written when stdout is a terminal.
func Fprintf(w io.Writer, msg string, args ...interface{}) {
	fmt.Fprintf(w, Colourise(msg, StdOutIsATerminal), args...)
}
