package rerrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders errors for CLI stderr output, colorized when the
// destination is a terminal.
type Formatter struct {
	NoColor bool
}

// NewFormatter returns a Formatter. noColor disables ANSI colors
// regardless of TTY detection (the caller decides that upstream).
func NewFormatter(noColor bool) *Formatter {
	return &Formatter{NoColor: noColor}
}

// Format renders err as a multi-line human-readable message.
func (f *Formatter) Format(err error) string {
	var (
		netErr  *NetworkError
		procErr *ProcessError
		ioErr   *IOError
		base    *Error
	)

	var b strings.Builder
	label := f.colorize(color.FgRed, "error")

	switch {
	case errors.As(err, &netErr):
		fmt.Fprintf(&b, "%s: %s\n", label, netErr.Message)
		if netErr.URL != "" {
			fmt.Fprintf(&b, "  url: %s\n", netErr.URL)
		}
		if netErr.StatusCode != 0 {
			fmt.Fprintf(&b, "  status: %d\n", netErr.StatusCode)
		}
		f.writeTail(&b, netErr.Error)
	case errors.As(err, &procErr):
		fmt.Fprintf(&b, "%s: %s\n", label, procErr.Message)
		fmt.Fprintf(&b, "  command: %s\n", strings.Join(procErr.Command, " "))
		if procErr.Stderr != "" {
			fmt.Fprintf(&b, "  stderr: %s\n", strings.TrimSpace(procErr.Stderr))
		}
		f.writeTail(&b, procErr.Error)
	case errors.As(err, &ioErr):
		fmt.Fprintf(&b, "%s: %s\n", label, ioErr.Message)
		fmt.Fprintf(&b, "  path: %s\n", ioErr.Path)
		f.writeTail(&b, ioErr.Error)
	case errors.As(err, &base):
		fmt.Fprintf(&b, "%s: %s\n", label, base.Message)
		f.writeTail(&b, base)
	default:
		fmt.Fprintf(&b, "%s: %s\n", label, err.Error())
	}

	return strings.TrimRight(b.String(), "\n")
}

func (f *Formatter) writeTail(b *strings.Builder, e *Error) {
	if e.Hint != "" {
		fmt.Fprintf(b, "  hint: %s\n", e.Hint)
	}
	for k, v := range e.Details {
		fmt.Fprintf(b, "  %s: %v\n", k, v)
	}
}

func (f *Formatter) colorize(attr color.Attribute, s string) string {
	if f.NoColor {
		return s
	}
	return color.New(attr).Sprint(s)
}
