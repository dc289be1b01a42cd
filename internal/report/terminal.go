package report

import (
	"io"
	"os"

	"golang.org/x/term"
)

const terminalWidthBackup = 80

// Options controls text rendering.
type Options struct {
	Width int
	Color bool
	Bars  bool
}

// DefaultOptions sizes output to the terminal behind w.
func DefaultOptions(w io.Writer) Options {
	return Options{
		Width: terminalWidth(w),
		Color: shouldUseColor(w),
		Bars:  true,
	}
}

func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
