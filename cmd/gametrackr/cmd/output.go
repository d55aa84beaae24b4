package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// textStyles decorate one-shot command output. Zero styles render plain text.
type textStyles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Faint lipgloss.Style
	Brand lipgloss.Style
}

// stylesFor returns colored styles when w is a terminal and plain ones
// otherwise, so piped output stays clean.
func stylesFor(w io.Writer) textStyles {
	if !isTerminal(w) {
		plain := lipgloss.NewStyle()
		return textStyles{Title: plain, Label: plain, Faint: plain, Brand: plain}
	}
	return textStyles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f2f2f5")),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("#9a9aa6")),
		Faint: lipgloss.NewStyle().Foreground(lipgloss.Color("#5e5e6a")),
		Brand: lipgloss.NewStyle().Foreground(lipgloss.Color("#e5383b")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
