package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds lipgloss styles for human-readable output.
type Styles struct {
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
	Border  lipgloss.Color
}

// newStyles returns the palette, or unstyled text when color is off.
func newStyles(color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error:   plain,
			Success: plain,
			Warning: plain,
			Bold:    plain,
			Title:   plain,
			Muted:   plain,
			Key:     plain,
		}
	}
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Bold:    lipgloss.NewStyle().Bold(true),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:   lipgloss.NewStyle().Faint(true),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Border:  lipgloss.Color("8"),
	}
}

// ResolveColorMode applies the --color flag ("never", "always" or "auto")
// to the detected terminal state.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return isTTY
	}
}

// IsTTY reports whether writer is a terminal device.
func IsTTY(writer io.Writer) bool {
	return isCharDevice(writer)
}

// IsTerminalInput reports whether reader is an interactive terminal.
func IsTerminalInput(reader io.Reader) bool {
	return isCharDevice(reader)
}

func isCharDevice(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
