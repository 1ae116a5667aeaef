package view

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dmitrijs2005/tgdialogs/internal/client/models"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	nameWidth    = 24
	timeWidth    = 10
	ellipsis     = "…"
	emptyText    = "No dialogs"
)

var (
	avatarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("25")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("33")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	outStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

// Printer writes views to a writer. On a terminal every frame clears the
// screen first so the latest view replaces the previous one; elsewhere
// frames are appended as plain text.
type Printer struct {
	w      io.Writer
	styled bool
	width  int
}

// NewPrinter detects whether w is a terminal and sizes output to it.
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{w: w, width: defaultWidth}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.styled = true
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			p.width = width
		}
	}
	return p
}

// NewPlainPrinter never styles and wraps previews at width columns.
func NewPlainPrinter(w io.Writer, width int) *Printer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Printer{w: w, width: width}
}

// Print writes one frame.
func (p *Printer) Print(v View) error {
	var b strings.Builder
	if p.styled {
		b.WriteString(ansi.CursorHomePosition + ansi.EraseEntireScreen)
	}

	if v.Empty {
		b.WriteString(p.style(dimStyle, emptyText))
		b.WriteString("\n")
		_, err := io.WriteString(p.w, b.String())
		return err
	}

	for _, e := range v.Entries {
		b.WriteString(p.entryLine(e))
		b.WriteString("\n")
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Printer) entryLine(e Entry) string {
	avatar := "[" + e.Label + "]"
	if p.styled {
		avatar = avatarStyle.Render(e.Label)
	}

	name := ansi.Truncate(e.Name, nameWidth, ellipsis)
	name += strings.Repeat(" ", max(nameWidth-ansi.StringWidth(name), 0))

	badge := ""
	if e.Badge != "" {
		if p.styled {
			badge = " " + badgeStyle.Render(e.Badge)
		} else {
			badge = " (" + e.Badge + ")"
		}
	}

	when := fmt.Sprintf("%*s", timeWidth, e.Time)

	fixed := ansi.StringWidth(avatar) + 1 + nameWidth + 1 + 1 + timeWidth + ansi.StringWidth(badge)
	preview := ansi.Truncate(e.Message, max(p.width-fixed, 8), ellipsis)
	preview += strings.Repeat(" ", max(p.width-fixed-ansi.StringWidth(preview), 0))

	return avatar + " " +
		p.style(nameStyle, name) + " " +
		p.style(previewStyle, preview) + " " +
		p.style(timeStyle, when) +
		badge
}

// PrintMessages writes a message listing, oldest first as received.
func (p *Printer) PrintMessages(msgs []models.Message, now time.Time) error {
	var b strings.Builder
	if len(msgs) == 0 {
		b.WriteString(p.style(dimStyle, NoMessages))
		b.WriteString("\n")
		_, err := io.WriteString(p.w, b.String())
		return err
	}

	for _, m := range msgs {
		date := m.Date
		prefix := "  "
		if m.Out {
			prefix = p.style(outStyle, "> ")
		}
		fmt.Fprintf(&b, "%s%s %s\n", prefix, p.style(timeStyle, fmt.Sprintf("%-10s", FormatTime(&date, now))), m.Text)
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

// Notice prints a dimmed single-line status message.
func (p *Printer) Notice(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, p.style(dimStyle, fmt.Sprintf(format, args...)))
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}
