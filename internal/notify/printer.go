package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes human-readable status lines. Colors are only emitted when
// the writer is a terminal.
type Printer struct {
	mu  sync.Mutex
	out io.Writer

	started lipgloss.Style
	cleared lipgloss.Style
	played  lipgloss.Style
	failed  lipgloss.Style
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		started: r.NewStyle().Foreground(lipgloss.Color("4")),
		cleared: r.NewStyle().Foreground(lipgloss.Color("3")),
		played:  r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failed:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Line returns the status line for ev without styling.
func Line(ev Event) string {
	switch ev.Kind {
	case TimerStarted:
		return fmt.Sprintf("Timer (re)started, will play %s in %dms...", ev.File, ev.Delay.Milliseconds())
	case TimerCleared:
		return "Timer cleared!"
	case Played:
		return fmt.Sprintf("Played %s!", ev.File)
	case PlaybackFailed:
		return fmt.Sprintf("Playback of %s failed: %v", ev.File, ev.Err)
	default:
		return ""
	}
}

func (p *Printer) Notify(ev Event) {
	line := Line(ev)
	if line == "" {
		return
	}

	var style lipgloss.Style
	switch ev.Kind {
	case TimerStarted:
		style = p.started
	case TimerCleared:
		style = p.cleared
	case Played:
		style = p.played
	case PlaybackFailed:
		style = p.failed
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out, style.Render(line))
}
