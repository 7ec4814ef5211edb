package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"github.com/cwarden/calmate/internal/calendar"
)

// Notices buffers store notices until the model shows them. The store calls
// Push from inside Update, where sending to the program would block.
type Notices struct {
	mu      sync.Mutex
	pending []string
}

func (n *Notices) Push(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, msg)
}

func (n *Notices) Drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}

// eventStyle colors an event by its own hex color.
func eventStyle(e calendar.Event) lipgloss.Style {
	color := e.Color
	if color == "" {
		color = calendar.DefaultColor
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func truncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

func padRight(s string, width int) string {
	return padding.String(s, uint(width))
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
