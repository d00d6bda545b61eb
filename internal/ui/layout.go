package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/daily-planner/internal/theme"
)

// Layout manages the terminal frame dimensions: a one-line header, the
// content area and a one-line status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader renders the top bar with a title on the left and a summary
// (selected date, remaining minutes) on the right.
func (l Layout) RenderHeader(title, summary string) string {
	titleRendered := theme.HeaderStyle.Render(title)
	summaryRendered := theme.HeaderStyle.Align(lipgloss.Right).Render(summary)

	return joinFilled(
		theme.HeaderStyle,
		l.Width,
		titleRendered,
		summaryRendered,
	)
}

// RenderStatusBar renders the bottom bar. A non-empty status message takes
// precedence over the key hints and is shown in the error style when
// isError is set.
func (l Layout) RenderStatusBar(hints, status string, isError bool) string {
	style := theme.StatusBarStyle
	text := hints
	if status != "" {
		text = status
		if isError {
			style = theme.StatusErrorStyle
		}
	}

	return joinFilled(style, l.Width, style.Render(text), "")
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

// joinFilled lays left and right out on one line, padding the gap between
// them with the style's background.
func joinFilled(style lipgloss.Style, width int, left, right string) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}
