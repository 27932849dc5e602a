package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/flightify/flightify/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// StatusProvider is implemented by screens that show a status string on the
// right side of the header (e.g. the configuration under test).
type StatusProvider interface {
	Status() string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight returns the available height for screen content.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Not enough room to park the plane.\n\nResize the terminal to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the application header bar. status is right-aligned,
// may be empty, and is cut with an ellipsis when it does not fit beside the
// title.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  ✈ Flightify")
	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)

	inner := max(width-4, 0) // border + padding
	leftLen, centerLen := lipgloss.Width(left), lipgloss.Width(center)

	leftGap := max((inner-centerLen)/2-leftLen, 1)

	room := inner - leftLen - leftGap - centerLen - 1
	if lipgloss.Width(status) > room {
		status = ansi.Truncate(status, max(room, 0), "…")
	}
	right := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(status)

	rightGap := max(inner-leftLen-leftGap-centerLen-lipgloss.Width(right), 1)

	return bar(width).Render(left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

// RenderFooter renders the key hints on one line. Hints that do not fit are
// dropped from the end, except the last one, which is always shown.
func RenderFooter(hints []KeyHint, width int) string {
	sep := "   "
	if IsCompactWidth(width) {
		sep = "  "
	}
	room := max(width-4, 0) - 2 // border + padding, leading indent

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, renderHint(h))
	}
	parts = fitParts(parts, sep, room)

	return bar(width).Render("  " + strings.Join(parts, sep))
}

func renderHint(h KeyHint) string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
		" " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
}

// fitParts keeps a prefix of parts plus the final part within room columns.
func fitParts(parts []string, sep string, room int) []string {
	if len(parts) == 0 {
		return parts
	}
	last := parts[len(parts)-1]
	used := lipgloss.Width(last)

	var kept []string
	for _, p := range parts[:len(parts)-1] {
		w := lipgloss.Width(p) + lipgloss.Width(sep)
		if used+w > room {
			break
		}
		kept = append(kept, p)
		used += w
	}
	return append(kept, last)
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderFrame composes the full frame: header + content + footer.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	styledContent := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		Render(content)

	return header + "\n" + styledContent + "\n" + footer
}
