package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/flightify/flightify/internal/session"
	"github.com/flightify/flightify/internal/ui/components"
	"github.com/flightify/flightify/internal/ui/layout"
	"github.com/flightify/flightify/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	snap := s.deps.Engine.Snapshot()

	var body string
	switch {
	case s.confirmQuit:
		body = renderConfirm("Abandon this attempt?", "Nothing will be recorded.")
	case s.confirmDone:
		n := len(snap.RemainingItems)
		body = renderConfirm("Finish now?", fmt.Sprintf("%d item%s still in the tray.", n, plural(n)))
	case snap.Phase == session.PhaseReady:
		body = renderBriefing(snap, width)
	default:
		body = s.renderBoard(snap, width, height)
	}

	if s.errMsg != "" {
		body += "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Incorrect.Render(s.errMsg))
	}
	return body
}

func renderBriefing(snap session.Snapshot, width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Title.Render(snap.ConfigurationLabel)))
	b.WriteString("\n\n")

	lines := []string{
		fmt.Sprintf("%d zones to fill, %d items to place.", len(snap.Zones), len(snap.RemainingItems)),
		"",
	}
	for _, z := range gridOrder(snap.Zones) {
		lines = append(lines, "•  "+z.Label)
	}
	lines = append(lines, "", "Items are shuffled when you start.")

	card := components.Card(strings.Join(lines, "\n"), components.ContentWidth(width))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("press Enter to start")))
	return b.String()
}

// renderBoard draws progress, zones and tray. Short terminals lose the
// progress bar.
func (s *QuizScreen) renderBoard(snap session.Snapshot, width, height int) string {
	zones := gridOrder(snap.Zones)

	placed := 0
	for _, z := range zones {
		placed += len(z.Placed)
	}
	total := placed + len(snap.RemainingItems)

	var b strings.Builder
	b.WriteString("\n")
	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		bar := components.NewProgressBar("Placed", placed, total, min(width-8, 60))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n\n")
	}
	b.WriteString(renderGrid(zones, s.zone, width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderTray(snap.RemainingItems, s.item)))
	return b.String()
}

// renderGrid lays zones out in rows: zones sharing a Y anchor sit side by side.
func renderGrid(zones []session.ZoneView, active, width int) string {
	cardWidth := max(min(width/3-2, 28), 16)

	var rows []string
	var row []string
	for i, z := range zones {
		if i > 0 && z.Y != zones[i-1].Y {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
		row = append(row, renderZone(z, i == active, cardWidth))
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Center, rows...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, grid)
}

func renderZone(z session.ZoneView, active bool, width int) string {
	style := theme.ZoneCard
	title := theme.Body.Bold(true).Render(z.Label)
	if active {
		style = theme.ZoneCardActive
		title = theme.Selected.Render("▸ " + z.Label)
	}

	lines := []string{title}
	if len(z.Placed) == 0 {
		lines = append(lines, theme.Hint.Render("empty"))
	}
	for _, token := range z.Placed {
		lines = append(lines, "· "+token)
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func renderTray(items []string, active int) string {
	if len(items) == 0 {
		return theme.Hint.Render("Tray empty. Press F to finish.")
	}
	tokens := make([]string, len(items))
	for i, item := range items {
		if i == active {
			tokens[i] = theme.TokenActive.Render(item)
		} else {
			tokens[i] = theme.Token.Render(item)
		}
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render("Tray  ") + strings.Join(tokens, " ")
}

func renderConfirm(question, detail string) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render(question),
		"",
		theme.Subtitle.Render(detail),
		"",
		theme.Hint.Render("Y / N"),
	)
	return "\n\n" + lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 4).
		Render(content)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
