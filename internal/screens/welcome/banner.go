package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/flightify/flightify/internal/ui/theme"
)

const bannerArt = `
 ███████╗██╗     ██╗ ██████╗ ██╗  ██╗████████╗██╗███████╗██╗   ██╗
 ██╔════╝██║     ██║██╔════╝ ██║  ██║╚══██╔══╝██║██╔════╝╚██╗ ██╔╝
 █████╗  ██║     ██║██║  ███╗███████║   ██║   ██║█████╗   ╚████╔╝
 ██╔══╝  ██║     ██║██║   ██║██╔══██║   ██║   ██║██╔══╝    ╚██╔╝
 ██║     ███████╗██║╚██████╔╝██║  ██║   ██║   ██║██║        ██║
 ╚═╝     ╚══════╝╚═╝ ╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚═╝╚═╝        ╚═╝`

const bannerCompact = "F L I G H T I F Y"

// RenderBanner returns the banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 68 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 68 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
