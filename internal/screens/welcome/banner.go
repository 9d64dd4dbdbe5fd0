package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/kompaksatyabuana/kompak/internal/ui/theme"
)

const bannerArt = `
██╗  ██╗ ██████╗ ███╗   ███╗██████╗  █████╗ ██╗  ██╗
██║ ██╔╝██╔═══██╗████╗ ████║██╔══██╗██╔══██╗██║ ██╔╝
█████╔╝ ██║   ██║██╔████╔██║██████╔╝███████║█████╔╝
██╔═██╗ ██║   ██║██║╚██╔╝██║██╔═══╝ ██╔══██║██╔═██╗
██║  ██╗╚██████╔╝██║ ╚═╝ ██║██║     ██║  ██║██║  ██╗
╚═╝  ╚═╝ ╚═════╝ ╚═╝     ╚═╝╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerCompact = "K O M P A K"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 56

// RenderBanner returns the KOMPAK banner styled in the primary color.
// Uses a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

// RenderSubtitle returns "Satya Buana" under the banner.
func RenderSubtitle() string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("S A T Y A   B U A N A")
}
