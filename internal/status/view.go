package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
	"github.com/lakshaymaurya-felt/dirclean/internal/ui"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	clrGreen  = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	clrYellow = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	clrOrange = lipgloss.AdaptiveColor{Light: "#ea580c", Dark: "#fb923c"}
	clrRed    = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// ─── Renderers ───────────────────────────────────────────────────────────────

// Render draws a usage card for s.
func Render(s Snapshot, width int) string {
	barW := 36
	if width > 110 {
		barW = 48
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Render("  " + ui.IconDiamond + " Volume")

	lines := []string{
		title,
		fmt.Sprintf("  Path     %s", s.Path),
		fmt.Sprintf("  Mount    %s (%s)", s.Mount, s.FSType),
		"",
		fmt.Sprintf("  %s  %5.1f%%  %s / %s",
			colorBar(s.UsedPercent, barW), s.UsedPercent,
			core.FormatSize(int64(s.Used)),
			core.FormatSize(int64(s.Total))),
		fmt.Sprintf("  Free     %s", core.FormatSize(int64(s.Free))),
	}
	return strings.Join(lines, "\n")
}

// RenderDelta summarizes free space before and after a run.
func RenderDelta(before, after Snapshot) string {
	gained := Gained(before, after)
	style := lipgloss.NewStyle().Foreground(clrGreen)
	sign := "+"
	if gained < 0 {
		style = lipgloss.NewStyle().Foreground(clrOrange)
		sign = "-"
		gained = -gained
	}
	return fmt.Sprintf("  Free space: %s %s %s (%s)",
		core.FormatSize(int64(before.Free)),
		ui.IconChevron,
		core.FormatSize(int64(after.Free)),
		style.Render(sign+core.FormatSize(gained)))
}

// ─── Drawing primitives ─────────────────────────────────────────────────────

// colorBar renders a ████░░░░ bar colored by severity.
func colorBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}

	barColor := clrGreen
	switch {
	case pct >= 90:
		barColor = clrRed
	case pct >= 75:
		barColor = clrOrange
	case pct >= 50:
		barColor = clrYellow
	}

	fStr := lipgloss.NewStyle().Foreground(barColor).Render(strings.Repeat("█", filled))
	eStr := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(strings.Repeat("░", width-filled))
	return fStr + eStr
}
