package analyze

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
	"github.com/lakshaymaurya-felt/dirclean/internal/ui"
)

// ─── Color tokens ────────────────────────────────────────────────────────────

var (
	clrDim    = ui.ColorMuted
	clrDir    = ui.ColorCoral
	clrOff    = ui.ColorMuted
	clrLarge  = ui.ColorWarning
	clrCursor = ui.ColorPrimary
)

// ─── Top-level view ──────────────────────────────────────────────────────────

func (m PickerModel) renderView() string {
	if m.quitting || m.confirmed {
		return ""
	}
	w := m.width
	if w < 40 {
		w = 40
	}

	var s strings.Builder
	s.WriteString(m.renderHeader(w))
	s.WriteString("\n")
	if m.searching {
		s.WriteString(m.renderSearchInput())
		s.WriteString("\n")
	}
	s.WriteString(m.renderBody(w))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

// ─── Header ──────────────────────────────────────────────────────────────────

func (m PickerModel) renderHeader(w int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorCoral).
		Render("  " + ui.IconDiamond + " Select directories to delete")

	size, n := m.selectedSize()
	summary := lipgloss.NewStyle().
		Foreground(ui.ColorTextDim).
		Render(fmt.Sprintf("  %d of %d selected    %s", n, len(m.items), core.FormatSize(size)))

	inner := lipgloss.JoinVertical(lipgloss.Left, title, summary)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorCoral).
		Width(w - 2).
		Render(inner)
}

// ─── Body ────────────────────────────────────────────────────────────────────

func (m PickerModel) renderBody(w int) string {
	if len(m.visible) == 0 {
		return lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render("  (no matching candidates)")
	}

	barWidth := 20
	if w > 110 {
		barWidth = 30
	}

	var largest int64
	for _, i := range m.visible {
		if s := m.items[i].Size; s > largest {
			largest = s
		}
	}

	vh := m.viewportHeight()
	var lines []string
	for row := m.offset; row < len(m.visible) && row < m.offset+vh; row++ {
		lines = append(lines, m.renderRow(row, largest, barWidth, w))
	}

	if len(m.visible) > vh {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render(fmt.Sprintf("  ── %d/%d items ──", min(m.offset+vh, len(m.visible)), len(m.visible))))
	}
	return strings.Join(lines, "\n")
}

func (m PickerModel) renderRow(row int, largest int64, barWidth, w int) string {
	i := m.visible[row]
	c := m.items[i]

	check := ui.IconUncheck
	nameColor := clrOff
	if m.selected[i] {
		check = ui.IconCheck
		nameColor = clrDir
	}
	if c.Size >= largeThreshold && m.selected[i] {
		nameColor = clrLarge
	}

	var pct float64
	if largest > 0 && c.Size > 0 {
		pct = float64(c.Size) / float64(largest) * 100
	}

	sizeStr := "       ?"
	if c.Size >= 0 {
		sizeStr = fmt.Sprintf("%10s", core.FormatSize(c.Size))
	}

	// Truncate long paths from the left, rune-safe.
	path := c.Path
	maxPath := w - barWidth - 30
	if maxPath < 20 {
		maxPath = 20
	}
	if n := utf8.RuneCountInString(path); n > maxPath {
		runes := []rune(path)
		path = "…" + string(runes[n-maxPath+1:])
	}

	numStr := lipgloss.NewStyle().Foreground(clrDim).Render(fmt.Sprintf("%3d.", row+1))
	line := fmt.Sprintf("  %s %s %s %s  %s",
		numStr, check, ui.GradientBar(pct, barWidth), sizeStr,
		lipgloss.NewStyle().Foreground(nameColor).Render(path))

	if row == m.cursor {
		cursor := lipgloss.NewStyle().Foreground(clrCursor).Bold(true).Render(ui.IconBlock)
		line = " " + cursor + line[2:]
	}
	return line
}

// ─── Search UI ───────────────────────────────────────────────────────────────

func (m PickerModel) renderSearchInput() string {
	prompt := lipgloss.NewStyle().
		Foreground(ui.ColorCoral).
		Bold(true).
		Render("  / ")
	query := lipgloss.NewStyle().
		Foreground(ui.ColorText).
		Render(m.searchQuery)
	cursor := lipgloss.NewStyle().
		Foreground(ui.ColorCoral).
		Render("▎")
	return prompt + query + cursor
}

// ─── Footer ──────────────────────────────────────────────────────────────────

func (m PickerModel) renderFooter() string {
	var parts []string

	if m.largeOnly {
		parts = append(parts, "  "+ui.TagWarningStyle().Render(" >100 MiB filter "))
	}
	if m.applied != "" && !m.searching {
		parts = append(parts, "  "+ui.TagWarningStyle().Render(" filter: "+m.applied+" "))
	}

	hints := []string{"↑↓ nav", "space toggle", "a all", "n none", "/ search", "L large", "Enter delete", "q cancel"}
	if m.searching {
		hints = []string{"type to filter", "Enter keep", "Esc clear"}
	}
	parts = append(parts, ui.HintBarStyle().Render("  "+strings.Join(hints, " "+ui.IconPipe+" ")))
	return strings.Join(parts, "\n")
}
