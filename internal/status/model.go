package status

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/dirclean/internal/ui"
)

// ─── Messages ────────────────────────────────────────────────────────────────

type tickMsg time.Time

type snapshotMsg struct {
	snap Snapshot
	err  error
}

// ─── Model ───────────────────────────────────────────────────────────────────

// WatchModel refreshes the volume card until the user quits.
type WatchModel struct {
	path            string
	take            func(string) (Snapshot, error)
	refreshInterval time.Duration

	Snap     *Snapshot
	First    *Snapshot
	Width    int
	Err      error
	quitting bool
}

// NewWatchModel watches the volume holding path.
func NewWatchModel(path string, refreshInterval time.Duration) WatchModel {
	if refreshInterval <= 0 {
		refreshInterval = time.Second
	}
	return WatchModel{
		path:            path,
		take:            Take,
		refreshInterval: refreshInterval,
		Width:           80,
	}
}

func (m WatchModel) doTick() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m WatchModel) collect() tea.Cmd {
	path, take := m.path, m.take
	return func() tea.Msg {
		s, err := take(path)
		return snapshotMsg{snap: s, err: err}
	}
}

// ─── tea.Model interface ─────────────────────────────────────────────────────

func (m WatchModel) Init() tea.Cmd {
	return m.collect()
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		return m, m.collect()

	case snapshotMsg:
		if msg.err != nil {
			m.Err = msg.err
			return m, m.doTick()
		}
		m.Err = nil
		snap := msg.snap
		m.Snap = &snap
		if m.First == nil {
			m.First = &snap
		}
		return m, m.doTick()
	}

	return m, nil
}

func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}
	if m.Snap == nil {
		return lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render("  Reading volume…") + "\n"
	}

	out := Render(*m.Snap, m.Width) + "\n\n" + RenderDelta(*m.First, *m.Snap) + "\n"
	if m.Err != nil {
		out += lipgloss.NewStyle().
			Foreground(ui.ColorError).
			Render("  "+ui.IconError+" "+m.Err.Error()) + "\n"
	}
	return out + ui.HintBarStyle().Render("  q quit") + "\n"
}
