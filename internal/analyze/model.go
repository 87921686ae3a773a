package analyze

import (
	"context"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakshaymaurya-felt/dirclean/internal/scan"
)

// searchTickMsg is sent after a debounce delay to trigger the actual search.
type searchTickMsg struct {
	query string
}

// searchDebounce is the delay before the filter is recomputed after a
// keystroke.
const searchDebounce = 150 * time.Millisecond

// largeThreshold is the size cut used by the large-only toggle.
const largeThreshold = 100 << 20

// ─── Model ───────────────────────────────────────────────────────────────────

// PickerModel is the bubbletea Model for choosing which candidates to
// delete. Every candidate starts selected.
type PickerModel struct {
	items     []scan.Candidate
	selected  []bool
	visible   []int // indices into items after filtering
	cursor    int   // index into visible
	offset    int   // viewport scroll offset
	width     int
	height    int
	largeOnly bool
	confirmed bool
	quitting  bool

	// Search state
	searching   bool
	searchQuery string
	applied     string // query the visible list was built from
}

// NewPickerModel creates a picker over cands.
func NewPickerModel(cands []scan.Candidate) PickerModel {
	m := PickerModel{
		items:    cands,
		selected: make([]bool, len(cands)),
		width:    80,
		height:   24,
	}
	for i := range m.selected {
		m.selected[i] = true
	}
	m.refilter()
	return m
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			m.confirmed = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.ensureVisible()
			}

		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
				m.ensureVisible()
			}

		case " ", "x":
			if m.cursor < len(m.visible) {
				i := m.visible[m.cursor]
				m.selected[i] = !m.selected[i]
			}

		case "a":
			for _, i := range m.visible {
				m.selected[i] = true
			}

		case "n":
			for _, i := range m.visible {
				m.selected[i] = false
			}

		case "L":
			m.largeOnly = !m.largeOnly
			m.refilter()

		case "/":
			m.searching = true
			return m, nil
		}
		return m, nil

	case searchTickMsg:
		// Only filter if the query hasn't changed since the tick was scheduled.
		if msg.query == m.searchQuery && msg.query != m.applied {
			m.refilter()
		}
		return m, nil
	}

	return m, nil
}

func (m PickerModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.searching = false
		m.searchQuery = ""
		m.refilter()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.refilter()
		return m, nil
	case tea.KeyBackspace:
		if len(m.searchQuery) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.searchQuery)
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-size]
			return m, m.scheduleSearch()
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		m.searchQuery += string(msg.Runes)
		return m, m.scheduleSearch()
	}
	return m, nil
}

func (m PickerModel) scheduleSearch() tea.Cmd {
	q := m.searchQuery
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchTickMsg{query: q}
	})
}

// View delegates to view.go renderView.
func (m PickerModel) View() string {
	return m.renderView()
}

// ─── Results ─────────────────────────────────────────────────────────────────

// Confirmed reports whether the user accepted the selection.
func (m PickerModel) Confirmed() bool {
	return m.confirmed
}

// Selected returns the chosen candidates in their original order. Hidden
// candidates keep their selection state.
func (m PickerModel) Selected() []scan.Candidate {
	var out []scan.Candidate
	for i, c := range m.items {
		if m.selected[i] {
			out = append(out, c)
		}
	}
	return out
}

// selectedSize sums the known sizes of selected candidates.
func (m PickerModel) selectedSize() (int64, int) {
	var total int64
	n := 0
	for i, c := range m.items {
		if !m.selected[i] {
			continue
		}
		n++
		if c.Size > 0 {
			total += c.Size
		}
	}
	return total, n
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (m *PickerModel) refilter() {
	q := strings.ToLower(m.searchQuery)
	m.visible = nil
	for i, c := range m.items {
		if m.largeOnly && c.Size < largeThreshold {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.Path), q) {
			continue
		}
		m.visible = append(m.visible, i)
	}
	m.applied = m.searchQuery
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
	m.offset = 0
	m.ensureVisible()
}

func (m *PickerModel) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m *PickerModel) viewportHeight() int {
	h := m.height - 8 // header (4) + footer (3) + padding
	if h < 1 {
		h = 1
	}
	return h
}

// ─── Runner ──────────────────────────────────────────────────────────────────

// Pick shows the picker on the given terminal streams and returns the
// chosen candidates. A cancelled picker returns nil.
func Pick(ctx context.Context, in io.Reader, out io.Writer, cands []scan.Candidate) ([]scan.Candidate, error) {
	prog := tea.NewProgram(NewPickerModel(cands),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	final, err := prog.Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(PickerModel)
	if !ok || !m.Confirmed() {
		return nil, nil
	}
	return m.Selected(), nil
}
