package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ─── Line prompt ─────────────────────────────────────────────────────────────

// LinePrompt asks yes/no questions one line at a time. It works with any
// reader, which makes it the fallback when stdin is not a terminal.
type LinePrompt struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompt reads answers from in and writes questions to out.
func NewLinePrompt(in io.Reader, out io.Writer) *LinePrompt {
	return &LinePrompt{in: bufio.NewReader(in), out: out}
}

// Ask prints question and reads one answer. Only "y" and "yes" accept.
func (p *LinePrompt) Ask(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ─── Terminal prompt ─────────────────────────────────────────────────────────

type confirmKeys struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
	Submit key.Binding
	Abort  key.Binding
}

func (k confirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Yes, k.No, k.Toggle, k.Submit, k.Abort}
}

func (k confirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultConfirmKeys = confirmKeys{
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:     key.NewBinding(key.WithKeys("n", "N", "esc", "q"), key.WithHelp("n", "no")),
	Toggle: key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab"), key.WithHelp("←/→", "toggle")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
	Abort:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "stop")),
}

// confirmModel is a one-question yes/no bubbletea model. The default
// answer is No. Ctrl+C aborts the whole run, since the terminal is in raw
// mode and no SIGINT is delivered while the prompt is up.
type confirmModel struct {
	question string
	yes      bool
	done     bool
	answer   bool
	aborted  bool
	keys     confirmKeys
	help     help.Model
}

func newConfirmModel(question string) confirmModel {
	return confirmModel{question: question, keys: defaultConfirmKeys, help: help.New()}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Abort):
		m.done, m.aborted = true, true
		return m, tea.Quit
	case key.Matches(km, m.keys.Yes):
		m.done, m.answer = true, true
		return m, tea.Quit
	case key.Matches(km, m.keys.No):
		m.done, m.answer = true, false
		return m, tea.Quit
	case key.Matches(km, m.keys.Toggle):
		m.yes = !m.yes
	case key.Matches(km, m.keys.Submit):
		m.done, m.answer = true, m.yes
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	active := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Underline(true)
	idle := lipgloss.NewStyle().Foreground(ColorMuted)

	yes, no := idle.Render(" Yes "), active.Render(" No ")
	if m.yes {
		yes, no = active.Render(" Yes "), idle.Render(" No ")
	}

	return fmt.Sprintf("  %s %s\n\n    %s  %s\n\n  %s\n",
		lipgloss.NewStyle().Foreground(ColorWarning).Render(IconWarning),
		m.question, yes, no,
		m.help.View(m.keys))
}

// TerminalPrompt asks each question with a small inline bubbletea program.
type TerminalPrompt struct {
	mu  sync.Mutex
	in  io.Reader
	out io.Writer
}

// NewTerminalPrompt creates a prompt bound to the given terminal streams.
func NewTerminalPrompt(in io.Reader, out io.Writer) *TerminalPrompt {
	return &TerminalPrompt{in: in, out: out}
}

// Ask blocks until the user answers or ctx is cancelled. Ctrl+C returns
// context.Canceled.
func (p *TerminalPrompt) Ask(ctx context.Context, question string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prog := tea.NewProgram(newConfirmModel(question),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithContext(ctx),
	)
	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, err
	}
	return result(final)
}

func result(final tea.Model) (bool, error) {
	m, ok := final.(confirmModel)
	if !ok {
		return false, nil
	}
	if m.aborted {
		return false, context.Canceled
	}
	return m.answer, nil
}

// Asker is implemented by both prompts.
type Asker interface {
	Ask(ctx context.Context, question string) (bool, error)
}

// NewAsker picks the terminal prompt when in and out are terminals and the
// line prompt otherwise.
func NewAsker(in io.Reader, out io.Writer, terminal bool) Asker {
	if terminal {
		return NewTerminalPrompt(in, out)
	}
	return NewLinePrompt(in, out)
}
