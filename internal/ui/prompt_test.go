package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinePromptAnswers(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompt(strings.NewReader("y\nno\nYES\n\nmaybe\n"), &out)

	want := []bool{true, false, true, false, false}
	for i, w := range want {
		got, err := p.Ask(context.Background(), "Delete?")
		require.NoError(t, err, "answer %d", i)
		assert.Equal(t, w, got, "answer %d", i)
	}
	assert.Equal(t, 5, strings.Count(out.String(), "Delete? [y/N]: "))
}

func TestLinePromptEOF(t *testing.T) {
	p := NewLinePrompt(strings.NewReader("y"), &bytes.Buffer{})

	got, err := p.Ask(context.Background(), "q")
	require.NoError(t, err)
	assert.True(t, got)

	_, err = p.Ask(context.Background(), "q")
	assert.Error(t, err)
}

func TestLinePromptCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLinePrompt(strings.NewReader("y\n"), &bytes.Buffer{}).Ask(ctx, "q")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfirmModelKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want bool
	}{
		{name: "y", keys: []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("y")}}, want: true},
		{name: "n", keys: []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("n")}}, want: false},
		{name: "enter defaults to no", keys: []tea.KeyMsg{{Type: tea.KeyEnter}}, want: false},
		{name: "toggle then enter", keys: []tea.KeyMsg{{Type: tea.KeyRight}, {Type: tea.KeyEnter}}, want: true},
		{name: "esc", keys: []tea.KeyMsg{{Type: tea.KeyEsc}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = newConfirmModel("Delete /x?")
			for _, k := range tt.keys {
				m, _ = m.Update(k)
			}
			cm := m.(confirmModel)
			assert.True(t, cm.done)
			assert.Equal(t, tt.want, cm.answer)
		})
	}
}

func TestConfirmModelCtrlCAbortsRun(t *testing.T) {
	var m tea.Model = newConfirmModel("Delete /x?")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)

	cm := m.(confirmModel)
	assert.True(t, cm.done)
	assert.True(t, cm.aborted)

	yes, err := result(cm)
	assert.False(t, yes)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfirmModelResult(t *testing.T) {
	var m tea.Model = newConfirmModel("Delete /x?")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	yes, err := result(m)
	require.NoError(t, err)
	assert.True(t, yes)
}

func TestConfirmModelView(t *testing.T) {
	m := newConfirmModel("Delete /x (1.00 KB)?")
	v := m.View()
	assert.Contains(t, v, "Delete /x (1.00 KB)?")
	assert.Contains(t, v, "Yes")
	assert.Contains(t, v, "No")
}

func TestGradientBarWidth(t *testing.T) {
	assert.Empty(t, GradientBar(50, 0))
	for _, pct := range []float64{-5, 0, 33, 100, 250} {
		bar := GradientBar(pct, 10)
		assert.Equal(t, 10, strings.Count(bar, "█")+strings.Count(bar, "░"), "pct %v", pct)
	}
}
