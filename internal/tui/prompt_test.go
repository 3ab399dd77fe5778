package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/pokerodds/equity"
	"github.com/lox/pokerodds/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeAnswer(m *PromptModel, answer string) tea.Cmd {
	for _, r := range answer {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func newPrompt() *PromptModel {
	return NewPromptModel(equity.Config{Players: 2, Trials: 10000})
}

func TestPromptCollectsConfig(t *testing.T) {
	m := newPrompt()

	assert.False(t, isQuit(typeAnswer(m, "3")))
	assert.False(t, isQuit(typeAnswer(m, "AcAd KhQh")))
	assert.False(t, isQuit(typeAnswer(m, "Td 7s 8h")))
	assert.True(t, isQuit(typeAnswer(m, "50_000")))

	cfg, err := m.Config()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Players)
	assert.Equal(t, 50000, cfg.Trials)
	require.Len(t, cfg.Hands, 2)
	assert.Equal(t, poker.MustParseCards("AcAd"), cfg.Hands[0][:])
	assert.Equal(t, poker.MustParseCards("Td7s8h"), cfg.Board)
	assert.Equal(t, []string{"3", "AcAd KhQh", "Td 7s 8h", "50_000"}, m.Answers())
}

func TestPromptDefaults(t *testing.T) {
	m := newPrompt()
	for range 3 {
		typeAnswer(m, "")
	}
	assert.True(t, isQuit(typeAnswer(m, "")))

	cfg, err := m.Config()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Players)
	assert.Empty(t, cfg.Hands)
	assert.Empty(t, cfg.Board)
	assert.Equal(t, 10000, cfg.Trials)
}

func TestPromptRejectsInvalidAnswers(t *testing.T) {
	tests := []struct {
		name    string
		before  []string
		answer  string
		errText string
	}{
		{"non numeric players", nil, "many", "not a number"},
		{"too many players", nil, "30", "out of range"},
		{"bad card", []string{"2"}, "AcXd", "invalid card"},
		{"three card hand", []string{"2"}, "AcAdAh", "exactly 2 cards"},
		{"more hands than players", []string{"2"}, "AcAd KcKd QcQd", "more fixed hands than players"},
		{"board repeats a hand card", []string{"2", "AcAd"}, "Ac2c3c", "more than once"},
		{"six board cards", []string{"2", ""}, "2c3c4c5c6c7c", "more than 5 board cards"},
		{"zero trials", []string{"2", "", ""}, "0", "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newPrompt()
			for _, a := range tt.before {
				typeAnswer(m, a)
			}
			stepBefore := m.step

			assert.False(t, isQuit(typeAnswer(m, tt.answer)))
			assert.Equal(t, stepBefore, m.step, "invalid answer must repeat the step")
			assert.Contains(t, m.errMsg, tt.errText)
			assert.Contains(t, m.View(), tt.errText)

			_, err := m.Config()
			assert.ErrorIs(t, err, ErrAborted)
		})
	}
}

func TestPromptAbort(t *testing.T) {
	m := newPrompt()
	typeAnswer(m, "4")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View())

	_, err := m.Config()
	assert.ErrorIs(t, err, ErrAborted)
}

func TestPromptViewShowsAnswers(t *testing.T) {
	m := newPrompt()
	typeAnswer(m, "2")
	typeAnswer(m, "AhKh")

	view := m.View()
	assert.Contains(t, view, "Players:")
	assert.Contains(t, view, "Player 1:")
	assert.Contains(t, view, "Kh")
	assert.Contains(t, view, "Board cards")
}
