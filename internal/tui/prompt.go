package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/pokerodds/equity"
	"github.com/lox/pokerodds/poker"
)

// ErrAborted is returned when the user leaves the prompt early
var ErrAborted = errors.New("prompt aborted")

type step int

const (
	stepPlayers step = iota
	stepHands
	stepBoard
	stepTrials
	stepDone
)

// PromptModel asks for the table setup one question at a time. Each
// answer is checked before moving on; an invalid answer repeats the step.
type PromptModel struct {
	input    textinput.Model
	step     step
	cfg      equity.Config
	errMsg   string
	aborted  bool
	defaults equity.Config
	answers  []string
}

// NewPromptModel creates a prompt seeded with default players and trials
func NewPromptModel(defaults equity.Config) *PromptModel {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60
	ti.PromptStyle = PromptStyle
	ti.Prompt = "> "

	m := &PromptModel{input: ti, defaults: defaults}
	m.cfg.Trials = 1
	m.setPlaceholder()
	return m
}

// Init initializes the prompt
func (m *PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses
func (m *PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.submit(strings.TrimSpace(m.input.Value())) {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit applies one answer, returning true once every step is done.
func (m *PromptModel) submit(answer string) bool {
	if err := m.apply(answer); err != nil {
		m.errMsg = err.Error()
		return false
	}
	m.errMsg = ""
	m.answers = append(m.answers, answer)
	m.input.SetValue("")
	m.step++
	m.setPlaceholder()
	return m.step == stepDone
}

func (m *PromptModel) apply(answer string) error {
	next := m.cfg
	switch m.step {
	case stepPlayers:
		if answer == "" {
			next.Players = m.defaults.Players
			break
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			return fmt.Errorf("not a number: %q", answer)
		}
		next.Players = n

	case stepHands:
		next.Hands = nil
		for _, field := range strings.Fields(answer) {
			cards, err := poker.ParseCards(field)
			if err != nil {
				return err
			}
			if len(cards) != 2 {
				return fmt.Errorf("hand %q must have exactly 2 cards", field)
			}
			next.Hands = append(next.Hands, [2]poker.Card{cards[0], cards[1]})
		}

	case stepBoard:
		board, err := poker.ParseCards(answer)
		if err != nil {
			return err
		}
		next.Board = board

	case stepTrials:
		if answer == "" {
			next.Trials = m.defaults.Trials
			break
		}
		n, err := strconv.Atoi(strings.ReplaceAll(answer, "_", ""))
		if err != nil {
			return fmt.Errorf("not a number: %q", answer)
		}
		next.Trials = n
	}

	if err := next.Validate(); err != nil {
		return err
	}
	m.cfg = next
	return nil
}

func (m *PromptModel) setPlaceholder() {
	switch m.step {
	case stepPlayers:
		m.input.Placeholder = fmt.Sprintf("%d", m.defaults.Players)
	case stepHands:
		m.input.Placeholder = "e.g. AcAd KhQh, blank for random"
	case stepBoard:
		m.input.Placeholder = "e.g. Td7s8h, blank for random"
	case stepTrials:
		m.input.Placeholder = fmt.Sprintf("%d", m.defaults.Trials)
	}
}

func (m *PromptModel) question() string {
	switch m.step {
	case stepPlayers:
		return fmt.Sprintf("How many players? (%d-%d)", equity.MinPlayers, equity.MaxPlayers)
	case stepHands:
		return fmt.Sprintf("Fixed hands, player 1 first (up to %d)", m.cfg.Players)
	case stepBoard:
		return "Board cards (up to 5)"
	case stepTrials:
		return "How many trials?"
	}
	return ""
}

// View renders the answered questions, the current one and any error
func (m *PromptModel) View() string {
	if m.step == stepDone || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Poker odds"))
	b.WriteString("\n\n")
	if m.step > stepPlayers {
		fmt.Fprintf(&b, "%s %d\n", LabelStyle.Render("Players:"), m.cfg.Players)
	}
	if m.step > stepHands {
		for i, h := range m.cfg.Hands {
			fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render(fmt.Sprintf("Player %d:", i+1)), FormatCards(h[:]))
		}
	}
	if m.step > stepBoard {
		fmt.Fprintf(&b, "%s %s\n", LabelStyle.Render("Board:"), FormatCards(m.cfg.Board))
	}
	b.WriteString("\n")
	b.WriteString(m.question())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render("enter to confirm, esc to quit"))
	b.WriteString("\n")
	return b.String()
}

// Config returns the collected configuration, or ErrAborted
func (m *PromptModel) Config() (equity.Config, error) {
	if m.aborted || m.step != stepDone {
		return equity.Config{}, ErrAborted
	}
	return m.cfg, nil
}

// Answers returns the accepted raw answers in order
func (m *PromptModel) Answers() []string {
	return m.answers
}
