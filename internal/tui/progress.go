package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/pokerodds/equity"
)

// ProgressMsg reports completed trials
type ProgressMsg struct {
	Done  int
	Total int
}

// ResultMsg ends a simulation
type ResultMsg struct {
	Result *equity.Result
	Err    error
}

// ProgressModel shows a progress bar while a simulation runs
type ProgressModel struct {
	bar      progress.Model
	done     int
	total    int
	result   *equity.Result
	err      error
	quitting bool
	cancel   context.CancelFunc
}

// NewProgressModel creates a progress model. cancel is called when the
// user interrupts.
func NewProgressModel(total int, cancel context.CancelFunc) *ProgressModel {
	return &ProgressModel{
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(50)),
		total:  total,
		cancel: cancel,
	}
}

// Init initializes the progress model
func (m *ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles progress, results and interrupts
func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			if m.cancel != nil {
				m.cancel()
			}
		}

	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-20, 10), 80)

	case ProgressMsg:
		if msg.Done > m.done {
			m.done, m.total = msg.Done, msg.Total
		}

	case ResultMsg:
		m.result, m.err = msg.Result, msg.Err
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *ProgressModel) fraction() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

// View renders the bar and trial count
func (m *ProgressModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.bar.ViewAs(m.fraction()))
	fmt.Fprintf(&b, "  %d/%d trials\n", m.done, m.total)
	b.WriteString(InfoStyle.Render("q to stop early"))
	b.WriteString("\n")
	return b.String()
}

// Result returns the finished simulation
func (m *ProgressModel) Result() (*equity.Result, error) {
	return m.result, m.err
}

// RunWithProgress runs a simulation behind a progress bar. Interrupting
// the bar cancels the simulation, which still returns partial results.
func RunWithProgress(ctx context.Context, cfg equity.Config, in io.Reader, out io.Writer) (*equity.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewProgressModel(cfg.Trials, cancel)
	p := tea.NewProgram(model, tea.WithInput(in), tea.WithOutput(out))

	onProgress := cfg.OnProgress
	cfg.OnProgress = func(done, total int) {
		if onProgress != nil {
			onProgress(done, total)
		}
		p.Send(ProgressMsg{Done: done, Total: total})
	}

	go func() {
		res, err := equity.Run(ctx, cfg)
		p.Send(ResultMsg{Result: res, Err: err})
	}()

	if _, err := p.Run(); err != nil && model.result == nil {
		return nil, fmt.Errorf("progress display: %w", err)
	}
	return model.Result()
}
