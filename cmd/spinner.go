package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type traceDoneMsg struct {
	failed bool
}

type batchDoneMsg struct {
	err error
}

type batchProgressModel struct {
	spinner spinner.Model
	work    tea.Cmd
	total   int
	done    int
	failed  int
	err     error
	quit    bool
}

func newBatchProgressModel(total int, work tea.Cmd) batchProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return batchProgressModel{
		spinner: s,
		work:    work,
		total:   total,
	}
}

func (m batchProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.work)
}

func (m batchProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case traceDoneMsg:
		m.done++
		if msg.failed {
			m.failed++
		}
		return m, nil
	case batchDoneMsg:
		m.quit = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m batchProgressModel) View() string {
	if m.quit {
		return ""
	}

	label := fmt.Sprintf("Processing traces %d/%d", m.done, m.total)
	if m.failed > 0 {
		label += fmt.Sprintf(" (%d failed)", m.failed)
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), label)
}

// runBatchProgress shows a spinner with a done/total counter on output while
// work runs. work reports each finished trace through its callback.
func runBatchProgress(ctx context.Context, output io.Writer, total int, work func(ctx context.Context, traceDone func(failed bool)) error) error {
	var p *tea.Program

	workCmd := func() tea.Msg {
		err := work(ctx, func(failed bool) {
			p.Send(traceDoneMsg{failed: failed})
		})
		return batchDoneMsg{err: err}
	}

	p = tea.NewProgram(
		newBatchProgressModel(total, workCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(batchProgressModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", finalModel)
	}

	return result.err
}
