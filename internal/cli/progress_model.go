package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aadhamashraf/intentgen/internal/cli/formatter"
	"github.com/aadhamashraf/intentgen/internal/service"
)

const maxBarWidth = 60

type progressMsg struct {
	done, total int
}

type generateDoneMsg struct {
	result *service.GenerateResult
	err    error
}

// progressModel shows batch progress until generateDoneMsg arrives or the
// user presses ctrl+c.
type progressModel struct {
	bar         progress.Model
	done, total int

	result    *service.GenerateResult
	err       error
	finished  bool
	cancelled bool
}

func newProgressModel() progressModel {
	return progressModel{
		bar: progress.New(
			progress.WithGradient(string(formatter.ColorHeader), string(formatter.ColorGreen)),
			progress.WithWidth(40),
		),
	}
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-20, 10), maxBarWidth)
	case progressMsg:
		m.done, m.total = msg.done, msg.total
	case generateDoneMsg:
		m.result, m.err, m.finished = msg.result, msg.err, true
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m progressModel) View() string {
	switch {
	case m.cancelled:
		return formatter.Dim("cancelled") + "\n"
	case m.finished:
		return ""
	}
	return fmt.Sprintf("  %s %s %s\n",
		formatter.Bold("Generating"),
		m.bar.ViewAs(m.percent()),
		formatter.Dim(fmt.Sprintf("%d/%d", m.done, m.total)),
	)
}
