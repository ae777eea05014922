package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/safetyedu/safety-edu/internal/workflow"
	"golang.org/x/sync/errgroup"
)

type model struct {
	title      string
	cancel     context.CancelFunc
	spinner    spinner.Model
	bar        progress.Model
	status     string
	done       int
	total      int
	finished   bool
	cancelling bool
	err        error
}

func newModel(title string, cancel context.CancelFunc) model {
	return model{
		title:   title,
		cancel:  cancel,
		spinner: newSpinner(),
		bar:     newBar(),
		status:  "Connecting...",
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.Println(headerStyle.Render(" "+m.title+" ")))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// only ctrl+c cancels, matching SIGINT in plain mode
		if msg.String() == "ctrl+c" {
			// keep rendering until the workflow acknowledges the cancellation
			if !m.cancelling {
				m.cancelling = true
				m.status = "Cancelling..."
				if m.cancel != nil {
					m.cancel()
				}
			}
		}
		return m, nil

	case doneMsg:
		m.finished = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case workflow.Event:
		m.track(msg)
		lines := describe(msg)
		if len(lines) == 0 {
			return m, nil
		}
		rendered := make([]string, len(lines))
		for i, l := range lines {
			rendered[i] = l.Render()
		}
		return m, tea.Println(strings.Join(rendered, "\n"))
	}

	return m, nil
}

// track advances the progress counters for an event
func (m *model) track(e workflow.Event) {
	if m.cancelling {
		return
	}
	switch e := e.(type) {
	case workflow.StudyStarted:
		m.done, m.total = 0, e.Cells
		m.status = "Reporting study time"
	case workflow.CellReported:
		m.done, m.total = e.Index, e.Total
	case workflow.StudyFinished:
		m.status = "Done"
	case workflow.ExamStarted:
		m.done, m.total = 0, len(e.Paper.Questions)
		m.status = "Answering " + e.Paper.PaperName
	case workflow.QuestionAnswered:
		m.done, m.total = e.Index, e.Total
	case workflow.QuestionSkipped:
		m.done, m.total = e.Index, e.Total
	case workflow.ExamSubmitted:
		m.status = "Waiting for grading"
	case workflow.ExamFinished:
		m.status = "Done"
	}
}

func (m model) View() string {
	if m.finished {
		return ""
	}

	var s strings.Builder
	fmt.Fprintf(&s, "%s %s\n", m.spinner.View(), logStyle.Render(m.status))
	if m.total > 0 {
		s.WriteString(renderProgress(m.bar, m.done, m.total) + "\n")
	}
	s.WriteString(mutedStyle.Render("[ctrl+c to cancel]") + "\n")
	return s.String()
}

// Run executes fn while a live progress view renders the events it emits.
// The workflow runs in its own goroutine and its events reach the view
// through Program.Send. Run returns the workflow's error.
func Run(ctx context.Context, out io.Writer, title string, fn func(context.Context, workflow.EventSink) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newModel(title, cancel), tea.WithOutput(out))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := fn(gctx, workflow.EventFunc(func(e workflow.Event) {
			p.Send(e)
		}))
		p.Send(doneMsg{err: err})
		return err
	})
	g.Go(func() error {
		_, err := p.Run()
		// a view closed early must not leave the workflow running
		cancel()
		if err != nil {
			return fmt.Errorf("failed to run progress view: %w", err)
		}
		return nil
	})

	return g.Wait()
}
