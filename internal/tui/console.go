package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/safetyedu/safety-edu/internal/workflow"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	logStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("63"))
)

// Render formats a line with its level marker
func (l Line) Render() string {
	switch l.Level {
	case LevelInfo:
		return infoStyle.Render("ℹ") + " " + l.Text
	case LevelWarn:
		return warnStyle.Render("⚠") + " " + warnStyle.Render(l.Text)
	case LevelSuccess:
		return successStyle.Render("✔") + " " + l.Text
	case LevelError:
		return errorStyle.Render("✖") + " " + errorStyle.Render(l.Text)
	default:
		return logStyle.Render(l.Text)
	}
}

// Console prints leveled lines. It is also the plain-mode EventSink.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole creates a console writing to w
func NewConsole(w io.Writer) *Console {
	return &Console{out: w}
}

func (c *Console) print(l Line) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, l.Render())
}

func (c *Console) Info(format string, a ...interface{}) {
	c.print(Line{LevelInfo, fmt.Sprintf(format, a...)})
}

func (c *Console) Warn(format string, a ...interface{}) {
	c.print(Line{LevelWarn, fmt.Sprintf(format, a...)})
}

func (c *Console) Success(format string, a ...interface{}) {
	c.print(Line{LevelSuccess, fmt.Sprintf(format, a...)})
}

func (c *Console) Error(format string, a ...interface{}) {
	c.print(Line{LevelError, fmt.Sprintf(format, a...)})
}

func (c *Console) Log(format string, a ...interface{}) {
	c.print(Line{LevelLog, fmt.Sprintf(format, a...)})
}

// Emit prints the lines describing a workflow event
func (c *Console) Emit(e workflow.Event) {
	for _, l := range describe(e) {
		c.print(l)
	}
}
