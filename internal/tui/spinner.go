package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// brailleSpinner cycles through the braille loading frames
var brailleSpinner = spinner.Spinner{
	Frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
	FPS:    100 * time.Millisecond,
}

const barWidth = 30

// newSpinner creates the loading spinner
func newSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(brailleSpinner),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("212"))),
	)
}

// newBar creates the progress bar drawn with full and empty blocks
func newBar() progress.Model {
	bar := progress.New(
		progress.WithSolidFill("42"),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.Full = '█'
	bar.Empty = '░'
	bar.EmptyColor = "238"
	return bar
}

// fraction returns done/total clamped to [0, 1]
func fraction(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	f := float64(done) / float64(total)
	if f > 1 {
		return 1
	}
	return f
}

// renderProgress renders the bar followed by the position and percentage
func renderProgress(bar progress.Model, done, total int) string {
	f := fraction(done, total)
	return fmt.Sprintf("%s %d/%d (%.0f%%)", bar.ViewAs(f), done, total, f*100)
}
