package tui

import (
	"fmt"

	"github.com/safetyedu/safety-edu/internal/answers"
	"github.com/safetyedu/safety-edu/internal/workflow"
)

// Level is the severity of a console line
type Level int

const (
	LevelLog Level = iota
	LevelInfo
	LevelWarn
	LevelSuccess
	LevelError
)

// Message types for the progress program
type (
	// doneMsg is sent once the workflow returned
	doneMsg struct {
		err error
	}
)

// Line is one rendered console line derived from a workflow event
type Line struct {
	Level Level
	Text  string
}

// describe turns a workflow event into the lines printed for it
func describe(e workflow.Event) []Line {
	switch e := e.(type) {
	case workflow.StudyStarted:
		lines := []Line{{LevelInfo, fmt.Sprintf("Studying module %s: %d cells (run %s)", e.Module.ID, e.Cells, shortID(e.RunID))}}
		if e.Modules > 1 {
			lines = append(lines, Line{LevelWarn, fmt.Sprintf("%d modules assigned, only the first one is studied", e.Modules)})
		}
		return lines

	case workflow.CellReported:
		return []Line{{LevelLog, fmt.Sprintf("(%d/%d) cell %s: %ds", e.Index, e.Total, e.CellID, e.Seconds)}}

	case workflow.StudyFinished:
		return []Line{
			{LevelSuccess, fmt.Sprintf("Study finished in %.2fs", e.Elapsed.Seconds())},
			{LevelLog, fmt.Sprintf("  Total study time: %s", e.Summary.Duration())},
			{LevelLog, fmt.Sprintf("  Study sessions:   %d", e.Summary.CumulativeStudyCount)},
			{LevelLog, fmt.Sprintf("  Courses studied:  %d", e.Summary.CumulativeStudyCourse)},
		}

	case workflow.ExamStarted:
		return []Line{{LevelInfo, fmt.Sprintf("Fetched paper %s (id %s), %d questions, score cap %d (run %s)",
			e.Paper.PaperName, e.Paper.PaperID, len(e.Paper.Questions), e.Score, shortID(e.RunID))}}

	case workflow.QuestionAnswered:
		return []Line{{LevelLog, fmt.Sprintf("(%d/%d) [%s] %s answer: %s",
			e.Index, e.Total, e.Record.Type, answers.Preview(e.Record.Content, answers.PreviewLength), e.Answer)}}

	case workflow.QuestionSkipped:
		if e.Reason == workflow.SkipNotInBank {
			return []Line{{LevelError, fmt.Sprintf("(%d/%d) question %s skipped: %s", e.Index, e.Total, e.QuesID, e.Reason)}}
		}
		return []Line{{LevelLog, fmt.Sprintf("(%d/%d) %s, skipping", e.Index, e.Total, e.Reason)}}

	case workflow.ExamSubmitted:
		return []Line{{LevelInfo, fmt.Sprintf("Paper submitted with %d answers", e.Answered)}}

	case workflow.ExamFinished:
		return []Line{{LevelSuccess, fmt.Sprintf("Exam finished, time used: %s, total score: %s",
			e.Result.AnswerTimeStr, e.Result.StudentTotalScore)}}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
