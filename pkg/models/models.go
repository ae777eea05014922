package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// School is an entry of the platform's school directory
type School struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is the logged-in account as reported by the platform
type User struct {
	DisplayName string `json:"displayName"`
}

// Cell is the smallest trackable unit of study content within a module
type Cell struct {
	ID    string `json:"id"`
	DocID string `json:"docId"`
}

// HasDocument reports whether the cell carries document content.
// Only such cells can accrue study time.
func (c Cell) HasDocument() bool {
	return c.DocID != ""
}

// Module represents a course offering assigned to the user
type Module struct {
	ID           string
	CourseOpenID string
	Cells        []Cell // Only populated by a module info request
}

// QuestionType is the platform's numeric question kind
type QuestionType int

const (
	QuestionUnknown QuestionType = iota
	QuestionSingle
	QuestionMultiple
	QuestionJudgment
)

func (t QuestionType) String() string {
	switch t {
	case QuestionSingle:
		return "single"
	case QuestionMultiple:
		return "multiple"
	case QuestionJudgment:
		return "judgment"
	default:
		return "unknown"
	}
}

// Question is one entry of a student's exam paper
type Question struct {
	QuesID string
	Type   QuestionType
}

// ExamPaper is one attempt-scoped exam instance
type ExamPaper struct {
	PaperID    string
	PaperStuID string
	PaperName  string
	Questions  []Question
}

// AnswerRecord is one entry of the local answer bank
type AnswerRecord struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Content string   `json:"content"`
	Answer  []string `json:"answer"`
}

// StudyTimerSummary holds the server-side study counters
type StudyTimerSummary struct {
	CumulativeStudyTimer  int64 `json:"cumulativeStudyTimer"` // seconds
	CumulativeStudyCount  int   `json:"cumulativeStudyCount"`
	CumulativeStudyCourse int   `json:"cumulativeStudyCourse"`
}

// Duration renders the cumulative study time as "1h 2m 3s"
func (s StudyTimerSummary) Duration() string {
	t := s.CumulativeStudyTimer
	return fmt.Sprintf("%dh %dm %ds", t/3600, t%3600/60, t%60)
}

// PaperResult is one graded exam attempt. Both fields are shown as the
// platform sent them; the score may be empty while grading is pending.
type PaperResult struct {
	AnswerTimeStr     Text `json:"answerTimeStr"`
	StudentTotalScore Text `json:"studentTotalScore"`
}

// Text is a display value the platform sends as a JSON string, a number or null.
// Strings decode to their content, null to "", anything else to its raw JSON text.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	*t = Text(bytes.TrimSpace(data))
	return nil
}

func (t Text) String() string {
	return string(t)
}
