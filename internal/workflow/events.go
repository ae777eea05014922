package workflow

import (
	"time"

	"github.com/safetyedu/safety-edu/pkg/models"
)

// Event is a progress notification emitted by a workflow.
// Events are plain values so they can be forwarded as bubbletea messages.
type Event interface {
	isEvent()
}

// EventSink receives workflow events in order
type EventSink interface {
	Emit(Event)
}

// EventFunc adapts a function to an EventSink
type EventFunc func(Event)

func (f EventFunc) Emit(e Event) { f(e) }

type discard struct{}

func (discard) Emit(Event) {}

func sinkOrDiscard(s EventSink) EventSink {
	if s == nil {
		return discard{}
	}
	return s
}

type (
	// StudyStarted is sent once the module and its trackable cells are known
	StudyStarted struct {
		RunID   string
		Module  models.Module
		Modules int // modules assigned to the account
		Cells   int // trackable cells
	}

	// CellReported is sent after the time of one cell was recorded
	CellReported struct {
		Index   int // 1-based
		Total   int
		CellID  string
		Seconds int
	}

	// StudyFinished is sent after the summary was fetched
	StudyFinished struct {
		Summary models.StudyTimerSummary
		Elapsed time.Duration
	}

	// ExamStarted is sent once the paper has been fetched
	ExamStarted struct {
		RunID string
		Paper models.ExamPaper
		Score int
	}

	// QuestionAnswered is sent after an answer was saved
	QuestionAnswered struct {
		Index  int // 1-based
		Total  int
		Record models.AnswerRecord
		Answer string
	}

	// QuestionSkipped is sent for a question that gets no answer
	QuestionSkipped struct {
		Index  int
		Total  int
		QuesID string
		Reason SkipReason
		Err    error
	}

	// ExamSubmitted is sent after the paper was submitted
	ExamSubmitted struct {
		Answered int
	}

	// ExamFinished carries the graded result of the attempt
	ExamFinished struct {
		Result models.PaperResult
	}
)

func (StudyStarted) isEvent()     {}
func (CellReported) isEvent()     {}
func (StudyFinished) isEvent()    {}
func (ExamStarted) isEvent()      {}
func (QuestionAnswered) isEvent() {}
func (QuestionSkipped) isEvent()  {}
func (ExamSubmitted) isEvent()    {}
func (ExamFinished) isEvent()     {}

// SkipReason tells why a question was not answered
type SkipReason int

const (
	// SkipScoreCap means the question is past the score cap
	SkipScoreCap SkipReason = iota
	// SkipNotInBank means the answer bank has no entry for the question
	SkipNotInBank
)

func (r SkipReason) String() string {
	switch r {
	case SkipScoreCap:
		return "score cap reached"
	case SkipNotInBank:
		return "not in answer bank"
	default:
		return "unknown"
	}
}
