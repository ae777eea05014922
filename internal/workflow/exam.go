package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safetyedu/safety-edu/internal/answers"
	"github.com/safetyedu/safety-edu/pkg/models"
)

const (
	// MaxScore is the largest accepted score cap
	MaxScore = 100

	// AnswerDelayMin and AnswerDelayMax bound the pause after each saved answer, in seconds [min, max)
	AnswerDelayMin = 5
	AnswerDelayMax = 10

	// SettleDelay is the pause between submitting the paper and reading the grade
	SettleDelay = 3 * time.Second
)

// ExamAPI is the part of the platform client the exam workflow needs
type ExamAPI interface {
	StuPaper(ctx context.Context, courseID string) (models.ExamPaper, error)
	SaveStuQuesAnswer(ctx context.Context, paperStuID, paperID, quesID, answer string) error
	SubmitStuPaper(ctx context.Context, paperStuID, paperID string) error
	CoursePaperInfo(ctx context.Context, courseID string) ([]models.PaperResult, error)
}

// Exam answers the student's paper from the answer bank and submits it
type Exam struct {
	API      ExamAPI
	Bank     *answers.Bank
	CourseID string
	Rand     Rand
	Sleep    Sleeper
	Events   EventSink
}

// ExamReport summarizes an exam run
type ExamReport struct {
	RunID      string
	Paper      models.ExamPaper
	Answered   []string // question ids with a saved answer
	SkippedCap []string
	Missing    []string // question ids absent from the answer bank
	Result     models.PaperResult
}

// Run answers at most score questions, in paper order, then submits the paper.
// Questions past the cap are left unanswered rather than answered wrongly.
// A question missing from the bank is skipped; any API failure aborts the run.
func (e *Exam) Run(ctx context.Context, score int) (ExamReport, error) {
	if score < 0 || score > MaxScore {
		return ExamReport{}, fmt.Errorf("score must be within [0, %d], got %d", MaxScore, score)
	}
	if e.Bank == nil {
		return ExamReport{}, errors.New("no answer bank loaded")
	}
	rnd := defaultRand(e.Rand)
	sleep := e.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	events := sinkOrDiscard(e.Events)
	report := ExamReport{RunID: uuid.New().String()}

	paper, err := e.API.StuPaper(ctx, e.CourseID)
	if err != nil {
		return report, fmt.Errorf("failed to fetch exam paper: %w", err)
	}
	report.Paper = paper
	events.Emit(ExamStarted{RunID: report.RunID, Paper: paper, Score: score})

	total := len(paper.Questions)
	for i, q := range paper.Questions {
		cs := i + 1
		if cs > score {
			report.SkippedCap = append(report.SkippedCap, q.QuesID)
			events.Emit(QuestionSkipped{Index: cs, Total: total, QuesID: q.QuesID, Reason: SkipScoreCap})
			continue
		}

		record, err := e.Bank.Lookup(q.QuesID)
		if err != nil {
			report.Missing = append(report.Missing, q.QuesID)
			events.Emit(QuestionSkipped{Index: cs, Total: total, QuesID: q.QuesID, Reason: SkipNotInBank, Err: err})
			continue
		}

		answer := answers.Format(record)
		if err := e.API.SaveStuQuesAnswer(ctx, paper.PaperStuID, paper.PaperID, q.QuesID, answer); err != nil {
			return report, fmt.Errorf("failed to save answer for question %s: %w", q.QuesID, err)
		}
		report.Answered = append(report.Answered, q.QuesID)
		events.Emit(QuestionAnswered{Index: cs, Total: total, Record: record, Answer: answer})

		delay := time.Duration(rnd.IntRange(AnswerDelayMin, AnswerDelayMax)) * time.Second
		if err := sleep(ctx, delay); err != nil {
			return report, err
		}
	}

	if err := e.API.SubmitStuPaper(ctx, paper.PaperStuID, paper.PaperID); err != nil {
		return report, fmt.Errorf("failed to submit paper: %w", err)
	}
	events.Emit(ExamSubmitted{Answered: len(report.Answered)})

	if err := sleep(ctx, SettleDelay); err != nil {
		return report, err
	}

	results, err := e.API.CoursePaperInfo(ctx, e.CourseID)
	if err != nil {
		return report, fmt.Errorf("failed to fetch exam result: %w", err)
	}
	if len(results) == 0 {
		return report, errors.New("no graded attempt returned after submission")
	}
	report.Result = results[0]
	events.Emit(ExamFinished{Result: report.Result})

	return report, nil
}
