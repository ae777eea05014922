package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safetyedu/safety-edu/pkg/models"
)

// ErrNoModule is returned when the account has no module assigned
var ErrNoModule = errors.New("no module assigned to this account")

const (
	// SecondsPerHour scales the hours parameter into a per-cell duration
	SecondsPerHour = 18
	// CellJitter is the width of the random per-cell duration window
	CellJitter = 30
)

// StudyAPI is the part of the platform client the study workflow needs
type StudyAPI interface {
	ModuleList(ctx context.Context) ([]models.Module, error)
	AddMyMoocModule(ctx context.Context, moduleID string) error
	ModuleInfo(ctx context.Context, moduleID string) (models.Module, error)
	StatStuProcessCellLogAndTimeLong(ctx context.Context, moduleID, courseID, cellID string, seconds int) error
	MyStudyTimerSummary(ctx context.Context) (models.StudyTimerSummary, error)
}

// Study accrues simulated study time on every trackable cell of the first module
type Study struct {
	API    StudyAPI
	Rand   Rand
	Events EventSink
}

// CellReport is the duration reported for one cell
type CellReport struct {
	CellID  string
	Seconds int
}

// StudyReport summarizes a study run
type StudyReport struct {
	RunID    string
	Module   models.Module
	Reported []CellReport
	Summary  models.StudyTimerSummary
	Elapsed  time.Duration
}

// TrackableCells returns the cells carrying document content, in list order
func TrackableCells(cells []models.Cell) []models.Cell {
	out := make([]models.Cell, 0, len(cells))
	for _, c := range cells {
		if c.HasDocument() {
			out = append(out, c)
		}
	}
	return out
}

// CellDuration draws the simulated watch time of one cell for the given hours
// parameter, uniform in [hours*18, hours*18+30).
func CellDuration(r Rand, hours float64) int {
	lo := int(hours * SecondsPerHour)
	return r.IntRange(lo, lo+CellJitter)
}

// Run executes the study workflow. The first failing call aborts the run.
func (s *Study) Run(ctx context.Context, hours float64) (StudyReport, error) {
	if hours < 0 {
		return StudyReport{}, fmt.Errorf("hours must not be negative, got %v", hours)
	}
	rnd := defaultRand(s.Rand)
	events := sinkOrDiscard(s.Events)
	start := time.Now()
	report := StudyReport{RunID: uuid.New().String()}

	modules, err := s.API.ModuleList(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to fetch module list: %w", err)
	}
	if len(modules) == 0 {
		return report, ErrNoModule
	}
	moduleID := modules[0].ID

	if err := s.API.AddMyMoocModule(ctx, moduleID); err != nil {
		return report, fmt.Errorf("failed to enroll in module %s: %w", moduleID, err)
	}

	module, err := s.API.ModuleInfo(ctx, moduleID)
	if err != nil {
		return report, fmt.Errorf("failed to fetch module %s: %w", moduleID, err)
	}
	report.Module = module

	cells := TrackableCells(module.Cells)
	events.Emit(StudyStarted{RunID: report.RunID, Module: module, Modules: len(modules), Cells: len(cells)})

	for i, cell := range cells {
		seconds := CellDuration(rnd, hours)
		if err := s.API.StatStuProcessCellLogAndTimeLong(ctx, moduleID, module.CourseOpenID, cell.ID, seconds); err != nil {
			return report, fmt.Errorf("failed to record time for cell %s: %w", cell.ID, err)
		}
		report.Reported = append(report.Reported, CellReport{CellID: cell.ID, Seconds: seconds})
		events.Emit(CellReported{Index: i + 1, Total: len(cells), CellID: cell.ID, Seconds: seconds})
	}

	summary, err := s.API.MyStudyTimerSummary(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to fetch study summary: %w", err)
	}
	report.Summary = summary
	report.Elapsed = time.Since(start)
	events.Emit(StudyFinished{Summary: summary, Elapsed: report.Elapsed})

	return report, nil
}
