package workflow

import (
	"context"
	"fmt"

	"github.com/safetyedu/safety-edu/pkg/models"
)

// InfoAPI is the part of the platform client the info summary needs
type InfoAPI interface {
	MyStudyTimerSummary(ctx context.Context) (models.StudyTimerSummary, error)
	CoursePaperInfo(ctx context.Context, courseID string) ([]models.PaperResult, error)
}

// InfoReport is the account's study counters and latest exam result.
// LastResult is nil when the exam was never taken.
type InfoReport struct {
	Summary    models.StudyTimerSummary
	LastResult *models.PaperResult
}

// Info reads the study summary and the latest graded attempt of courseID
func Info(ctx context.Context, api InfoAPI, courseID string) (InfoReport, error) {
	summary, err := api.MyStudyTimerSummary(ctx)
	if err != nil {
		return InfoReport{}, fmt.Errorf("failed to fetch study summary: %w", err)
	}
	report := InfoReport{Summary: summary}

	results, err := api.CoursePaperInfo(ctx, courseID)
	if err != nil {
		return report, fmt.Errorf("failed to fetch exam result: %w", err)
	}
	if len(results) > 0 {
		report.LastResult = &results[0]
	}

	return report, nil
}
