package answers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/safetyedu/safety-edu/internal/db"
	"github.com/safetyedu/safety-edu/pkg/models"
)

// TypeCount is the number of bank entries of one question type
type TypeCount struct {
	Type  string
	Count int
}

// source renders the read_json table function over an answer bank file
func source(path string) string {
	return fmt.Sprintf(`read_json(%s,
			format = 'array',
			columns = {id: 'VARCHAR', type: 'VARCHAR', content: 'VARCHAR', answer: 'VARCHAR[]'}
		)`, db.QuoteLiteral(path))
}

// Stats counts the entries of the answer bank at path per question type
func Stats(ctx context.Context, database *sql.DB, path string) ([]TypeCount, error) {
	query := fmt.Sprintf(`
		SELECT
			COALESCE(type, '') AS question_type,
			COUNT(*) AS entries
		FROM %s
		GROUP BY question_type
		ORDER BY entries DESC, question_type
	`, source(path))

	rows, err := database.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute stats query: %w", err)
	}
	defer rows.Close()

	var counts []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// Search returns up to limit entries whose question text contains text
func Search(ctx context.Context, database *sql.DB, path, text string, limit int) ([]models.AnswerRecord, error) {
	query := fmt.Sprintf(`
		SELECT
			id,
			COALESCE(type, '') AS question_type,
			COALESCE(content, '') AS content,
			CAST(to_json(answer) AS VARCHAR) AS answer_json
		FROM %s
		WHERE contains(content, ?)
		ORDER BY id
		LIMIT ?
	`, source(path))

	rows, err := database.QueryContext(ctx, query, text, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var records []models.AnswerRecord
	for rows.Next() {
		var r models.AnswerRecord
		var answerJSON sql.NullString
		if err := rows.Scan(&r.ID, &r.Type, &r.Content, &answerJSON); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		if answerJSON.Valid {
			if err := json.Unmarshal([]byte(answerJSON.String), &r.Answer); err != nil {
				return nil, fmt.Errorf("failed to decode answers of %s: %w", r.ID, err)
			}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
