package answers

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/safetyedu/safety-edu/pkg/models"
)

// Separator joins the options of a multi-answer question, as the platform expects
const Separator = "；"

// PreviewLength is the number of characters of question text shown in log lines
const PreviewLength = 32

// LookupError is returned when a question id has no entry in the bank
type LookupError struct {
	ID string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("question %s not found in answer bank", e.ID)
}

// Bank is an immutable answer bank keyed by question id
type Bank struct {
	records []models.AnswerRecord
	byID    map[string]int
}

// Load reads a JSON array of answer records from path
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answer bank: %w", err)
	}
	return Parse(data)
}

// Parse decodes an answer bank. Records must have an id; when an id repeats,
// the first record wins.
func Parse(data []byte) (*Bank, error) {
	var records []models.AnswerRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse answer bank: %w", err)
	}

	b := &Bank{records: records, byID: make(map[string]int, len(records))}
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("answer bank entry %d has no id", i)
		}
		if _, ok := b.byID[r.ID]; !ok {
			b.byID[r.ID] = i
		}
	}
	return b, nil
}

// Len returns the number of records in the bank
func (b *Bank) Len() int {
	return len(b.records)
}

// Lookup returns the record whose id equals quesID
func (b *Bank) Lookup(quesID string) (models.AnswerRecord, error) {
	i, ok := b.byID[quesID]
	if !ok {
		return models.AnswerRecord{}, &LookupError{ID: quesID}
	}
	return b.records[i], nil
}

// Format builds the submitted answer string, keeping option order
func Format(r models.AnswerRecord) string {
	return strings.Join(r.Answer, Separator)
}

// Preview returns at most n characters of s
func Preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
