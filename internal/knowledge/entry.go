package knowledge

import "strings"

// Priority represents a knowledge base entry priority
type Priority string

const (
	// PriorityHigh marks entries surfaced first in fulfillment
	PriorityHigh Priority = "high"
	// PriorityMedium is the default entry priority
	PriorityMedium Priority = "medium"
	// PriorityLow marks rarely needed entries
	PriorityLow Priority = "low"
)

// IsValid checks if the priority value is valid
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority
func (p Priority) String() string {
	return string(p)
}

// Fields is the required CSV header for knowledge base files, in order
var Fields = []string{"question", "answer", "category", "tags", "priority"}

// Entry is one question/answer pair in the knowledge base
type Entry struct {
	Question string
	Answer   string
	Category string
	Tags     []string
	Priority Priority
}

// NormalizedQuestion returns the question lowered and trimmed, the form used
// for duplicate detection
func (e *Entry) NormalizedQuestion() string {
	return strings.ToLower(strings.TrimSpace(e.Question))
}

// Location identifies an entry by file and CSV row number (header is row 1)
type Location struct {
	File string
	Row  int
}
