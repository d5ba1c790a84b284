package knowledge

import (
	"fmt"
	"regexp"
)

// Severity classifies a validation issue
type Severity string

const (
	// SeverityError marks issues that make an entry unusable
	SeverityError Severity = "error"
	// SeverityWarning marks quality issues that do not block loading
	SeverityWarning Severity = "warning"
)

// Issue is a single validation finding tied to an entry location
type Issue struct {
	Severity Severity
	Location Location
	Message  string
}

// Quality bounds carried over from the operator tooling this replaces
const (
	minQuestionLen = 10
	maxQuestionLen = 500
	minAnswerLen   = 20
	maxAnswerLen   = 5000
	maxTags        = 10
)

var categoryPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateEntries checks one file's entries against the required-field and
// quality rules. Row numbers start at 2, the header being row 1.
func ValidateEntries(file string, entries []*Entry, categories *Categories) []Issue {
	var issues []Issue

	addError := func(row int, format string, args ...any) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Location: Location{File: file, Row: row},
			Message:  fmt.Sprintf(format, args...),
		})
	}
	addWarning := func(row int, format string, args ...any) {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Location: Location{File: file, Row: row},
			Message:  fmt.Sprintf(format, args...),
		})
	}

	for i, entry := range entries {
		row := i + 2

		if entry.Question == "" {
			addError(row, "empty question")
		}
		if entry.Answer == "" {
			addError(row, "empty answer")
		}
		if entry.Category == "" {
			addError(row, "empty category")
		}
		if len(entry.Tags) == 0 {
			addError(row, "empty tags")
		}
		if entry.Priority == "" {
			addError(row, "empty priority")
		} else if !entry.Priority.IsValid() {
			addError(row, "invalid priority: %s", entry.Priority)
		}

		if n := len(entry.Question); n > maxQuestionLen {
			addWarning(row, "question is very long (%d chars)", n)
		} else if n > 0 && n < minQuestionLen {
			addWarning(row, "question is very short (%d chars)", n)
		}

		if n := len(entry.Answer); n > maxAnswerLen {
			addWarning(row, "answer is very long (%d chars)", n)
		} else if n > 0 && n < minAnswerLen {
			addWarning(row, "answer is very short (%d chars)", n)
		}

		if len(entry.Tags) > maxTags {
			addWarning(row, "too many tags (%d)", len(entry.Tags))
		}
		for _, tag := range entry.Tags {
			if tag == "" {
				addError(row, "empty tags found")
				break
			}
		}

		if entry.Category != "" {
			if !categoryPattern.MatchString(entry.Category) {
				addWarning(row, "category contains special characters: %s", entry.Category)
			} else if categories != nil && !categories.Contains(entry.Category) {
				addWarning(row, "unknown category: %s", entry.Category)
			}
		}
	}

	return issues
}

// FindDuplicates locates questions appearing more than once across files,
// matching on the normalized question text. Each slice holds every location
// of one duplicated question, first occurrence first.
func FindDuplicates(files map[string][]*Entry) map[string][]Location {
	seen := make(map[string][]Location)

	for _, file := range sortedFileNames(files) {
		for i, entry := range files[file] {
			question := entry.NormalizedQuestion()
			if question == "" {
				continue
			}
			seen[question] = append(seen[question], Location{File: file, Row: i + 2})
		}
	}

	duplicates := make(map[string][]Location)
	for question, locations := range seen {
		if len(locations) > 1 {
			duplicates[question] = locations
		}
	}

	return duplicates
}

// Dedupe removes duplicate questions, keeping the first occurrence in file
// name order. It returns the number of entries removed per file.
func Dedupe(files map[string][]*Entry) map[string]int {
	seen := make(map[string]bool)
	removed := make(map[string]int)

	for _, file := range sortedFileNames(files) {
		kept := files[file][:0]
		for _, entry := range files[file] {
			question := entry.NormalizedQuestion()
			if question != "" && seen[question] {
				removed[file]++
				continue
			}
			seen[question] = true
			kept = append(kept, entry)
		}
		files[file] = kept
	}

	return removed
}
