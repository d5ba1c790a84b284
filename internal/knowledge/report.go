package knowledge

import (
	"encoding/json"
	"io"
	"time"
)

// Report is the JSON statistics export of a knowledge base analysis
type Report struct {
	GeneratedAt string                `json:"generated_at"`
	Summary     ReportSummary         `json:"summary"`
	Categories  map[string]int        `json:"categories"`
	Priorities  map[Priority]int      `json:"priorities"`
	TopTags     map[string]int        `json:"top_tags"`
	Files       map[string]ReportFile `json:"files"`
}

// ReportSummary holds the headline numbers
type ReportSummary struct {
	TotalFiles         int `json:"total_files"`
	TotalEntries       int `json:"total_entries"`
	DuplicateQuestions int `json:"duplicate_questions"`
	AvgQuestionLength  int `json:"avg_question_length"`
	AvgAnswerLength    int `json:"avg_answer_length"`
}

// ReportFile holds per-file statistics
type ReportFile struct {
	Entries    int              `json:"entries"`
	Categories map[string]int   `json:"categories"`
	Priorities map[Priority]int `json:"priorities"`
}

// NewReport builds the exportable report from an analysis. The tag list is
// capped at the 20 most used tags.
func NewReport(analysis *Analysis) *Report {
	topTags := make(map[string]int)
	for _, tag := range analysis.TopTags(20) {
		topTags[tag] = analysis.Tags[tag]
	}

	files := make(map[string]ReportFile, len(analysis.Files))
	for name, stats := range analysis.Files {
		files[name] = ReportFile{
			Entries:    stats.Entries,
			Categories: stats.Categories,
			Priorities: stats.Priorities,
		}
	}

	return &Report{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Summary: ReportSummary{
			TotalFiles:         analysis.TotalFiles,
			TotalEntries:       analysis.TotalEntries,
			DuplicateQuestions: len(analysis.DuplicateQuestions),
			AvgQuestionLength:  analysis.AvgQuestionLength,
			AvgAnswerLength:    analysis.AvgAnswerLength,
		},
		Categories: analysis.Categories,
		Priorities: analysis.Priorities,
		TopTags:    topTags,
		Files:      files,
	}
}

// WriteJSON writes the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}
