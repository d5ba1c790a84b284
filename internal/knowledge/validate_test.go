package knowledge

import (
	"strings"
	"testing"
)

func validEntry() *Entry {
	return &Entry{
		Question: "How do I reset my password today?",
		Answer:   "Use the reset link on the login page and follow the email.",
		Category: "general",
		Tags:     []string{"account"},
		Priority: PriorityMedium,
	}
}

func countBySeverity(issues []Issue, severity Severity) int {
	n := 0
	for _, issue := range issues {
		if issue.Severity == severity {
			n++
		}
	}
	return n
}

func TestValidateEntries_Clean(t *testing.T) {
	issues := ValidateEntries("faq.csv", []*Entry{validEntry()}, nil)
	if len(issues) != 0 {
		t.Errorf("ValidateEntries() = %v, want no issues", issues)
	}
}

func TestValidateEntries_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Entry)
	}{
		{"empty question", func(e *Entry) { e.Question = "" }},
		{"empty answer", func(e *Entry) { e.Answer = "" }},
		{"empty category", func(e *Entry) { e.Category = "" }},
		{"empty tags", func(e *Entry) { e.Tags = nil }},
		{"empty priority", func(e *Entry) { e.Priority = "" }},
		{"invalid priority", func(e *Entry) { e.Priority = Priority("urgent") }},
		{"blank tag entry", func(e *Entry) { e.Tags = []string{"account", ""} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := validEntry()
			tt.mutate(entry)

			issues := ValidateEntries("faq.csv", []*Entry{entry}, nil)
			if countBySeverity(issues, SeverityError) == 0 {
				t.Errorf("ValidateEntries() found no errors, want at least one: %v", issues)
			}
		})
	}
}

func TestValidateEntries_Warnings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Entry)
	}{
		{"short question", func(e *Entry) { e.Question = "Why?" }},
		{"long question", func(e *Entry) { e.Question = strings.Repeat("q", 501) }},
		{"short answer", func(e *Entry) { e.Answer = "Yes." }},
		{"long answer", func(e *Entry) { e.Answer = strings.Repeat("a", 5001) }},
		{"too many tags", func(e *Entry) { e.Tags = strings.Split(strings.Repeat("t,", 11)[:21], ",") }},
		{"special characters in category", func(e *Entry) { e.Category = "billing & plans" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := validEntry()
			tt.mutate(entry)

			issues := ValidateEntries("faq.csv", []*Entry{entry}, nil)
			if countBySeverity(issues, SeverityWarning) == 0 {
				t.Errorf("ValidateEntries() found no warnings, want at least one: %v", issues)
			}
			if countBySeverity(issues, SeverityError) != 0 {
				t.Errorf("ValidateEntries() found errors, want warnings only: %v", issues)
			}
		})
	}
}

func TestValidateEntries_UnknownCategory(t *testing.T) {
	categories, err := LoadCategories()
	if err != nil {
		t.Fatalf("LoadCategories() error = %v", err)
	}

	entry := validEntry()
	entry.Category = "made-up"

	issues := ValidateEntries("faq.csv", []*Entry{entry}, categories)
	if countBySeverity(issues, SeverityWarning) == 0 {
		t.Errorf("ValidateEntries() = %v, want unknown-category warning", issues)
	}
}

func TestValidateEntries_RowNumbers(t *testing.T) {
	bad := validEntry()
	bad.Question = ""

	issues := ValidateEntries("faq.csv", []*Entry{validEntry(), bad}, nil)
	if len(issues) == 0 {
		t.Fatal("ValidateEntries() found no issues")
	}
	// Header is row 1, first entry row 2, so the second entry is row 3
	if issues[0].Location.Row != 3 {
		t.Errorf("Location.Row = %d, want 3", issues[0].Location.Row)
	}
	if issues[0].Location.File != "faq.csv" {
		t.Errorf("Location.File = %q, want faq.csv", issues[0].Location.File)
	}
}

func TestFindDuplicates(t *testing.T) {
	dup := validEntry()
	dupCopy := validEntry()
	dupCopy.Question = "  " + strings.ToUpper(dup.Question) + " " // normalization catches it

	other := validEntry()
	other.Question = "Where can I find my invoice and receipts?"

	files := map[string][]*Entry{
		"a.csv": {dup, other},
		"b.csv": {dupCopy},
	}

	duplicates := FindDuplicates(files)
	if len(duplicates) != 1 {
		t.Fatalf("len(duplicates) = %d, want 1", len(duplicates))
	}
	locations := duplicates[dup.NormalizedQuestion()]
	if len(locations) != 2 {
		t.Fatalf("len(locations) = %d, want 2", len(locations))
	}
	// File name order: a.csv first
	if locations[0].File != "a.csv" || locations[1].File != "b.csv" {
		t.Errorf("locations = %v, want a.csv then b.csv", locations)
	}
}

func TestDedupe(t *testing.T) {
	dup := validEntry()
	dupCopy := validEntry()

	files := map[string][]*Entry{
		"a.csv": {dup},
		"b.csv": {dupCopy},
	}

	removed := Dedupe(files)
	if removed["b.csv"] != 1 {
		t.Errorf("removed[b.csv] = %d, want 1 (first occurrence kept)", removed["b.csv"])
	}
	if len(files["a.csv"]) != 1 {
		t.Errorf("a.csv entries = %d, want 1", len(files["a.csv"]))
	}
	if len(files["b.csv"]) != 0 {
		t.Errorf("b.csv entries = %d, want 0", len(files["b.csv"]))
	}
}

func TestAnalyze(t *testing.T) {
	files := map[string][]*Entry{
		"faq.csv": {
			validEntry(),
			{
				Question: "How do I install the Datadog Mule agent?",
				Answer:   "Download the agent, then follow the setup guide in the docs.",
				Category: "datadog-mulesoft",
				Tags:     []string{"install", "agent"},
				Priority: PriorityHigh,
			},
		},
	}

	analysis := Analyze(files)
	if analysis.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1", analysis.TotalFiles)
	}
	if analysis.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, want 2", analysis.TotalEntries)
	}
	if analysis.Categories["datadog-mulesoft"] != 1 {
		t.Errorf("Categories[datadog-mulesoft] = %d, want 1", analysis.Categories["datadog-mulesoft"])
	}
	if analysis.Priorities[PriorityHigh] != 1 {
		t.Errorf("Priorities[high] = %d, want 1", analysis.Priorities[PriorityHigh])
	}
	if analysis.AvgQuestionLength == 0 || analysis.AvgAnswerLength == 0 {
		t.Error("average lengths should be non-zero")
	}
	if len(analysis.DuplicateQuestions) != 0 {
		t.Errorf("DuplicateQuestions = %v, want none", analysis.DuplicateQuestions)
	}

	top := analysis.TopTags(2)
	if len(top) != 2 {
		t.Errorf("TopTags(2) = %v, want 2 tags", top)
	}
}
