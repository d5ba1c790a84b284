package knowledge

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

const validCSV = `question,answer,category,tags,priority
How do I install the Datadog Mule agent?,"Download the agent, then follow the setup guide.",datadog-mulesoft,"install,agent",high
How do I reset my password?,Use the reset link on the login page and follow the email.,general,account,medium
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "faq.csv", validCSV)

	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	first := entries[0]
	if first.Question != "How do I install the Datadog Mule agent?" {
		t.Errorf("Question = %q", first.Question)
	}
	if first.Category != "datadog-mulesoft" {
		t.Errorf("Category = %q, want datadog-mulesoft", first.Category)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "install" || first.Tags[1] != "agent" {
		t.Errorf("Tags = %v, want [install agent]", first.Tags)
	}
	if first.Priority != PriorityHigh {
		t.Errorf("Priority = %v, want high", first.Priority)
	}
}

func TestLoadFile_MissingRequiredField(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "bad.csv", "question,answer,category\nq,a,c\n")

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() error = nil, want missing-fields error")
	}
}

func TestLoadFile_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "empty.csv", "")

	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() error = nil, want no-header error")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "faq.csv", validCSV)
	writeCSV(t, dir, "billing.csv", `question,answer,category,tags,priority
Where can I find my invoice?,Invoices are under account settings in the billing tab.,billing,invoice,low
`)
	writeCSV(t, dir, "notes.txt", "not a csv")

	files, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2 (non-csv files ignored)", len(files))
	}
	if len(files["faq.csv"]) != 2 {
		t.Errorf("faq.csv entries = %d, want 2", len(files["faq.csv"]))
	}
	if len(files["billing.csv"]) != 1 {
		t.Errorf("billing.csv entries = %d, want 1", len(files["billing.csv"]))
	}
}

func TestSaveFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	want := []*Entry{
		{
			Question: "How do I rotate the Zendesk API token?",
			Answer:   "Update the secret value in Secrets Manager; the bot picks it up within five minutes.",
			Category: "escalation",
			Tags:     []string{"secrets", "zendesk"},
			Priority: PriorityHigh,
		},
	}

	if err := SaveFile(path, want); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(got) = %d, want 1", len(got))
	}
	if got[0].Question != want[0].Question || got[0].Answer != want[0].Answer {
		t.Errorf("round-trip mismatch: got %+v", got[0])
	}
	if len(got[0].Tags) != 2 {
		t.Errorf("Tags = %v, want 2 tags", got[0].Tags)
	}
}

func TestLoadCategories(t *testing.T) {
	categories, err := LoadCategories()
	if err != nil {
		t.Fatalf("LoadCategories() error = %v", err)
	}
	if !categories.Contains("general") {
		t.Error("Contains(general) = false, want true")
	}
	if categories.Contains("made-up") {
		t.Error("Contains(made-up) = true, want false")
	}
}
