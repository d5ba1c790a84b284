package knowledge

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadDir loads every *.csv file in a knowledge base directory, keyed by file
// name. Files are returned in name order so output is stable.
func LoadDir(dir string) (map[string][]*Entry, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge base dir %s: %w", dir, err)
	}
	sort.Strings(paths)

	files := make(map[string][]*Entry, len(paths))
	for _, path := range paths {
		entries, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		files[filepath.Base(path)] = entries
	}

	return files, nil
}

// LoadFile loads a single knowledge base CSV file
func LoadFile(path string) ([]*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // row width checked against the header below

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no header found in %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	index, err := headerIndex(path, header)
	if err != nil {
		return nil, err
	}

	var entries []*Entry
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		entries = append(entries, entryFromRow(row, index))
	}

	return entries, nil
}

// SaveFile writes entries to a knowledge base CSV file with the canonical
// header order
func SaveFile(path string, entries []*Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(Fields); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}

	for _, entry := range entries {
		row := []string{
			entry.Question,
			entry.Answer,
			entry.Category,
			strings.Join(entry.Tags, ","),
			entry.Priority.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write entry to %s: %w", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	return nil
}

// headerIndex maps the required fields to their column positions
func headerIndex(path string, header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, field := range Fields {
		if _, ok := index[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required fields in %s: %s", path, strings.Join(missing, ", "))
	}

	return index, nil
}

func entryFromRow(row []string, index map[string]int) *Entry {
	get := func(field string) string {
		i := index[field]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	entry := &Entry{
		Question: get("question"),
		Answer:   get("answer"),
		Category: get("category"),
		Priority: Priority(strings.ToLower(get("priority"))),
	}

	if tags := get("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			entry.Tags = append(entry.Tags, strings.TrimSpace(tag))
		}
	}

	return entry
}
