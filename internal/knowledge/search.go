package knowledge

import (
	"fmt"
	"strings"
)

// SearchFields lists the fields a search may target; "all" matches any field
var SearchFields = []string{"question", "answer", "category", "tags", "all"}

// SearchResult is one entry matched by a search
type SearchResult struct {
	Entry    *Entry
	Location Location
}

// Search finds entries whose chosen field contains the query,
// case-insensitively. Results come back in file name then row order.
func Search(files map[string][]*Entry, query string, field string) ([]SearchResult, error) {
	if !validSearchField(field) {
		return nil, fmt.Errorf("unknown search field: %s (must be one of %s)", field, strings.Join(SearchFields, ", "))
	}
	query = strings.ToLower(query)

	var results []SearchResult
	for _, file := range sortedFileNames(files) {
		for i, entry := range files[file] {
			if entryMatches(entry, query, field) {
				results = append(results, SearchResult{
					Entry:    entry,
					Location: Location{File: file, Row: i + 2},
				})
			}
		}
	}

	return results, nil
}

func validSearchField(field string) bool {
	for _, f := range SearchFields {
		if f == field {
			return true
		}
	}
	return false
}

func entryMatches(entry *Entry, query string, field string) bool {
	contains := func(value string) bool {
		return strings.Contains(strings.ToLower(value), query)
	}
	tagsMatch := func() bool {
		for _, tag := range entry.Tags {
			if contains(tag) {
				return true
			}
		}
		return false
	}

	switch field {
	case "question":
		return contains(entry.Question)
	case "answer":
		return contains(entry.Answer)
	case "category":
		return contains(entry.Category)
	case "tags":
		return tagsMatch()
	default:
		return contains(entry.Question) || contains(entry.Answer) ||
			contains(entry.Category) || tagsMatch()
	}
}
