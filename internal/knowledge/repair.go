package knowledge

import "strings"

// Repair applies the automatic fixes the validator only reports: empty
// categories default to general, empty or invalid priorities to medium, empty
// tag items are dropped, and typographic Unicode characters are normalized to
// ASCII across all text fields. It returns the number of entries changed per
// file; callers rewrite the files that changed.
func Repair(files map[string][]*Entry) map[string]int {
	fixed := make(map[string]int)

	for _, file := range sortedFileNames(files) {
		for _, entry := range files[file] {
			if repairEntry(entry) {
				fixed[file]++
			}
		}
	}

	return fixed
}

func repairEntry(entry *Entry) bool {
	changed := false

	if q := NormalizeText(entry.Question); q != entry.Question {
		entry.Question = q
		changed = true
	}
	if a := NormalizeText(entry.Answer); a != entry.Answer {
		entry.Answer = a
		changed = true
	}

	if entry.Category == "" {
		entry.Category = "general"
		changed = true
	}
	if !entry.Priority.IsValid() {
		entry.Priority = PriorityMedium
		changed = true
	}

	var tags []string
	for _, tag := range entry.Tags {
		cleaned := NormalizeText(strings.TrimSpace(tag))
		if cleaned == "" {
			changed = true
			continue
		}
		if cleaned != tag {
			changed = true
		}
		tags = append(tags, cleaned)
	}
	entry.Tags = tags

	return changed
}
