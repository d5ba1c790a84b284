package knowledge

import "sort"

// FileStats summarizes one knowledge base file
type FileStats struct {
	Entries    int
	Categories map[string]int
	Priorities map[Priority]int
}

// Analysis summarizes the whole knowledge base
type Analysis struct {
	TotalFiles        int
	TotalEntries      int
	Categories        map[string]int
	Priorities        map[Priority]int
	Tags              map[string]int
	AvgQuestionLength int
	AvgAnswerLength   int
	Files             map[string]FileStats
	// DuplicateQuestions maps normalized question text to every location it
	// appears at, for questions seen more than once
	DuplicateQuestions map[string][]Location
}

// Analyze computes content statistics across all loaded files
func Analyze(files map[string][]*Entry) *Analysis {
	analysis := &Analysis{
		TotalFiles:         len(files),
		Categories:         make(map[string]int),
		Priorities:         make(map[Priority]int),
		Tags:               make(map[string]int),
		Files:              make(map[string]FileStats, len(files)),
		DuplicateQuestions: FindDuplicates(files),
	}

	var totalQuestionLen, totalAnswerLen int

	for name, entries := range files {
		stats := FileStats{
			Entries:    len(entries),
			Categories: make(map[string]int),
			Priorities: make(map[Priority]int),
		}

		for _, entry := range entries {
			analysis.TotalEntries++
			totalQuestionLen += len(entry.Question)
			totalAnswerLen += len(entry.Answer)

			if entry.Category != "" {
				analysis.Categories[entry.Category]++
				stats.Categories[entry.Category]++
			}
			if entry.Priority != "" {
				analysis.Priorities[entry.Priority]++
				stats.Priorities[entry.Priority]++
			}
			for _, tag := range entry.Tags {
				if tag != "" {
					analysis.Tags[tag]++
				}
			}
		}

		analysis.Files[name] = stats
	}

	if analysis.TotalEntries > 0 {
		analysis.AvgQuestionLength = totalQuestionLen / analysis.TotalEntries
		analysis.AvgAnswerLength = totalAnswerLen / analysis.TotalEntries
	}

	return analysis
}

// TopTags returns the n most used tags, most frequent first. Ties break by
// tag name so output is stable.
func (a *Analysis) TopTags(n int) []string {
	tags := make([]string, 0, len(a.Tags))
	for tag := range a.Tags {
		tags = append(tags, tag)
	}

	sort.Slice(tags, func(i, j int) bool {
		if a.Tags[tags[i]] != a.Tags[tags[j]] {
			return a.Tags[tags[i]] > a.Tags[tags[j]]
		}
		return tags[i] < tags[j]
	})

	if n > len(tags) {
		n = len(tags)
	}
	return tags[:n]
}

func sortedFileNames(files map[string][]*Entry) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
