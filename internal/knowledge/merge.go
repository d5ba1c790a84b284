package knowledge

// Merge combines entry sets in order into one list, dropping entries whose
// normalized question was already seen in an earlier set or row. Entries
// without a question are kept as-is so validation can flag them.
func Merge(sets ...[]*Entry) []*Entry {
	seen := make(map[string]bool)
	var merged []*Entry

	for _, set := range sets {
		for _, entry := range set {
			question := entry.NormalizedQuestion()
			if question != "" {
				if seen[question] {
					continue
				}
				seen[question] = true
			}
			merged = append(merged, entry)
		}
	}

	return merged
}
