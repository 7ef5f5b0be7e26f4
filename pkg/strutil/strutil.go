package strutil

// ContainsAPart reports whether at least one of items contains part according to comparison.
// It returns false for an empty slice. An empty part is contained by every string.
func ContainsAPart(items []string, part string, comparison Comparison) bool {
	for _, item := range items {
		if comparison.Contains(item, part) {
			return true
		}
	}

	return false
}

// ContainsAPartNullable behaves like ContainsAPart, except that items may hold nil elements,
// which never match.
func ContainsAPartNullable(items []*string, part string, comparison Comparison) bool {
	for _, item := range items {
		if item != nil && comparison.Contains(*item, part) {
			return true
		}
	}

	return false
}

// DedupeStrSlice returns in without duplicates, keeping the first occurrence of each string.
func DedupeStrSlice(in []string) []string {
	seen := make(map[string]struct{}, len(in))

	var res []string

	for _, s := range in {
		if _, ok := seen[s]; !ok {
			res = append(res, s)
			seen[s] = struct{}{}
		}
	}

	return res
}
