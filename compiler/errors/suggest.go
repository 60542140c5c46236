package errors

import "strings"

// maxSuggestionDistance bounds how far (in Levenshtein edits) a
// candidate name may be from an undeclared identifier before it stops
// being worth suggesting, adapted from the teacher's CLI fuzzy-matcher
// used for its "did you mean" resource-name suggestions.
const maxSuggestionDistance = 3

// Suggest returns the closest name in candidates to target, or "" if
// none falls within maxSuggestionDistance. The analyzer calls this when
// reporting UndeclaredIdentifier/InvalidMemberAccess to offer a
// correction alongside the diagnostic.
func Suggest(target string, candidates []string) string {
	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, candidate := range candidates {
		d := levenshtein(strings.ToLower(target), strings.ToLower(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur := min3(row[j]+1, row[j-1]+1, prev+cost)
			prev = row[j]
			row[j] = cur
		}
	}
	return row[len(b)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
