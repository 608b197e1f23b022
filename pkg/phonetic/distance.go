package phonetic

import "slices"

// EditDistance returns the Levenshtein distance between two phoneme
// sequences. Insertions, deletions and substitutions all cost 1.
// Distance is over whole tokens, never characters: "AE1" vs "AE0" is
// one substitution.
func EditDistance(a, b []Phoneme) int {
	if slices.Equal(a, b) {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// Similarity returns a normalized score in [0,1]: 1 minus the edit
// distance over the longer length. Two empty sequences are identical.
func Similarity(a, b []Phoneme) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	longest := max(len(a), len(b))
	s := 1.0 - float64(EditDistance(a, b))/float64(longest)
	return min(max(s, 0.0), 1.0)
}
