package util

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ScoreCompletions ranks candidates against input and keeps the best n
// (n <= 0 keeps all). Matching ignores case; prefix matches rank first,
// then fuzzy score order.
func ScoreCompletions(input string, candidates []string, n int) []string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return candidates
	}
	lowered := make([]string, len(candidates))
	for i, c := range candidates {
		lowered[i] = strings.ToLower(c)
	}
	matches := fuzzy.Find(input, lowered)
	sort.SliceStable(matches, func(i, j int) bool {
		pi := strings.HasPrefix(matches[i].Str, input)
		pj := strings.HasPrefix(matches[j].Str, input)
		return pi && !pj
	})

	if n <= 0 || n > len(matches) {
		n = len(matches)
	}
	out := make([]string, 0, n)
	for _, m := range matches[:n] {
		out = append(out, candidates[m.Index])
	}
	return out
}
