package llm

import (
	"sort"
	"strings"
	"unicode"

	"github.com/credo-scan/credo/internal/model"
)

// reportingMarkers select sentences worth sending to the model
var reportingMarkers = []string{
	"report", "said", "says", "announced", "launched", "found",
	"published", "revealed", "warned", "study", "research", "survey",
	"according to",
}

// ShortlistClaims picks the sentences most likely to carry checkable
// factual claims: sentences with numbers or reporting verbs, padded
// with the longest remaining sentences when too few match. Output
// order is deterministic.
func ShortlistClaims(sentences []model.SentenceSpan, max int) []string {
	if max <= 0 {
		max = 8
	}

	var claims []string
	seen := make(map[string]struct{})
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		claims = append(claims, s)
	}

	for _, sent := range sentences {
		if len(claims) >= max {
			return claims
		}
		if strings.IndexFunc(sent.Text, unicode.IsDigit) >= 0 {
			add(sent.Text)
			continue
		}
		lower := strings.ToLower(sent.Text)
		for _, marker := range reportingMarkers {
			if strings.Contains(lower, marker) {
				add(sent.Text)
				break
			}
		}
	}

	// Too few direct hits: pad with the longest sentences, stably.
	if len(claims) < 3 {
		rest := make([]model.SentenceSpan, len(sentences))
		copy(rest, sentences)
		sort.SliceStable(rest, func(i, j int) bool {
			return len(rest[i].Text) > len(rest[j].Text)
		})
		for _, sent := range rest {
			if len(claims) >= 3 {
				break
			}
			add(sent.Text)
		}
	}

	return claims
}
