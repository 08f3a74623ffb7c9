package llm

import (
	"math"
	"strings"
	"unicode"

	"github.com/credo-scan/credo/internal/model"
)

// Mock synthesizes a deterministic analysis from simple, reproducible
// signals of the input: length, lexical diversity, attribution and
// digit presence. No network I/O, no randomness: the same text always
// yields the same result. failureReason distinguishes "mock because no
// key" from "mock because the live call failed".
func Mock(text string, failureReason string) model.LLMResult {
	norm := strings.Join(strings.Fields(text), " ")
	lower := strings.ToLower(norm)
	words := strings.Fields(lower)

	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	diversity := 0.0
	if len(words) > 0 {
		diversity = float64(len(unique)) / float64(len(words))
	}

	attributed := strings.Contains(lower, "according to") ||
		strings.Contains(lower, " said") ||
		strings.Contains(norm, "\"")
	hasDigits := strings.IndexFunc(norm, unicode.IsDigit) >= 0
	exclaims := strings.Count(norm, "!")

	verdict := model.VerdictUnverifiable
	switch {
	case attributed && diversity >= 0.5:
		verdict = model.VerdictSupported
	case !attributed && exclaims >= 3:
		verdict = model.VerdictDisputed
	}

	confidence := 0.40
	if attributed {
		confidence += 0.15
	}
	if hasDigits {
		confidence += 0.10
	}
	if len(norm) >= 1200 {
		confidence += 0.05
	}
	confidence = math.Round(confidence*100) / 100

	result := model.LLMResult{
		Verdict:       verdict,
		Confidence:    confidence,
		Provenance:    model.ProvenanceMock,
		FailureReason: failureReason,
	}

	// Long unattributed texts get their opening statement flagged for
	// verification, mirroring what a live analysis would surface first.
	if len(norm) > 300 && !attributed {
		first := norm
		if idx := strings.IndexAny(norm, ".!?"); idx >= 0 {
			first = norm[:idx+1]
		}
		result.Claims = []model.ClaimCheck{{
			Text:    first,
			Verdict: model.VerdictUnverifiable,
			Note:    "statement may require verification (no attributed source found)",
		}}
	}

	return result
}
