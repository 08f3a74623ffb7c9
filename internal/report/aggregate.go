package report

import (
	"math"
	"strings"

	"github.com/credo-scan/credo/internal/heuristics"
	"github.com/credo-scan/credo/internal/model"
)

// Fixed blend weights when both branches contributed (spec'd as
// configurable constants, not tuned values).
const (
	heuristicShare = 0.6
	llmShare       = 0.4
)

// Verdict base values for the LLM subscore; confidence blends the base
// toward a neutral 50.
const (
	baseSupported    = 90.0
	baseUnverifiable = 50.0
	baseDisputed     = 15.0
	baseNeutral      = 50.0
)

// Aggregate merges the heuristic branch and the optional LLM branch
// into the final report. Deterministic: identical inputs produce an
// identical report.
func Aggregate(sentences []model.SentenceSpan, h heuristics.Result, llm *model.LLMResult) model.AnalysisReport {
	rep := model.AnalysisReport{
		HeuristicSubscore: h.Subscore,
		Findings:          h.Findings,
		Provenance:        model.ProvenanceHeuristicOnly,
	}

	rep.Flagged = flagsFromFindings(h.Findings)

	if llm == nil {
		rep.Score = clampScore(h.Subscore)
		return rep
	}

	sub := llmSubscore(*llm)
	rep.LLMSubscore = &sub
	rep.LLM = llm
	rep.Provenance = model.ProvenanceHeuristicPlusLLM
	rep.Score = clampScore(heuristicShare*h.Subscore + llmShare*sub)
	rep.Flagged = append(rep.Flagged, flagsFromClaims(sentences, llm.Claims)...)

	return rep
}

// llmSubscore maps the model's verdict and confidence to [0,100]
func llmSubscore(r model.LLMResult) float64 {
	var base float64
	switch r.Verdict {
	case model.VerdictSupported:
		base = baseSupported
	case model.VerdictDisputed:
		base = baseDisputed
	default:
		base = baseUnverifiable
	}

	conf := r.Confidence
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return base*conf + baseNeutral*(1-conf)
}

// flagsFromFindings turns penalizing findings into report flags.
// Positive findings explain the score but flag nothing.
func flagsFromFindings(findings []model.HeuristicFinding) []model.Flag {
	var flags []model.Flag
	for _, f := range findings {
		if f.Weight >= 0 {
			continue
		}
		flags = append(flags, model.Flag{
			Sentence: f.Sentence,
			Reason:   f.RuleID + ": " + f.Explanation,
			Severity: severityFromWeight(f.Weight),
		})
	}
	return flags
}

// flagsFromClaims maps non-supported LLM claims back to sentences by
// substring containment; unmatched claims surface with sentence -1.
func flagsFromClaims(sentences []model.SentenceSpan, claims []model.ClaimCheck) []model.Flag {
	var flags []model.Flag
	for _, c := range claims {
		if c.Verdict == model.VerdictSupported {
			continue
		}

		severity := model.SeverityMedium
		if c.Verdict == model.VerdictDisputed {
			severity = model.SeverityHigh
		}

		reason := "model flagged claim (" + string(c.Verdict) + ")"
		if c.Note != "" {
			reason += ": " + c.Note
		}

		flags = append(flags, model.Flag{
			Sentence: matchSentence(sentences, c.Text),
			Reason:   reason,
			Severity: severity,
		})
	}
	return flags
}

// matchSentence finds the first sentence containing the claim (or
// contained by it, for claims the model reworded around a sentence).
// Returns -1 when nothing matches.
func matchSentence(sentences []model.SentenceSpan, claim string) int {
	needle := normalizeForMatch(claim)
	if needle == "" {
		return -1
	}
	for i, sent := range sentences {
		hay := normalizeForMatch(sent.Text)
		if strings.Contains(hay, needle) || strings.Contains(needle, hay) {
			return i
		}
	}
	return -1
}

func normalizeForMatch(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func severityFromWeight(weight float64) model.Severity {
	switch w := math.Abs(weight); {
	case w >= 12:
		return model.SeverityHigh
	case w >= 8:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

func clampScore(score float64) int {
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
