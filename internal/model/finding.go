package model

// HeuristicFinding is a single rule hit against the sentence sequence
type HeuristicFinding struct {
	Sentence    int     `json:"sentence"`    // Sentence index (0-based), -1 for document-level findings
	RuleID      string  `json:"rule_id"`     // Which rule fired (e.g. "clickbait_lexicon")
	Weight      float64 `json:"weight"`      // Signed score contribution (negative = penalty)
	Explanation string  `json:"explanation"` // Human-readable rationale with the rule's inputs
}

// Severity indicates the importance of a flagged sentence or claim
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Flag is one flagged sentence or claim in the final report
type Flag struct {
	Sentence int      `json:"sentence"` // Sentence index, -1 when no sentence matched
	Reason   string   `json:"reason"`
	Severity Severity `json:"severity"`
}
