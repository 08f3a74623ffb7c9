package model

// ReportProvenance records which branches contributed to the final score
type ReportProvenance string

const (
	ProvenanceHeuristicOnly    ReportProvenance = "heuristic_only"
	ProvenanceHeuristicPlusLLM ReportProvenance = "heuristic_plus_llm"
)

// AnalysisReport is the final merged credibility report. Immutable
// once built; owned by the caller for display. Deliberately carries no
// timestamp: identical inputs must produce identical reports.
type AnalysisReport struct {
	Score             int                `json:"score"` // 0-100, higher = more credible
	Flagged           []Flag             `json:"flagged,omitempty"`
	HeuristicSubscore float64            `json:"heuristic_subscore"`
	LLMSubscore       *float64           `json:"llm_subscore,omitempty"` // Absent without an LLM result
	Provenance        ReportProvenance   `json:"provenance"`
	Findings          []HeuristicFinding `json:"findings,omitempty"` // Full heuristic breakdown
	LLM               *LLMResult         `json:"llm,omitempty"`      // Model-side analysis, if requested
}
