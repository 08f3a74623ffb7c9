package model

import "time"

// Verdict is the model's overall judgement of how well the article's
// claims are supported. Credo never asserts truth, only support.
type Verdict string

const (
	VerdictSupported    Verdict = "supported"
	VerdictDisputed     Verdict = "disputed"
	VerdictUnverifiable Verdict = "unverifiable"
)

// Provenance records where an LLMResult came from
type Provenance string

const (
	ProvenanceLive   Provenance = "live"   // Fresh upstream model response
	ProvenanceCached Provenance = "cached" // Served from the response cache
	ProvenanceMock   Provenance = "mock"   // Deterministic local substitute
)

// Failure reasons for mock results. Both produce ProvenanceMock; the
// reason lets callers tell "no key" apart from "live call failed".
const (
	FailureCredentialMissing = "credential_missing"
)

// ClaimCheck is one claim the model examined
type ClaimCheck struct {
	Text    string  `json:"text"`
	Verdict Verdict `json:"verdict"`
	Note    string  `json:"note,omitempty"`
}

// LLMResult is the model-side analysis of an article
type LLMResult struct {
	Verdict       Verdict      `json:"verdict"`
	Confidence    float64      `json:"confidence"` // [0,1]
	Claims        []ClaimCheck `json:"claims,omitempty"`
	Provenance    Provenance   `json:"provenance"`
	FailureReason string       `json:"failure_reason,omitempty"` // Set only for mock results
	Model         string       `json:"model,omitempty"`          // Model that produced a live result
}

// CacheEntry is the persisted form of an LLMResult keyed by fingerprint
type CacheEntry struct {
	Fingerprint string    `json:"fingerprint"`
	Payload     LLMResult `json:"payload"`
	CreatedAt   time.Time `json:"created_at"`
}
