package llm

import (
	"testing"

	"github.com/credo-scan/credo/internal/model"
)

func TestParseAnalysis_DirectJSON(t *testing.T) {
	raw := `{"verdict":"disputed","confidence":0.8,"claims":[{"text":"X happened","verdict":"disputed","note":"no source"}]}`

	result, err := parseAnalysis(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Verdict != model.VerdictDisputed {
		t.Errorf("Expected disputed, got %s", result.Verdict)
	}
	if result.Confidence != 0.8 {
		t.Errorf("Expected confidence 0.8, got %v", result.Confidence)
	}
	if len(result.Claims) != 1 || result.Claims[0].Note != "no source" {
		t.Errorf("Unexpected claims: %+v", result.Claims)
	}
}

func TestParseAnalysis_WrappedInProse(t *testing.T) {
	raw := "Here is the analysis you asked for:\n```json\n" +
		`{"verdict":"supported","confidence":0.6,"claims":[]}` +
		"\n```\nLet me know if you need anything else."

	result, err := parseAnalysis(raw)
	if err != nil {
		t.Fatalf("Expected wrapped JSON to parse, got %v", err)
	}
	if result.Verdict != model.VerdictSupported {
		t.Errorf("Expected supported, got %s", result.Verdict)
	}
}

func TestParseAnalysis_BracesInsideStrings(t *testing.T) {
	raw := `{"verdict":"unverifiable","confidence":0.5,"claims":[{"text":"the {budget} grew","verdict":"unverifiable","note":""}]}`

	result, err := parseAnalysis(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Claims[0].Text != "the {budget} grew" {
		t.Errorf("Braces inside strings mangled: %q", result.Claims[0].Text)
	}
}

func TestParseAnalysis_ControlCharacters(t *testing.T) {
	raw := "{\"verdict\":\"supported\",\x07\"confidence\":0.7,\"claims\":[]}"

	result, err := parseAnalysis(raw)
	if err != nil {
		t.Fatalf("Expected control characters to be sanitized, got %v", err)
	}
	if result.Confidence != 0.7 {
		t.Errorf("Expected confidence 0.7, got %v", result.Confidence)
	}
}

func TestParseAnalysis_Malformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"I could not produce JSON, sorry.",
		`{"verdict":"maybe","confidence":0.5}`,
		`{"verdict":"supported","confidence":`,
	} {
		if _, err := parseAnalysis(raw); err == nil {
			t.Errorf("Expected error for %q", raw)
		}
	}
}

func TestParseAnalysis_ConfidenceClamped(t *testing.T) {
	result, err := parseAnalysis(`{"verdict":"supported","confidence":3.5,"claims":[]}`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Confidence != 1 {
		t.Errorf("Expected confidence clamped to 1, got %v", result.Confidence)
	}
}
