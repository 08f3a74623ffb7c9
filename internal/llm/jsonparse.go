package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/credo-scan/credo/internal/model"
)

// Lenient parsing for model responses that should be JSON but often
// arrive wrapped in prose or code fences.

type analysisPayload struct {
	Verdict    string         `json:"verdict"`
	Confidence float64        `json:"confidence"`
	Claims     []claimPayload `json:"claims"`
}

type claimPayload struct {
	Text    string `json:"text"`
	Verdict string `json:"verdict"`
	Note    string `json:"note"`
}

// parseAnalysis turns raw model output into an LLMResult. Steps:
// sanitize control characters, try a direct parse, then try the first
// balanced {...} block. Anything else is a malformed response.
func parseAnalysis(raw string) (*model.LLMResult, error) {
	cleaned := sanitizeForJSON(raw)

	var payload analysisPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		candidate := extractJSONObject(cleaned)
		if candidate == "" {
			return nil, fmt.Errorf("no JSON object in response")
		}
		if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}

	verdict, ok := parseVerdict(payload.Verdict)
	if !ok {
		return nil, fmt.Errorf("unknown verdict %q", payload.Verdict)
	}

	confidence := payload.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	result := &model.LLMResult{
		Verdict:    verdict,
		Confidence: confidence,
	}
	for _, c := range payload.Claims {
		cv, ok := parseVerdict(c.Verdict)
		if !ok {
			cv = model.VerdictUnverifiable
		}
		result.Claims = append(result.Claims, model.ClaimCheck{
			Text:    strings.TrimSpace(c.Text),
			Verdict: cv,
			Note:    strings.TrimSpace(c.Note),
		})
	}
	return result, nil
}

func parseVerdict(s string) (model.Verdict, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "supported":
		return model.VerdictSupported, true
	case "disputed":
		return model.VerdictDisputed, true
	case "unverifiable":
		return model.VerdictUnverifiable, true
	}
	return "", false
}

// sanitizeForJSON removes C0 control characters that break decoding
// while keeping \n and \t, and normalizes CRLF to LF.
func sanitizeForJSON(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' && r != '\t' {
			return ' '
		}
		return r
	}, s)
}

// extractJSONObject finds the first balanced {...} block in s, if any.
// Braces inside JSON strings are skipped.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
