package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/credo-scan/credo/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Analyze asks the model for a credibility analysis of the article
	Analyze(ctx context.Context, req AnalyzeRequest) (*model.LLMResult, error)
}

// AnalyzeRequest contains the input for a model-side analysis
type AnalyzeRequest struct {
	// Text is the normalized article text
	Text string

	// Claims is the shortlist of factual claims to examine
	Claims []string

	// Model is the specific model to use (provider-specific)
	Model string

	// PromptVersion selects the prompt template
	PromptVersion string

	// MaxTokens limits the response length
	MaxTokens int
}

// excerptLimit bounds how much article text goes into the prompt
const excerptLimit = 4000

// BuildPrompt constructs the analysis prompt. The model is instructed
// to return JSON only; parsing stays lenient regardless.
func BuildPrompt(req AnalyzeRequest) string {
	excerpt := req.Text
	if len(excerpt) > excerptLimit {
		excerpt = excerpt[:excerptLimit]
	}

	var claims strings.Builder
	for i, c := range req.Claims {
		if i >= 8 {
			break
		}
		claims.WriteString("- ")
		claims.WriteString(c)
		claims.WriteString("\n")
	}
	if claims.Len() == 0 {
		claims.WriteString("(no claims shortlisted; judge the article text directly)\n")
	}

	return fmt.Sprintf(`You are an expert fact-check assistant. For the provided article, return ONLY valid JSON matching this schema:
{"verdict":"supported|disputed|unverifiable","confidence":number in [0,1],"claims":[{"text":string,"verdict":"supported|disputed|unverifiable","note":string}]}

The verdict describes how well the article's claims are supported by attributed sources WITHIN the text. Do not assert truth; judge support.

Article text (excerpt):
%s

Claims to examine (one per line):
%s
For each claim include text, verdict, and note. Do not include any commentary or extra fields.`, excerpt, claims.String())
}
