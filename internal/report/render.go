package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/credo-scan/credo/internal/model"
)

// Renderer writes analysis reports as JSON, Markdown, and a stdout
// summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(rep *model.AnalysisReport, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(rep *model.AnalysisReport, article *model.Article, path string) error {
	var b strings.Builder

	b.WriteString("# Credibility Report\n\n")
	if article != nil {
		if url := article.Metadata["source_url"]; url != "" {
			fmt.Fprintf(&b, "Source: %s\n\n", url)
		}
		if title := article.Metadata["title"]; title != "" {
			fmt.Fprintf(&b, "Title: %s\n\n", title)
		}
	}

	fmt.Fprintf(&b, "## Score: %d/100\n\n", rep.Score)
	fmt.Fprintf(&b, "- Heuristic subscore: %.1f\n", rep.HeuristicSubscore)
	if rep.LLMSubscore != nil {
		fmt.Fprintf(&b, "- LLM subscore: %.1f\n", *rep.LLMSubscore)
	}
	fmt.Fprintf(&b, "- Provenance: %s\n\n", rep.Provenance)

	if rep.LLM != nil {
		fmt.Fprintf(&b, "## Model Analysis (%s)\n\n", rep.LLM.Provenance)
		fmt.Fprintf(&b, "- Verdict: %s (confidence %.2f)\n", rep.LLM.Verdict, rep.LLM.Confidence)
		if rep.LLM.Model != "" {
			fmt.Fprintf(&b, "- Model: %s\n", rep.LLM.Model)
		}
		if rep.LLM.FailureReason != "" {
			fmt.Fprintf(&b, "- Mock reason: %s\n", rep.LLM.FailureReason)
		}
		b.WriteString("\n")
	}

	if len(rep.Flagged) > 0 {
		b.WriteString("## Flagged\n\n")
		for _, f := range rep.Flagged {
			loc := "document"
			if f.Sentence >= 0 {
				loc = fmt.Sprintf("sentence %d", f.Sentence)
			}
			fmt.Fprintf(&b, "- [%s] %s — %s\n", f.Severity, loc, f.Reason)
		}
		b.WriteString("\n")
	}

	if len(rep.Findings) > 0 {
		b.WriteString("## Heuristic Breakdown\n\n")
		b.WriteString("| Rule | Sentence | Weight | Explanation |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, f := range rep.Findings {
			fmt.Fprintf(&b, "| %s | %d | %+.1f | %s |\n", f.RuleID, f.Sentence, f.Weight, f.Explanation)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\nGenerated by credo at %s. Credo scores support and style, not truth.\n",
			time.Now().UTC().Format(time.RFC3339))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a short summary to stdout
func (r *Renderer) RenderSummary(rep *model.AnalysisReport) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Credibility score: %d/100 (%s)\n", rep.Score, rep.Provenance)
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Heuristic subscore: %.1f\n", rep.HeuristicSubscore)
	if rep.LLMSubscore != nil {
		fmt.Printf("  LLM subscore:       %.1f\n", *rep.LLMSubscore)
	}
	if rep.LLM != nil {
		fmt.Printf("  Model verdict:      %s (%s", rep.LLM.Verdict, rep.LLM.Provenance)
		if rep.LLM.FailureReason != "" {
			fmt.Printf(", %s", rep.LLM.FailureReason)
		}
		fmt.Println(")")
	}
	fmt.Printf("  Flags:              %d\n", len(rep.Flagged))
	fmt.Println()
}
