package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/credo-scan/credo/internal/cache"
	"github.com/credo-scan/credo/internal/config"
	"github.com/credo-scan/credo/internal/heuristics"
	"github.com/credo-scan/credo/internal/llm"
	"github.com/credo-scan/credo/internal/model"
	"github.com/credo-scan/credo/internal/report"
	"github.com/credo-scan/credo/internal/segment"
)

// ErrInvalidOptions is the only fatal analysis error: a malformed
// option set, rejected before any I/O.
var ErrInvalidOptions = errors.New("invalid analysis options")

// Pipeline orchestrates the complete analysis: segmentation, the two
// scorer branches, and the merge into one report.
type Pipeline struct {
	segmenter *segment.Segmenter
	scorer    *heuristics.Scorer
	analyzer  *llm.Analyzer
	renderer  *report.Renderer
	cfg       *config.Config
}

// New creates a pipeline from configuration. The only construction
// error is an unknown LLM provider name.
func New(cfg *config.Config) (*Pipeline, error) {
	var store *cache.ResultStore
	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		store = cache.NewResultStore(cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir))
	}

	analyzer, err := llm.NewAnalyzer(cfg.LLM, store, cfg.Output.Verbose)
	if err != nil {
		return nil, fmt.Errorf("configure LLM analyzer: %w", err)
	}

	return &Pipeline{
		segmenter: segment.New(cfg.Segment.AbbrevFile),
		scorer:    heuristics.NewScorer(cfg.Heuristics),
		analyzer:  analyzer,
		renderer:  report.NewRenderer(cfg.Output.IncludeFooter),
		cfg:       cfg,
	}, nil
}

// ValidateOptions rejects malformed option sets before any I/O
func (p *Pipeline) ValidateOptions(opts model.Options) error {
	if !opts.UseLLM {
		return nil
	}
	if opts.ModelName == "" {
		return fmt.Errorf("%w: use_llm set but model_name empty", ErrInvalidOptions)
	}
	for _, m := range p.cfg.LLM.RecognizedModels {
		if m == opts.ModelName {
			return nil
		}
	}
	return fmt.Errorf("%w: unrecognized model_name %q", ErrInvalidOptions, opts.ModelName)
}

// Analyze runs one article through the full pipeline. The heuristic
// branch runs synchronously while the LLM branch (the only blocking
// operation) runs concurrently; the report is built only after both
// branches have completed or failed over.
func (p *Pipeline) Analyze(ctx context.Context, article *model.Article, opts model.Options) (*model.AnalysisReport, error) {
	if err := p.ValidateOptions(opts); err != nil {
		return nil, err
	}

	// 1. Segment once; both branches share the spans.
	sentences := p.segmenter.Segment(article.RawText)

	// 2. LLM branch, if requested.
	var llmCh chan model.LLMResult
	if opts.UseLLM {
		llmCh = make(chan model.LLMResult, 1)
		go func() {
			llmCh <- p.analyzer.Analyze(ctx, article.RawText, sentences, opts)
		}()
	}

	// 3. Heuristic branch.
	heuristicResult := p.scorer.Score(sentences)

	// 4. Join: the analyzer always delivers (worst case a mock), so
	// this cannot block past the LLM timeout.
	var llmResult *model.LLMResult
	if llmCh != nil {
		r := <-llmCh
		llmResult = &r
	}

	// 5. Merge.
	rep := report.Aggregate(sentences, heuristicResult, llmResult)
	return &rep, nil
}

// RenderReport renders the report to the configured outputs
func (p *Pipeline) RenderReport(rep *model.AnalysisReport, article *model.Article, jsonPath, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(rep, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if p.cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(rep, article, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if p.cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(rep)
	return nil
}
