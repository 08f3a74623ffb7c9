package pipeline

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/credo-scan/credo/internal/ingest"
	"github.com/credo-scan/credo/internal/model"
)

// Overridable for tests
var stdinReader = func() io.Reader { return os.Stdin }

// SourceRunner turns a source reference (URL, file path, or "-" for
// stdin) into an analyzed report. It satisfies the batch worker's
// analyzer contract.
type SourceRunner struct {
	pipeline *Pipeline
	fetcher  *ingest.Fetcher
	opts     model.Options
}

// NewSourceRunner creates a runner bound to fixed analysis options
func (p *Pipeline) NewSourceRunner(opts model.Options) *SourceRunner {
	return &SourceRunner{
		pipeline: p,
		fetcher:  ingest.NewFetcher(p.cfg.HTTP),
		opts:     opts,
	}
}

// LoadSource resolves a source reference into an article
func (r *SourceRunner) LoadSource(ctx context.Context, source string) (*model.Article, error) {
	switch {
	case source == "-":
		return ingest.FromReader(stdinReader())
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return r.fetcher.FetchWithRetry(ctx, source)
	default:
		return ingest.FromFile(source)
	}
}

// AnalyzeSource loads and analyzes one source
func (r *SourceRunner) AnalyzeSource(ctx context.Context, source string) (*model.AnalysisReport, error) {
	article, err := r.LoadSource(ctx, source)
	if err != nil {
		return nil, err
	}
	return r.pipeline.Analyze(ctx, article, r.opts)
}
