package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/credo-scan/credo/internal/model"
)

// SourceAnalyzer analyzes one source (a URL or a file path) into a
// credibility report.
type SourceAnalyzer interface {
	AnalyzeSource(ctx context.Context, source string) (*model.AnalysisReport, error)
}

// AnalyzeJob analyzes one source
type AnalyzeJob struct {
	Source   string
	Analyzer SourceAnalyzer
	Limiter  *Limiter // Nil for non-URL sources
}

// Execute runs the analysis, pacing URL fetches through the limiter
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil && isURL(j.Source) {
		if err := j.Limiter.Wait(ctx, j.Source); err != nil {
			return &AnalyzeResult{Source: j.Source, Error: err}
		}
	}

	report, err := j.Analyzer.AnalyzeSource(ctx, j.Source)
	return &AnalyzeResult{Source: j.Source, Report: report, Error: err}
}

// AnalyzeResult is the outcome of one batch item
type AnalyzeResult struct {
	Source string
	Report *model.AnalysisReport
	Error  error
}

// GetError returns the analysis error, if any
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many sources concurrently. One failing
// source never aborts the batch; its error rides in the result.
type BatchProcessor struct {
	analyzer    SourceAnalyzer
	limiter     *Limiter
	concurrency int
}

// NewBatchProcessor creates a batch processor. requestsPerSec and
// burst configure per-domain fetch pacing for URL sources.
func NewBatchProcessor(analyzer SourceAnalyzer, concurrency int, requestsPerSec float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSec > 0 {
		limiter = NewLimiter(requestsPerSec, burst)
	}
	return &BatchProcessor{
		analyzer:    analyzer,
		limiter:     limiter,
		concurrency: concurrency,
	}
}

// ProcessSources analyzes the sources concurrently
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string) []*AnalyzeResult {
	if len(sources) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, source := range sources {
		pool.Submit(&AnalyzeJob{
			Source:   source,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}
	return analyzeResults
}

// ProcessFile reads sources from a list file and analyzes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}
	return b.ProcessSources(ctx, sources), nil
}

// ReadSourcesFromFile reads one source per line, skipping blank lines
// and # comments, deduplicating while preserving order.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return sources, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
