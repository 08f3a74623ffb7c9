package llm

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/time/rate"

	"github.com/credo-scan/credo/internal/cache"
	"github.com/credo-scan/credo/internal/config"
	"github.com/credo-scan/credo/internal/model"
)

// Analyzer produces an LLMResult for an article: cache hit first, then
// a live call when a provider is configured, and the deterministic mock
// whenever neither is possible. It never returns an error for upstream
// conditions; every failure mode degrades to a tagged result.
type Analyzer struct {
	provider Provider // nil = mock path (no credential or LLM disabled)
	store    *cache.ResultStore
	limiter  *rate.Limiter
	cfg      config.LLMConfig
	verbose  bool
}

// NewAnalyzer creates an Analyzer. store may be nil (caching disabled).
// The only possible error is an unknown provider name, which the
// options validation should have caught already.
func NewAnalyzer(cfg config.LLMConfig, store *cache.ResultStore, verbose bool) (*Analyzer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Analyzer{
		provider: provider,
		store:    store,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		cfg:      cfg,
		verbose:  verbose,
	}, nil
}

// Analyze runs the cache/live/mock decision for one article. sentences
// is the segmented article (used to shortlist claims for the prompt).
func (a *Analyzer) Analyze(ctx context.Context, text string, sentences []model.SentenceSpan, opts model.Options) model.LLMResult {
	fingerprint := cache.Fingerprint(text, opts)

	// 1. Cache hit: return the stored payload, retagged.
	if a.store != nil {
		if cached, found := a.store.Get(fingerprint); found {
			cached.Provenance = model.ProvenanceCached
			cached.FailureReason = ""
			return cached
		}
	}

	// 2. No usable credential: deterministic mock, no network I/O.
	if a.provider == nil {
		return Mock(text, model.FailureCredentialMissing)
	}

	// 3. Live call, paced and bounded. Rate-limit denial only happens
	// when the context is already done; treat it like any upstream
	// failure.
	if err := a.limiter.Wait(ctx); err != nil {
		return Mock(text, fmt.Sprintf("upstream: %v", err))
	}

	req := AnalyzeRequest{
		Text:          text,
		Claims:        ShortlistClaims(sentences, 8),
		Model:         opts.ModelName,
		PromptVersion: opts.PromptVersion,
		MaxTokens:     a.cfg.MaxTokens,
	}

	result, err := a.provider.Analyze(ctx, req)
	if err != nil {
		// 4. Upstream failure: fall back to the mock, annotated so the
		// caller can tell it apart from the no-key mock.
		if a.verbose {
			fmt.Fprintf(os.Stderr, "Warning: LLM call failed, using mock analysis: %v\n", err)
		}
		return Mock(text, fmt.Sprintf("upstream: %v", err))
	}

	// 5. Store the live result; a persist failure costs the cache
	// entry, never the analysis.
	if a.store != nil {
		if err := a.store.Put(fingerprint, *result); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to cache LLM result: %v\n", err)
		}
	}

	return *result
}

// ProviderName returns the active provider name, "" on the mock path
func (a *Analyzer) ProviderName() string {
	if a.provider == nil {
		return ""
	}
	return a.provider.Name()
}
