package llm

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/credo-scan/credo/internal/cache"
	"github.com/credo-scan/credo/internal/config"
	"github.com/credo-scan/credo/internal/model"
)

// stubProvider implements the Provider interface for testing
type stubProvider struct {
	name     string
	response *model.LLMResult
	err      error
	calls    int
}

func (p *stubProvider) Name() string {
	return p.name
}

func (p *stubProvider) Analyze(ctx context.Context, req AnalyzeRequest) (*model.LLMResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	out := *p.response
	return &out, nil
}

func testAnalyzer(t *testing.T, provider Provider) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(config.DefaultConfig().LLM, cache.NewResultStore(cache.NewDiskCache(t.TempDir())), false)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	a.provider = provider
	return a
}

func TestAnalyze_NoCredentialYieldsDeterministicMock(t *testing.T) {
	a := testAnalyzer(t, nil)
	opts := model.Options{UseLLM: true, ModelName: "gpt-4o-mini", PromptVersion: "v1"}
	text := "A long unattributed statement about miracle outcomes. It goes on without naming anyone. " +
		strings.Repeat("More filler prose to push past the length threshold. ", 5)

	first := a.Analyze(context.Background(), text, nil, opts)
	second := a.Analyze(context.Background(), text, nil, opts)

	if first.Provenance != model.ProvenanceMock {
		t.Errorf("Expected mock provenance, got %s", first.Provenance)
	}
	if first.FailureReason != model.FailureCredentialMissing {
		t.Errorf("Expected credential_missing reason, got %q", first.FailureReason)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Mock not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAnalyze_UpstreamFailureFallsBackToAnnotatedMock(t *testing.T) {
	provider := &stubProvider{name: "openai", err: errors.New("429 rate limited")}
	a := testAnalyzer(t, provider)
	opts := model.Options{UseLLM: true, ModelName: "gpt-4o-mini", PromptVersion: "v1"}

	result := a.Analyze(context.Background(), "Some article text.", nil, opts)

	if result.Provenance != model.ProvenanceMock {
		t.Errorf("Expected mock provenance after upstream failure, got %s", result.Provenance)
	}
	if !strings.HasPrefix(result.FailureReason, "upstream:") {
		t.Errorf("Expected upstream failure reason, got %q", result.FailureReason)
	}
	if result.FailureReason == model.FailureCredentialMissing {
		t.Error("Upstream failure must be distinguishable from a missing credential")
	}
}

func TestAnalyze_LiveResultCachedThenServedWithoutProvider(t *testing.T) {
	live := &model.LLMResult{
		Verdict:    model.VerdictSupported,
		Confidence: 0.9,
		Claims:     []model.ClaimCheck{{Text: "claim", Verdict: model.VerdictSupported}},
		Provenance: model.ProvenanceLive,
		Model:      "gpt-4o-mini",
	}
	provider := &stubProvider{name: "openai", response: live}
	a := testAnalyzer(t, provider)
	opts := model.Options{UseLLM: true, ModelName: "gpt-4o-mini", PromptVersion: "v1"}
	text := "The agency said output rose 4 percent."

	first := a.Analyze(context.Background(), text, nil, opts)
	if first.Provenance != model.ProvenanceLive {
		t.Fatalf("Expected live provenance on first call, got %s", first.Provenance)
	}
	if provider.calls != 1 {
		t.Fatalf("Expected 1 provider call, got %d", provider.calls)
	}

	// Credential removed before the second call: the cache, not a
	// fresh mock, must serve the same payload.
	a.provider = nil
	second := a.Analyze(context.Background(), text, nil, opts)

	if second.Provenance != model.ProvenanceCached {
		t.Errorf("Expected cached provenance, got %s", second.Provenance)
	}
	if second.Verdict != first.Verdict || second.Confidence != first.Confidence {
		t.Errorf("Cached payload differs from live result: %+v vs %+v", second, first)
	}
	if !reflect.DeepEqual(second.Claims, first.Claims) {
		t.Error("Cached claims differ from live result")
	}
}

func TestAnalyze_RepeatCallsAreSideEffectFree(t *testing.T) {
	live := &model.LLMResult{Verdict: model.VerdictUnverifiable, Confidence: 0.5, Provenance: model.ProvenanceLive}
	provider := &stubProvider{name: "openai", response: live}
	a := testAnalyzer(t, provider)
	opts := model.Options{UseLLM: true, ModelName: "gpt-4o-mini", PromptVersion: "v1"}

	for i := 0; i < 3; i++ {
		a.Analyze(context.Background(), "stable text", nil, opts)
	}

	if provider.calls != 1 {
		t.Errorf("Expected a single upstream call for a stable fingerprint, got %d", provider.calls)
	}
}

func TestAnalyze_CacheDisabled(t *testing.T) {
	live := &model.LLMResult{Verdict: model.VerdictSupported, Confidence: 0.8, Provenance: model.ProvenanceLive}
	provider := &stubProvider{name: "openai", response: live}

	a, err := NewAnalyzer(config.DefaultConfig().LLM, nil, false)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	a.provider = provider
	opts := model.Options{UseLLM: true, ModelName: "gpt-4o-mini"}

	a.Analyze(context.Background(), "text", nil, opts)
	a.Analyze(context.Background(), "text", nil, opts)

	if provider.calls != 2 {
		t.Errorf("Expected 2 upstream calls with caching disabled, got %d", provider.calls)
	}
}

func TestMock_Signals(t *testing.T) {
	attributed := Mock(`"Output rose 4 percent," the ministry said, according to the report. The figures were audited and cross checked by independent reviewers.`, "")
	if attributed.Verdict != model.VerdictSupported {
		t.Errorf("Expected supported verdict for attributed text, got %s", attributed.Verdict)
	}

	shouty := Mock("Wake up!!! They are hiding it! Nobody reports this!", "")
	if shouty.Verdict != model.VerdictDisputed {
		t.Errorf("Expected disputed verdict for unattributed shouting, got %s", shouty.Verdict)
	}

	if attributed.Confidence <= shouty.Confidence {
		t.Errorf("Expected attributed confidence (%v) above shouty confidence (%v)", attributed.Confidence, shouty.Confidence)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	cfg := config.DefaultConfig().LLM
	cfg.Provider = "mystery"
	if _, err := NewProvider(cfg); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestNewProvider_MissingKeyIsMockPathNotError(t *testing.T) {
	cfg := config.DefaultConfig().LLM
	cfg.Provider = "openai"
	cfg.APIKey = ""

	p, err := NewProvider(cfg)
	if err != nil {
		t.Fatalf("Expected no error without credential, got %v", err)
	}
	if p != nil {
		t.Error("Expected nil provider without credential")
	}
}
