package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/credo-scan/credo/internal/model"
)

// ResultStore is the typed view of the response cache used by the LLM
// analyzer: LLMResult in, LLMResult out, keyed by fingerprint.
type ResultStore struct {
	cache Cache
}

// NewResultStore wraps a Cache implementation
func NewResultStore(c Cache) *ResultStore {
	return &ResultStore{cache: c}
}

// Get returns the cached result for a fingerprint. Any decode failure
// is treated as a miss so a corrupted entry cannot fail an analysis.
func (s *ResultStore) Get(fingerprint string) (model.LLMResult, bool) {
	data, found := s.cache.Get(fingerprint)
	if !found {
		return model.LLMResult{}, false
	}

	var entry model.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return model.LLMResult{}, false
	}
	if entry.Fingerprint != fingerprint {
		return model.LLMResult{}, false
	}
	return entry.Payload, true
}

// Put stores a result under its fingerprint, overwriting any previous
// entry. The caller decides whether a persist failure is worth more
// than a warning; analysis must proceed either way.
func (s *ResultStore) Put(fingerprint string, result model.LLMResult) error {
	entry := model.CacheEntry{
		Fingerprint: fingerprint,
		Payload:     result,
		CreatedAt:   time.Now().UTC(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := s.cache.Set(fingerprint, data); err != nil {
		return fmt.Errorf("persist cache entry: %w", err)
	}
	return nil
}
