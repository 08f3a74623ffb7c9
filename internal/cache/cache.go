package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/credo-scan/credo/internal/model"
)

// Cache defines the interface for response caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
	Clear() error
}

// Fingerprint derives the deterministic cache key for an analysis
// request: a hash over the normalized article text and the exact option
// set that affects the LLM request. The credential is deliberately not
// part of the key and never stored alongside the entry.
func Fingerprint(text string, opts model.Options) string {
	h := sha256.New()
	h.Write([]byte(normalize(text)))
	h.Write([]byte{0})
	h.Write([]byte(opts.ModelName))
	h.Write([]byte{0})
	h.Write([]byte(opts.PromptVersion))
	return "credo:v1:" + hex.EncodeToString(h.Sum(nil))
}

// normalize collapses whitespace runs so trivially reformatted copies
// of the same text share a fingerprint.
func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
