package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/credo-scan/credo/internal/model"
)

// hashPrefixLen bounds how much text feeds the identity hash
const hashPrefixLen = 5000

// FromFile reads a plain-text article from disk
func FromFile(path string) (*model.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read article: %w", err)
	}

	article := &model.Article{
		RawText: NormalizeWhitespace(string(data)),
		Metadata: map[string]string{
			"source_type": "file",
			"source_path": path,
		},
	}
	stampHash(article)
	return article, nil
}

// FromReader reads a plain-text article from a stream, typically stdin
func FromReader(r io.Reader) (*model.Article, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read article: %w", err)
	}

	article := &model.Article{
		RawText:  NormalizeWhitespace(string(data)),
		Metadata: map[string]string{"source_type": "stdin"},
	}
	stampHash(article)
	return article, nil
}

// stampHash records a short identity hash of the article text
func stampHash(a *model.Article) {
	text := a.RawText
	if len(text) > hashPrefixLen {
		text = text[:hashPrefixLen]
	}
	sum := sha256.Sum256([]byte(text))
	if a.Metadata == nil {
		a.Metadata = make(map[string]string)
	}
	a.Metadata["hash"] = hex.EncodeToString(sum[:8])
}
