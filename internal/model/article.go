package model

// Article is the normalized input to the analysis pipeline.
// Ingestion produces it; the pipeline only ever reads it.
type Article struct {
	RawText  string            `json:"raw_text"`           // Normalized article text
	Metadata map[string]string `json:"metadata,omitempty"` // e.g. source_url, title, extraction method
}

// SentenceSpan is one sentence located within the article text
type SentenceSpan struct {
	Text  string `json:"text"`
	Start int    `json:"start"` // Byte offset of the first rune in the article
	End   int    `json:"end"`   // Byte offset one past the last rune
}

// Options selects how an article is analyzed.
// ModelName and PromptVersion are part of the cache fingerprint.
type Options struct {
	UseLLM        bool   `json:"use_llm"`
	ModelName     string `json:"model_name,omitempty"`
	PromptVersion string `json:"prompt_version,omitempty"`
}
