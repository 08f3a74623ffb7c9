package ingest

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf", "line one\r\nline two\rline three", "line one\nline two\nline three"},
		{"space runs", "too   many\t\tspaces", "too many spaces"},
		{"blank lines capped", "a\n\n\n\n\nb", "a\n\nb"},
		{"hyphen at break", "under-\nstanding", "understanding"},
		{"space before punct", "wrong , spacing !", "wrong, spacing!"},
		{"trimmed", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeWhitespace(tt.in); got != tt.want {
				t.Errorf("NormalizeWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeWhitespace_Idempotent(t *testing.T) {
	in := "First   line.\r\n\r\n\r\n\r\nSecond re-\njoined line , done ."
	once := NormalizeWhitespace(in)
	twice := NormalizeWhitespace(once)
	if once != twice {
		t.Errorf("Not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}
