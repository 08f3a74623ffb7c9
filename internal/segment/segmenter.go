package segment

import (
	"bufio"
	"os"
	"strings"
	"unicode"

	"github.com/credo-scan/credo/internal/model"
)

// Segmenter splits article text into sentence spans. Two strategies are
// available: the primary splitter consumes an abbreviation resource, the
// fallback uses a small built-in guard list. The probe at construction
// time decides which one runs; Segment itself never fails.
type Segmenter struct {
	abbrevs map[string]struct{} // nil when the resource is unavailable
}

// fallbackAbbrevs guards the fallback splitter against the most common
// abbreviation-driven over-splits.
var fallbackAbbrevs = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {},
	"sr": {}, "jr": {}, "st": {}, "no": {}, "vs": {},
	"inc": {}, "ltd": {}, "co": {}, "corp": {}, "dept": {},
	"e.g": {}, "i.e": {}, "etc": {}, "approx": {},
	"u.s": {}, "u.k": {}, "u.n": {}, "d.c": {},
	"jan": {}, "feb": {}, "mar": {}, "apr": {}, "jun": {},
	"jul": {}, "aug": {}, "sep": {}, "sept": {}, "oct": {},
	"nov": {}, "dec": {}, "fig": {}, "vol": {}, "pp": {},
}

// New creates a Segmenter. resourcePath names an abbreviation list file
// (one lowercase abbreviation per line, '#' comments); an empty path or
// any load failure selects the fallback strategy.
func New(resourcePath string) *Segmenter {
	abbrevs, err := loadAbbrevResource(resourcePath)
	if err != nil {
		// Resource unavailable: fall back, never surface the failure.
		return &Segmenter{}
	}
	return &Segmenter{abbrevs: abbrevs}
}

// loadAbbrevResource reads the abbreviation resource file
func loadAbbrevResource(path string) (map[string]struct{}, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	abbrevs := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		abbrevs[strings.ToLower(strings.TrimSuffix(line, "."))] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(abbrevs) == 0 {
		return nil, os.ErrNotExist
	}
	return abbrevs, nil
}

// UsingResource reports whether the primary (resource-backed) strategy
// is active.
func (s *Segmenter) UsingResource() bool {
	return s.abbrevs != nil
}

// Segment splits text into ordered, non-overlapping sentence spans.
// It never panics to the caller: on any internal failure the whole text
// is returned as a single span. Empty input yields no spans.
func (s *Segmenter) Segment(text string) (spans []model.SentenceSpan) {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			spans = []model.SentenceSpan{wholeTextSpan(text)}
		}
	}()

	abbrevs := s.abbrevs
	if abbrevs == nil {
		abbrevs = fallbackAbbrevs
	}

	spans = split(text, abbrevs)
	if len(spans) == 0 {
		spans = []model.SentenceSpan{wholeTextSpan(text)}
	}
	return spans
}

// split walks the runes once, closing a span at each terminator that
// passes the boundary checks. Deterministic: same text, same spans.
func split(text string, abbrevs map[string]struct{}) []model.SentenceSpan {
	runes := []rune(text)
	offsets := runeByteOffsets(text)

	var spans []model.SentenceSpan
	sentStart := -1 // rune index of first non-space rune in current sentence

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if sentStart == -1 {
			if unicode.IsSpace(r) {
				continue
			}
			sentStart = i
		}

		if r != '.' && r != '!' && r != '?' {
			continue
		}

		// Swallow runs of terminators ("!!!", "?!") and closing quotes.
		end := i
		for end+1 < len(runes) && isTerminator(runes[end+1]) {
			end++
		}
		for end+1 < len(runes) && isClosingQuote(runes[end+1]) {
			end++
		}

		if !isBoundary(runes, i, end, abbrevs) {
			i = end
			continue
		}

		spans = append(spans, model.SentenceSpan{
			Text:  text[offsets[sentStart]:offsets[end+1]],
			Start: offsets[sentStart],
			End:   offsets[end+1],
		})
		sentStart = -1
		i = end
	}

	// Trailing text without a terminator is still a sentence.
	if sentStart != -1 {
		endByte := offsets[len(runes)]
		spanText := strings.TrimRightFunc(text[offsets[sentStart]:endByte], unicode.IsSpace)
		if spanText != "" {
			spans = append(spans, model.SentenceSpan{
				Text:  spanText,
				Start: offsets[sentStart],
				End:   offsets[sentStart] + len(spanText),
			})
		}
	}

	return spans
}

// isBoundary decides whether the terminator at rune index i (run ending
// at end) closes a sentence.
func isBoundary(runes []rune, i, end int, abbrevs map[string]struct{}) bool {
	// End of text always closes.
	if end+1 >= len(runes) {
		return true
	}

	// Require whitespace then a capital, digit, or opening quote.
	j := end + 1
	if !unicode.IsSpace(runes[j]) {
		return false
	}
	for j < len(runes) && unicode.IsSpace(runes[j]) {
		j++
	}
	if j >= len(runes) {
		return true
	}
	next := runes[j]
	if !unicode.IsUpper(next) && !unicode.IsDigit(next) && !isOpeningQuote(next) {
		return false
	}

	// Only '.' can belong to an abbreviation.
	if runes[i] != '.' {
		return true
	}

	word := precedingWord(runes, i)
	if word == "" {
		return true
	}
	// Single capital letter reads as an initial ("J. Smith").
	if len(word) == 1 && unicode.IsUpper([]rune(word)[0]) {
		return false
	}
	if _, ok := abbrevs[strings.ToLower(word)]; ok {
		return false
	}
	return true
}

// precedingWord collects the token immediately before rune index i,
// keeping interior periods so "U.S." matches as "u.s".
func precedingWord(runes []rune, i int) string {
	j := i - 1
	for j >= 0 && (unicode.IsLetter(runes[j]) || runes[j] == '.') {
		j--
	}
	word := string(runes[j+1 : i])
	return strings.Trim(word, ".")
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isClosingQuote(r rune) bool {
	switch r {
	case '"', '\'', '”', '’', ')', ']':
		return true
	}
	return false
}

func isOpeningQuote(r rune) bool {
	switch r {
	case '"', '\'', '“', '‘':
		return true
	}
	return false
}

// runeByteOffsets maps rune index -> byte offset, with one extra entry
// for the end of the string.
func runeByteOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))
	return offsets
}

func wholeTextSpan(text string) model.SentenceSpan {
	return model.SentenceSpan{Text: text, Start: 0, End: len(text)}
}
