package heuristics

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/credo-scan/credo/internal/config"
	"github.com/credo-scan/credo/internal/model"
)

// Baseline credibility before any rule fires: fully credible until
// penalized.
const Baseline = 100.0

// Caps keep positive rules bounded so they cannot mask penalties.
const (
	maxAttributionBonuses = 3
	maxCitationBonuses    = 5
)

// shoutingMinLen is the minimum length for an all-uppercase word to
// read as shouting rather than an acronym.
const shoutingMinLen = 5

var linkPattern = regexp.MustCompile(`https?://\S+`)

// Result is the heuristic branch output
type Result struct {
	Subscore float64
	Findings []model.HeuristicFinding
}

// Scorer applies a fixed, ordered list of pure rules to the sentence
// sequence. Same sentences in, same subscore and findings out: the
// rules perform no I/O and hold no state.
type Scorer struct {
	weights config.HeuristicWeights
	rules   []rule
}

type rule struct {
	id    string
	apply func(s *Scorer, sentences []model.SentenceSpan) []model.HeuristicFinding
}

// NewScorer creates a Scorer with the given rule weights
func NewScorer(weights config.HeuristicWeights) *Scorer {
	s := &Scorer{weights: weights}
	// Declaration order fixes the findings ordering; the subscore does
	// not depend on it.
	s.rules = []rule{
		{id: "excessive_capitalization", apply: (*Scorer).ruleAllCaps},
		{id: "clickbait_lexicon", apply: (*Scorer).ruleClickbait},
		{id: "excessive_punctuation", apply: (*Scorer).ruleExclamation},
		{id: "source_attribution", apply: (*Scorer).ruleAttribution},
		{id: "hedging_language", apply: (*Scorer).ruleHedging},
		{id: "external_citations", apply: (*Scorer).ruleCitations},
	}
	return s
}

// Score evaluates every rule and clamps the aggregate to [0,100]
func (s *Scorer) Score(sentences []model.SentenceSpan) Result {
	var findings []model.HeuristicFinding

	subscore := Baseline
	for _, r := range s.rules {
		for _, f := range r.apply(s, sentences) {
			f.RuleID = r.id
			findings = append(findings, f)
			subscore += f.Weight
		}
	}

	if subscore < 0 {
		subscore = 0
	}
	if subscore > 100 {
		subscore = 100
	}

	return Result{Subscore: subscore, Findings: findings}
}

// ruleAllCaps flags sentences containing shouted (all-uppercase) words
func (s *Scorer) ruleAllCaps(sentences []model.SentenceSpan) []model.HeuristicFinding {
	var findings []model.HeuristicFinding
	for i, sent := range sentences {
		var shouted []string
		for _, word := range strings.Fields(sent.Text) {
			word = strings.TrimFunc(word, func(r rune) bool { return !unicode.IsLetter(r) })
			if len(word) >= shoutingMinLen && word == strings.ToUpper(word) && word != strings.ToLower(word) {
				shouted = append(shouted, word)
			}
		}
		if len(shouted) == 0 {
			continue
		}
		findings = append(findings, model.HeuristicFinding{
			Sentence:    i,
			Weight:      s.weights.AllCaps,
			Explanation: fmt.Sprintf("all-caps words: %s (min length %d)", strings.Join(shouted, ", "), shoutingMinLen),
		})
	}
	return findings
}

// ruleClickbait flags sentences hitting the clickbait lexicon
func (s *Scorer) ruleClickbait(sentences []model.SentenceSpan) []model.HeuristicFinding {
	var findings []model.HeuristicFinding
	for i, sent := range sentences {
		lower := strings.ToLower(sent.Text)
		var hits []string
		for _, phrase := range clickbaitPhrases {
			if strings.Contains(lower, phrase) {
				hits = append(hits, phrase)
			}
		}
		if len(hits) == 0 {
			continue
		}
		findings = append(findings, model.HeuristicFinding{
			Sentence:    i,
			Weight:      s.weights.Clickbait,
			Explanation: fmt.Sprintf("clickbait lexicon hits: %s", strings.Join(hits, ", ")),
		})
	}
	return findings
}

// ruleExclamation flags sentences with two or more exclamation marks
func (s *Scorer) ruleExclamation(sentences []model.SentenceSpan) []model.HeuristicFinding {
	var findings []model.HeuristicFinding
	for i, sent := range sentences {
		count := strings.Count(sent.Text, "!")
		if count < 2 {
			continue
		}
		findings = append(findings, model.HeuristicFinding{
			Sentence:    i,
			Weight:      s.weights.Exclamation,
			Explanation: fmt.Sprintf("%d exclamation marks in one sentence (threshold 2)", count),
		})
	}
	return findings
}

// ruleAttribution rewards attributed sentences and penalizes their
// total absence. Bonuses are capped so attribution cannot whitewash an
// otherwise penalized article.
func (s *Scorer) ruleAttribution(sentences []model.SentenceSpan) []model.HeuristicFinding {
	var findings []model.HeuristicFinding
	bonuses := 0
	for i, sent := range sentences {
		lower := strings.ToLower(sent.Text)
		marker := ""
		for _, m := range attributionMarkers {
			if containsWord(lower, m) {
				marker = m
				break
			}
		}
		if marker == "" {
			continue
		}
		if bonuses >= maxAttributionBonuses {
			break
		}
		bonuses++
		findings = append(findings, model.HeuristicFinding{
			Sentence:    i,
			Weight:      s.weights.Attribution,
			Explanation: fmt.Sprintf("attributed source marker %q (bonus %d of max %d)", marker, bonuses, maxAttributionBonuses),
		})
	}

	if bonuses == 0 && len(sentences) > 0 {
		findings = append(findings, model.HeuristicFinding{
			Sentence:    -1,
			Weight:      s.weights.NoAttribution,
			Explanation: "no sentence attributes a source (no reporting verbs or citations of people/studies)",
		})
	}
	return findings
}

// ruleHedging fires once when a third or more of the sentences hedge
func (s *Scorer) ruleHedging(sentences []model.SentenceSpan) []model.HeuristicFinding {
	if len(sentences) == 0 {
		return nil
	}

	hedged := 0
	for _, sent := range sentences {
		lower := strings.ToLower(sent.Text)
		for _, m := range hedgingMarkers {
			if strings.Contains(lower, m) {
				hedged++
				break
			}
		}
	}

	ratio := float64(hedged) / float64(len(sentences))
	if hedged < 2 || ratio < 1.0/3.0 {
		return nil
	}
	return []model.HeuristicFinding{{
		Sentence:    -1,
		Weight:      s.weights.Hedging,
		Explanation: fmt.Sprintf("hedging in %d of %d sentences (ratio %.2f, threshold 0.33)", hedged, len(sentences), ratio),
	}}
}

// ruleCitations rewards external links as possible references
func (s *Scorer) ruleCitations(sentences []model.SentenceSpan) []model.HeuristicFinding {
	links := 0
	for _, sent := range sentences {
		links += len(linkPattern.FindAllString(sent.Text, -1))
	}
	if links == 0 {
		return nil
	}

	counted := links
	if counted > maxCitationBonuses {
		counted = maxCitationBonuses
	}
	return []model.HeuristicFinding{{
		Sentence:    -1,
		Weight:      s.weights.Citation * float64(counted),
		Explanation: fmt.Sprintf("%d external links found, %d counted (max %d)", links, counted, maxCitationBonuses),
	}}
}

// containsWord matches a marker as a whole word so "said" does not
// match inside "aforesaid". Multi-word markers fall back to substring
// containment.
func containsWord(text, marker string) bool {
	if strings.Contains(marker, " ") {
		return strings.Contains(text, marker)
	}
	idx := 0
	for {
		j := strings.Index(text[idx:], marker)
		if j < 0 {
			return false
		}
		j += idx
		before := j == 0 || !unicode.IsLetter(rune(text[j-1]))
		after := j+len(marker) >= len(text) || !unicode.IsLetter(rune(text[j+len(marker)]))
		if before && after {
			return true
		}
		idx = j + len(marker)
	}
}
