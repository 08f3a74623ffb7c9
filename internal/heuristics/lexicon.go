package heuristics

// Lexicons used by the rules. Matching is case-insensitive substring
// matching against the sentence text.

// clickbaitPhrases is the sensational/clickbait lexicon
var clickbaitPhrases = []string{
	"you won't believe",
	"doctors hate",
	"one trick",
	"one weird trick",
	"shocking",
	"shocked",
	"miracle",
	"cure",
	"guarantee",
	"unbelievable",
	"secret",
	"viral",
	"breaking",
	"exposed",
	"destroyed",
	"this is why",
}

// attributionMarkers indicate an attributed source or reporting verb
var attributionMarkers = []string{
	"according to",
	"said",
	"says",
	"stated",
	"told",
	"reported",
	"reports",
	"announced",
	"confirmed",
	"published",
	"revealed",
	"study",
	"research",
	"survey",
	"found that",
}

// hedgingMarkers indicate unattributed or speculative sourcing
var hedgingMarkers = []string{
	"reportedly",
	"allegedly",
	"sources say",
	"some say",
	"many believe",
	"it is believed",
	"rumor",
	"rumour",
	"could be",
	"might be",
	"may have",
	"experts fear",
	"critics claim",
}
