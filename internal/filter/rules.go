package filter

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"DeepDiveDigest/internal/domain"
)

// Rule decides whether a candidate stays in the pool. Rules run in a fixed order
// and the first rejection wins.
type Rule struct {
	Name  string
	Admit func(c domain.Candidate, topic Topic) bool
}

// Topic holds the lower-cased relevance terms of a search topic.
type Topic struct {
	Raw   string
	Terms []string
}

// minTermLength is exclusive: only tokens longer than this count as relevance terms.
const minTermLength = 2

// ParseTopic splits the topic on whitespace and keeps tokens longer than two runes.
func ParseTopic(raw string) Topic {
	fields := strings.Fields(strings.ToLower(raw))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > minTermLength {
			terms = append(terms, f)
		}
	}
	return Topic{Raw: raw, Terms: terms}
}

var clickbaitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z\s!?]{10,}$`),
	regexp.MustCompile(`(?i)shocking`),
	regexp.MustCompile(`(?i)you won't believe`),
	regexp.MustCompile(`(?i)mind blown`),
	regexp.MustCompile(`(?i)\d+\s*(secrets|tricks|hacks)`),
	regexp.MustCompile(`(?i)watch before`),
	regexp.MustCompile(`(?i)deleted soon`),
	regexp.MustCompile(`(?i)exposed`),
}

// IsClickbait reports whether a title matches any sensational-title heuristic.
func IsClickbait(title string) bool {
	for _, p := range clickbaitPatterns {
		if p.MatchString(title) {
			return true
		}
	}
	return false
}

// IsRelevant requires one topic term to appear in text. A topic without terms admits everything.
func IsRelevant(text string, topic Topic) bool {
	if len(topic.Terms) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, term := range topic.Terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// Completeness rejects candidates without an identifying key or title.
var Completeness = Rule{
	Name: "completeness",
	Admit: func(c domain.Candidate, _ Topic) bool {
		return c.Key() != "" && c.Headline() != ""
	},
}

// Clickbait rejects sensational titles.
var Clickbait = Rule{
	Name: "clickbait",
	Admit: func(c domain.Candidate, _ Topic) bool {
		return !IsClickbait(c.Headline())
	},
}

// Relevance rejects candidates whose title and body mention no topic term.
var Relevance = Rule{
	Name: "relevance",
	Admit: func(c domain.Candidate, topic Topic) bool {
		return IsRelevant(c.Headline()+" "+c.Body(), topic)
	},
}

// DiversityCap admits the first candidate per normalized origin. It is stateful,
// so a fresh one is needed for every pass over a pool.
func DiversityCap() Rule {
	seen := make(map[string]struct{})
	return Rule{
		Name: "diversity",
		Admit: func(c domain.Candidate, _ Topic) bool {
			key := domain.NormalizeOrigin(c.Origin())
			if _, ok := seen[key]; ok {
				return false
			}
			seen[key] = struct{}{}
			return true
		},
	}
}
