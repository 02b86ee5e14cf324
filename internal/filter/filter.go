// Package filter implements the deterministic candidate filter: completeness,
// clickbait rejection, topic relevance and a one-per-origin diversity cap.
package filter

import "DeepDiveDigest/internal/domain"

// Rules returns the ordered rule chain for one pass over a pool.
func Rules() []Rule {
	return []Rule{Completeness, Clickbait, Relevance, DiversityCap()}
}

// Apply keeps the candidates that pass every rule, preserving incoming order.
// It performs no I/O and returns a new slice.
func Apply[T domain.Candidate](pool []T, topic string) []T {
	kept, _ := ApplyWithReport(pool, topic)
	return kept
}

// Report counts rejections per rule name.
type Report map[string]int

// ApplyWithReport is Apply plus a tally of which rule rejected how many candidates.
func ApplyWithReport[T domain.Candidate](pool []T, topic string) ([]T, Report) {
	t := ParseTopic(topic)
	rules := Rules()
	report := Report{}

	kept := make([]T, 0, len(pool))
	for _, c := range pool {
		if rule, ok := firstRejection(rules, c, t); !ok {
			report[rule]++
			continue
		}
		kept = append(kept, c)
	}
	return kept, report
}

func firstRejection(rules []Rule, c domain.Candidate, t Topic) (string, bool) {
	for _, r := range rules {
		if !r.Admit(c, t) {
			return r.Name, false
		}
	}
	return "", true
}

// Videos filters a video pool.
func Videos(pool []domain.VideoCandidate, topic string) []domain.VideoCandidate {
	return Apply(pool, topic)
}

// Articles filters an article pool.
func Articles(pool []domain.ArticleCandidate, topic string) []domain.ArticleCandidate {
	return Apply(pool, topic)
}
