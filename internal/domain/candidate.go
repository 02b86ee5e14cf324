package domain

import (
	"strings"
	"time"
)

// SourceKind tags where an article candidate came from.
type SourceKind string

const (
	KindWeb        SourceKind = "web"
	KindNews       SourceKind = "news"
	KindOnion      SourceKind = "onion"
	KindPaper      SourceKind = "paper"
	KindRepository SourceKind = "repository"
)

// VideoCandidate is a normalized video search result.
type VideoCandidate struct {
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	ChannelTitle string    `json:"channelTitle"`
	PublishedAt  time.Time `json:"publishedAt"`
	Description  string    `json:"description"`
}

// ArticleCandidate is the shared shape produced by the five article-like providers.
type ArticleCandidate struct {
	Title   string     `json:"title"`
	URL     string     `json:"url"`
	Source  string     `json:"source"`
	Snippet string     `json:"snippet"`
	Kind    SourceKind `json:"kind"`
}

// Candidate is the view the filter rules operate on.
type Candidate interface {
	Key() string
	Headline() string
	Body() string
	Origin() string
}

func (v VideoCandidate) Key() string      { return v.VideoID }
func (v VideoCandidate) Headline() string { return v.Title }
func (v VideoCandidate) Body() string     { return v.Description }
func (v VideoCandidate) Origin() string   { return v.ChannelTitle }

func (a ArticleCandidate) Key() string      { return a.URL }
func (a ArticleCandidate) Headline() string { return a.Title }
func (a ArticleCandidate) Body() string     { return a.Snippet }
func (a ArticleCandidate) Origin() string   { return a.Source }

// NormalizeOrigin folds a channel name or source label into its diversity key.
func NormalizeOrigin(origin string) string {
	return strings.ToLower(strings.TrimSpace(origin))
}

// CandidateSet is the filtered input handed to selection. The same value must be
// used to build the prompt and to validate the answer.
type CandidateSet struct {
	Videos   []VideoCandidate
	Articles []ArticleCandidate
}

// Empty reports whether neither pool has survivors.
func (s CandidateSet) Empty() bool {
	return len(s.Videos) == 0 && len(s.Articles) == 0
}

// Video looks up a video candidate by its exact identifier.
func (s CandidateSet) Video(id string) (VideoCandidate, bool) {
	for _, v := range s.Videos {
		if v.VideoID == id {
			return v, true
		}
	}
	return VideoCandidate{}, false
}

// Article looks up an article candidate by its exact URL.
func (s CandidateSet) Article(url string) (ArticleCandidate, bool) {
	for _, a := range s.Articles {
		if a.URL == url {
			return a, true
		}
	}
	return ArticleCandidate{}, false
}
