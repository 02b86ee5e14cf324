package domain

import (
	"fmt"
	"strings"
)

// SectionCount is the number of sections every digest must carry.
const SectionCount = 3

// UserLevel is the fixed audience level written into every digest.
const UserLevel = "intermediate"

// Language selects the prose language of a digest.
type Language string

const (
	LangEnglish Language = "en"
	LangTurkish Language = "tr"
)

// DefaultLanguage applies when a caller omits the language.
const DefaultLanguage = LangTurkish

// ParseLanguage accepts "en" or "tr" (case-insensitive); empty means DefaultLanguage.
func ParseLanguage(raw string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return DefaultLanguage, nil
	case LangEnglish:
		return LangEnglish, nil
	case LangTurkish:
		return LangTurkish, nil
	default:
		return "", fmt.Errorf("unsupported language %q", raw)
	}
}

// Name returns the human name used inside prompts.
func (l Language) Name() string {
	if l == LangTurkish {
		return "Turkish"
	}
	return "English"
}

// VideoPick is a section's video citation. An empty VideoID means no video.
type VideoPick struct {
	VideoID string `json:"videoId"`
	Channel string `json:"channel"`
	Title   string `json:"title"`
	Reason  string `json:"reason"`
}

// ArticlePick is a section's article citation. An empty URL means no article.
type ArticlePick struct {
	URL    string `json:"url"`
	Source string `json:"source"`
	Note   string `json:"note"`
}

// Section is one of the three parts of a digest.
type Section struct {
	Title       string      `json:"title"`
	Importance  string      `json:"importance"`
	Overview    string      `json:"overview"`
	ImagePrompt string      `json:"imagePrompt,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
	Video       VideoPick   `json:"youtube"`
	Article     ArticlePick `json:"article"`
}

// Digest is the terminal artifact of a successful run.
type Digest struct {
	Topic     string    `json:"topic"`
	UserLevel string    `json:"user_level"`
	Summary   string    `json:"summary"`
	Sections  []Section `json:"sections"`
}

// DigestResult is the tagged union handed to callers.
type DigestResult struct {
	Success bool           `json:"success"`
	Data    *Digest        `json:"data,omitempty"`
	Error   *PipelineError `json:"error,omitempty"`
}

// Succeeded wraps a digest.
func Succeeded(d Digest) DigestResult {
	return DigestResult{Success: true, Data: &d}
}

// Failed wraps an error, classifying anything that is not already a PipelineError.
func Failed(err error) DigestResult {
	return DigestResult{Success: false, Error: AsPipelineError(err)}
}
