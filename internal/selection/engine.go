// Package selection asks the oracle to curate a digest from a closed candidate set
// and refuses any answer that cites outside it.
package selection

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/ports"
)

// Draft is the loosely typed oracle answer before validation.
type Draft struct {
	Topic     string         `json:"topic"`
	UserLevel string         `json:"user_level"`
	Summary   string         `json:"summary"`
	Sections  []DraftSection `json:"sections"`
}

// DraftSection mirrors domain.Section with optional citations.
type DraftSection struct {
	Title       string              `json:"title"`
	Importance  string              `json:"importance"`
	Overview    string              `json:"overview"`
	ImagePrompt string              `json:"imagePrompt"`
	Video       *domain.VideoPick   `json:"youtube"`
	Article     *domain.ArticlePick `json:"article"`
}

func (s DraftSection) videoID() string {
	if s.Video == nil {
		return ""
	}
	return s.Video.VideoID
}

func (s DraftSection) articleURL() string {
	if s.Article == nil {
		return ""
	}
	return s.Article.URL
}

// Engine runs the prompt, parse and validate steps against one oracle.
type Engine struct {
	oracle ports.Oracle
	logger *slog.Logger
}

// NewEngine wires an oracle. A nil oracle makes every Select a configuration-error.
func NewEngine(oracle ports.Oracle, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{oracle: oracle, logger: logger}
}

// Ready reports whether an oracle is configured.
func (e *Engine) Ready() bool { return e != nil && e.oracle != nil }

// Select builds the prompt from set, asks the oracle once and promotes a provenance-clean
// answer to a Digest. No repair and no retry.
func (e *Engine) Select(ctx context.Context, topic string, lang domain.Language, set domain.CandidateSet) (domain.Digest, error) {
	if !e.Ready() {
		return domain.Digest{}, domain.Errorf(domain.ErrConfiguration, "selection oracle credential is not configured")
	}

	prompt, err := BuildPrompt(topic, lang, set)
	if err != nil {
		return domain.Digest{}, domain.NewError(domain.ErrSelectionMalformed, "build prompt", err)
	}

	raw, err := e.oracle.Complete(ctx, SystemInstruction, prompt)
	if err != nil {
		return domain.Digest{}, err
	}

	draft, err := Parse(raw)
	if err != nil {
		e.logger.Warn("oracle response rejected", "error", err, "bytes", len(raw))
		return domain.Digest{}, err
	}

	if err := Validate(draft, set); err != nil {
		e.logger.Error("hallucination detected", "error", err)
		return domain.Digest{}, err
	}

	return promote(topic, draft, set), nil
}

// Parse strips code fences and decodes the answer, requiring exactly three sections.
func Parse(raw string) (Draft, error) {
	var draft Draft
	if err := json.Unmarshal([]byte(StripFences(raw)), &draft); err != nil {
		return Draft{}, domain.NewError(domain.ErrSelectionMalformed, "failed to parse oracle response as JSON", err)
	}
	if len(draft.Sections) != domain.SectionCount {
		return Draft{}, domain.Errorf(domain.ErrSelectionMalformed,
			"oracle returned %d sections, want exactly %d", len(draft.Sections), domain.SectionCount)
	}
	return draft, nil
}

// StripFences removes a surrounding ``` or ```json fence.
func StripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(cleaned, "```json"); ok {
		cleaned = rest
	} else if rest, ok := strings.CutPrefix(cleaned, "```"); ok {
		cleaned = rest
	}
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// promote copies the draft into the trusted shape, overwriting cited metadata with
// the candidate's own values.
func promote(topic string, draft Draft, set domain.CandidateSet) domain.Digest {
	digest := domain.Digest{
		Topic:     topic,
		UserLevel: domain.UserLevel,
		Summary:   strings.TrimSpace(draft.Summary),
		Sections:  make([]domain.Section, 0, len(draft.Sections)),
	}

	for _, ds := range draft.Sections {
		section := domain.Section{
			Title:       strings.TrimSpace(ds.Title),
			Importance:  strings.TrimSpace(ds.Importance),
			Overview:    strings.TrimSpace(ds.Overview),
			ImagePrompt: strings.TrimSpace(ds.ImagePrompt),
		}
		if id := ds.videoID(); id != "" {
			if v, ok := set.Video(id); ok {
				section.Video = domain.VideoPick{
					VideoID: v.VideoID,
					Channel: v.ChannelTitle,
					Title:   v.Title,
					Reason:  ds.Video.Reason,
				}
			}
		}
		if u := ds.articleURL(); u != "" {
			if a, ok := set.Article(u); ok {
				section.Article = domain.ArticlePick{
					URL:    a.URL,
					Source: a.Source,
					Note:   ds.Article.Note,
				}
			}
		}
		digest.Sections = append(digest.Sections, section)
	}
	return digest
}
