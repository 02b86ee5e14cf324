package selection

import (
	"encoding/json"
	"fmt"
	"strings"

	"DeepDiveDigest/internal/domain"
)

// SystemInstruction pins the model to the supplied lists.
const SystemInstruction = "You are a research assistant that ONLY selects and organizes resources from provided lists. You NEVER invent new resources. Always respond with valid JSON only."

// BuildPrompt renders the closed-world instruction. Both candidate lists are embedded
// verbatim; nothing outside them may be cited.
func BuildPrompt(topic string, lang domain.Language, set domain.CandidateSet) (string, error) {
	videos, err := indentJSON(nonNil(set.Videos))
	if err != nil {
		return "", fmt.Errorf("encode video candidates: %w", err)
	}
	articles, err := indentJSON(nonNil(set.Articles))
	if err != nil {
		return "", fmt.Errorf("encode article candidates: %w", err)
	}

	langName := lang.Name()
	langDirective := "Write summary, importance, overview, reason, and note in ENGLISH."
	if lang == domain.LangTurkish {
		langDirective = "Write summary, importance, overview, reason, and note in TURKISH. Keep resource titles in original language."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are selecting resources for a topic digest about: %q\n\n", topic)
	fmt.Fprintf(&b, "%s\n\n", langDirective)
	fmt.Fprintf(&b, "AVAILABLE YOUTUBE VIDEOS (select from these ONLY):\n%s\n\n", videos)
	fmt.Fprintf(&b, "AVAILABLE ARTICLES (select from these ONLY):\n%s\n\n", articles)

	b.WriteString("YOUR TASK:\n")
	fmt.Fprintf(&b, "1. Create exactly %d sections that cover the key aspects of %q\n", domain.SectionCount, topic)
	b.WriteString("2. For EACH section, SELECT:\n")
	b.WriteString("   - 1 YouTube video (by exact videoId) from the list above\n")
	b.WriteString("   - 1 article/source (by exact url) from the list above.\n")
	b.WriteString("   - **IMPORTANT**: Aim for a mix of standard web, [News] for timeliness, [Tor] for alternative views, [Paper] for academic depth, and [GitHub] for real-world code/tools.\n")
	fmt.Fprintf(&b, "3. Explain WHY you selected each resource (in %s)\n", langName)
	b.WriteString("4. Write a 4-6 sentence summary of the topic\n\n")

	b.WriteString("STRICT RULES - VIOLATIONS WILL CAUSE FAILURE:\n")
	b.WriteString("- DO NOT invent new video titles - use EXACT titles from candidates\n")
	b.WriteString("- DO NOT invent new channel names - use EXACT channelTitle from candidates\n")
	b.WriteString("- DO NOT create new URLs - use EXACT url from candidates\n")
	b.WriteString("- DO NOT add resources not in the provided lists\n")
	b.WriteString("- You MAY leave youtube or article fields empty if nothing relevant fits\n")
	b.WriteString("- You MUST use exact videoId/url values from the candidate lists\n")
	b.WriteString("- Each section should focus on a different aspect of the topic\n\n")

	b.WriteString("OUTPUT FORMAT (JSON only, no markdown, no code fences):\n")
	b.WriteString(outputShape(topic, langName))
	return b.String(), nil
}

func outputShape(topic, langName string) string {
	quotedTopic, _ := json.Marshal(topic)
	return fmt.Sprintf(`{
  "topic": %s,
  "user_level": %q,
  "summary": "4-6 sentences about the topic in %s",
  "sections": [
    {
      "title": "Section title in %s",
      "importance": "Why this section matters - one sentence",
      "overview": "Focused explanation of this aspect",
      "imagePrompt": "A detailed English prompt for an AI image generator",
      "youtube": {
        "videoId": "exact videoId from candidates",
        "channel": "exact channelTitle from candidates",
        "title": "exact title from candidates",
        "reason": "Why this video helps understand this section"
      },
      "article": {
        "url": "exact url from candidates",
        "source": "domain name",
        "note": "What you learn from this source"
      }
    }
  ]
}`, quotedTopic, domain.UserLevel, langName, langName)
}

func indentJSON(v any) (string, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
