package selection

import "DeepDiveDigest/internal/domain"

// Validate checks every non-empty citation against the exact set the prompt was
// built from. One stray reference rejects the whole selection.
func Validate(draft Draft, set domain.CandidateSet) error {
	videos := make(map[string]struct{}, len(set.Videos))
	for _, v := range set.Videos {
		videos[v.VideoID] = struct{}{}
	}
	articles := make(map[string]struct{}, len(set.Articles))
	for _, a := range set.Articles {
		articles[a.URL] = struct{}{}
	}

	for i, s := range draft.Sections {
		if id := s.videoID(); id != "" {
			if _, ok := videos[id]; !ok {
				return domain.Errorf(domain.ErrSelectionHallucinated,
					"section %d cites video %q that was not among the candidates", i+1, id)
			}
		}
		if u := s.articleURL(); u != "" {
			if _, ok := articles[u]; !ok {
				return domain.Errorf(domain.ErrSelectionHallucinated,
					"section %d cites url %q that was not among the candidates", i+1, u)
			}
		}
	}
	return nil
}
