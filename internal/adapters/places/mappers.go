package places

import "place_sentiment/internal/domain"

type findPlaceResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message"`
	Candidates   []candidate `json:"candidates"`
}

type candidate struct {
	PlaceID string `json:"place_id"`
	Name    string `json:"name"`
}

type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       struct {
		Reviews []review `json:"reviews"`
	} `json:"result"`
}

type review struct {
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
	Time       int64  `json:"time"`
}

// mapCandidate trusts the upstream ranking: first candidate wins.
func mapCandidate(cs []candidate) *domain.Place {
	if len(cs) == 0 || cs[0].PlaceID == "" {
		return nil
	}
	return &domain.Place{ID: domain.PlaceID(cs[0].PlaceID), Name: cs[0].Name}
}

func mapReviews(in []review) []domain.RawReview {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.RawReview, 0, len(in))
	for _, r := range in {
		out = append(out, domain.RawReview{
			AuthorName: r.AuthorName,
			Rating:     r.Rating,
			Text:       r.Text,
			Time:       r.Time,
		})
	}
	return out
}
