package domain

//go:generate mockgen -destination=mocks/mock_ports.go -package=mocks . PlacesClient,Scorer

import (
	"context"
	"time"
)

type PlacesClient interface {
	// FindPlace returns (nil, nil) when the upstream has no candidate.
	FindPlace(ctx context.Context, query string) (*Place, error)
	PlaceReviews(ctx context.Context, id PlaceID, language string) ([]RawReview, error)
}

// Scorer maps text to a polarity score in [-1, +1].
type Scorer interface {
	Score(text string) float64
}

// Guard admits at most one holder per key until release is called or ttl expires.
type Guard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}
