package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"place_sentiment/internal/adapters/observability"
	"place_sentiment/internal/domain"
	"place_sentiment/internal/sentiment"
)

type SearchOptions struct {
	// Language is the display language requested for reviews.
	Language string
	// MaxReviews caps Found results; 0 means unbounded.
	MaxReviews int
	// ErrorsAsEmpty reports upstream failures as PlaceNotFound/NoReviews
	// instead of TransientError.
	ErrorsAsEmpty bool
}

type SearchService struct {
	places     domain.PlacesClient
	classifier *sentiment.Classifier
	opts       SearchOptions
	group      singleflight.Group
}

func NewSearchService(p domain.PlacesClient, c *sentiment.Classifier, opts SearchOptions) *SearchService {
	if opts.MaxReviews < 0 {
		opts.MaxReviews = 0
	}
	return &SearchService{places: p, classifier: c, opts: opts}
}

// Search runs resolve → fetch → classify for query. It never fails: every
// result, upstream trouble included, is reported as an outcome. Concurrent
// calls with the same query share one upstream round trip.
func (s *SearchService) Search(ctx context.Context, query string) domain.SearchOutcome {
	// a started search runs to completion; the client timeout bounds it
	ctx = context.WithoutCancel(ctx)
	v, _, shared := s.group.Do(query, func() (any, error) {
		return s.run(ctx, query), nil
	})
	out := v.(domain.SearchOutcome)
	if shared {
		log.Debug().Str("search_id", out.ID).Str("query", query).Msg("search coalesced")
	}
	// copy slice so callers sharing a flight never alias each other
	return copyOutcome(out)
}

func (s *SearchService) run(ctx context.Context, query string) domain.SearchOutcome {
	start := time.Now()
	out := domain.SearchOutcome{ID: uuid.NewString(), Query: query}

	place, err := s.places.FindPlace(ctx, query)
	switch {
	case err != nil:
		s.fail(&out, domain.OutcomePlaceNotFound, "resolve", err)
	case place == nil:
		out.Kind = domain.OutcomePlaceNotFound
	default:
		out.Place = place
		s.fetch(ctx, &out)
	}

	observability.ObserveSearch(string(out.Kind))
	ev := log.Info()
	if out.Kind == domain.OutcomeTransientError {
		ev = log.Warn()
	}
	ev.Str("search_id", out.ID).
		Str("query", query).
		Str("outcome", string(out.Kind)).
		Int("reviews", len(out.Reviews)).
		Dur("dur", time.Since(start))
	if out.Place != nil {
		ev = ev.Str("place_id", string(out.Place.ID))
	}
	ev.Msg("search")
	return out
}

func (s *SearchService) fetch(ctx context.Context, out *domain.SearchOutcome) {
	raw, err := s.places.PlaceReviews(ctx, out.Place.ID, s.opts.Language)
	if err != nil {
		s.fail(out, domain.OutcomeNoReviews, "reviews", err)
		return
	}
	if len(raw) == 0 {
		out.Kind = domain.OutcomeNoReviews
		return
	}
	if n := s.opts.MaxReviews; n > 0 && len(raw) > n {
		raw = raw[:n]
	}
	out.Kind = domain.OutcomeFound
	out.Reviews = s.label(raw)
}

// fail records an upstream failure, either as TransientError or, when
// configured for parity, as the given empty outcome.
func (s *SearchService) fail(out *domain.SearchOutcome, empty domain.OutcomeKind, stage string, err error) {
	log.Warn().Str("search_id", out.ID).Str("stage", stage).Err(err).Msg("upstream failure")
	if s.opts.ErrorsAsEmpty {
		out.Kind = empty
		return
	}
	out.Kind = domain.OutcomeTransientError
	out.Reason = stage + ": upstream unavailable"
	if !errors.Is(err, domain.ErrUpstream) {
		out.Reason = stage + ": " + err.Error()
	}
}

func (s *SearchService) label(raw []domain.RawReview) []domain.LabeledReview {
	out := make([]domain.LabeledReview, 0, len(raw))
	for _, r := range raw {
		score := s.classifier.Score(r.Text)
		lr := domain.LabeledReview{
			RawReview: r,
			Score:     score,
			Label:     s.classifier.Policy().Label(score),
		}
		observability.ObserveLabel(string(lr.Label))
		out = append(out, lr)
	}
	return out
}

func copyOutcome(in domain.SearchOutcome) domain.SearchOutcome {
	out := in
	if in.Place != nil {
		p := *in.Place
		out.Place = &p
	}
	if n := len(in.Reviews); n > 0 {
		out.Reviews = make([]domain.LabeledReview, n)
		copy(out.Reviews, in.Reviews)
	}
	return out
}
