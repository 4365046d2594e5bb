package app_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"place_sentiment/internal/app"
	"place_sentiment/internal/domain"
	"place_sentiment/internal/domain/mocks"
	"place_sentiment/internal/sentiment"
)

// ---- fakes ----

// keywordScorer scores by substring; unknown text scores 0.
type keywordScorer map[string]float64

func (k keywordScorer) Score(text string) float64 {
	for kw, s := range k {
		if strings.Contains(text, kw) {
			return s
		}
	}
	return 0
}

var testScorer = keywordScorer{"Amazing": 0.6, "not worth": -0.4, "meh": 0}

const eiffelID = domain.PlaceID("ChIJLU7jZClu5kcR4PcOOO6p3I0")

func newService(t *testing.T, policy sentiment.Policy, opts app.SearchOptions) (*app.SearchService, *mocks.MockPlacesClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	pc := mocks.NewMockPlacesClient(ctrl)
	cls := sentiment.NewClassifier(testScorer, policy)
	return app.NewSearchService(pc, cls, opts), pc
}

func reviews(n int) []domain.RawReview {
	out := make([]domain.RawReview, n)
	for i := range out {
		out[i] = domain.RawReview{AuthorName: fmt.Sprintf("author%d", i), Rating: i%5 + 1, Text: fmt.Sprintf("review %d", i), Time: int64(1700000000 + i)}
	}
	return out
}

// ---- tests ----

func TestSearch_EiffelTowerEndToEnd(t *testing.T) {
	for _, policy := range []sentiment.Policy{sentiment.PolicyTernary, sentiment.PolicyBinary} {
		t.Run(string(policy), func(t *testing.T) {
			svc, pc := newService(t, policy, app.SearchOptions{Language: "pt-BR", MaxReviews: 8})
			pc.EXPECT().FindPlace(gomock.Any(), "Eiffel Tower").
				Return(&domain.Place{ID: eiffelID, Name: "Tour Eiffel"}, nil)
			pc.EXPECT().PlaceReviews(gomock.Any(), eiffelID, "pt-BR").Return([]domain.RawReview{
				{AuthorName: "author1", Rating: 5, Text: "Amazing view!", Time: 1},
				{AuthorName: "author2", Rating: 2, Text: "Too crowded, not worth it", Time: 2},
			}, nil)

			out := svc.Search(context.Background(), "Eiffel Tower")
			require.Equal(t, domain.OutcomeFound, out.Kind)
			require.NotNil(t, out.Place)
			assert.Equal(t, eiffelID, out.Place.ID)
			assert.NotEmpty(t, out.ID)
			require.Len(t, out.Reviews, 2)
			assert.Equal(t, "author1", out.Reviews[0].AuthorName)
			assert.Equal(t, "Amazing view!", out.Reviews[0].Text)
			assert.Equal(t, 5, out.Reviews[0].Rating)
			assert.Equal(t, domain.Positive, out.Reviews[0].Label)
			assert.Equal(t, "author2", out.Reviews[1].AuthorName)
			assert.Equal(t, domain.Negative, out.Reviews[1].Label)
		})
	}
}

func TestSearch_PlaceNotFound(t *testing.T) {
	svc, pc := newService(t, sentiment.PolicyTernary, app.SearchOptions{})
	pc.EXPECT().FindPlace(gomock.Any(), "").Return(nil, nil)

	out := svc.Search(context.Background(), "")
	assert.Equal(t, domain.OutcomePlaceNotFound, out.Kind)
	assert.Nil(t, out.Place)
	assert.Empty(t, out.Reviews)
}

func TestSearch_NoReviews(t *testing.T) {
	svc, pc := newService(t, sentiment.PolicyTernary, app.SearchOptions{})
	pc.EXPECT().FindPlace(gomock.Any(), "quiet spot").Return(&domain.Place{ID: "p1"}, nil)
	pc.EXPECT().PlaceReviews(gomock.Any(), domain.PlaceID("p1"), gomock.Any()).Return(nil, nil)

	out := svc.Search(context.Background(), "quiet spot")
	assert.Equal(t, domain.OutcomeNoReviews, out.Kind)
	assert.Equal(t, domain.PlaceID("p1"), out.Place.ID)
}

func TestSearch_TruncatesPreservingOrder(t *testing.T) {
	svc, pc := newService(t, sentiment.PolicyTernary, app.SearchOptions{MaxReviews: 8})
	raw := reviews(10)
	pc.EXPECT().FindPlace(gomock.Any(), gomock.Any()).Return(&domain.Place{ID: "p"}, nil)
	pc.EXPECT().PlaceReviews(gomock.Any(), gomock.Any(), gomock.Any()).Return(raw, nil)

	out := svc.Search(context.Background(), "busy place")
	require.Equal(t, domain.OutcomeFound, out.Kind)
	require.Len(t, out.Reviews, 8)
	for i, lr := range out.Reviews {
		assert.Equal(t, raw[i], lr.RawReview, "position %d", i)
	}
}

func TestSearch_UnboundedWhenMaxReviewsZero(t *testing.T) {
	svc, pc := newService(t, sentiment.PolicyTernary, app.SearchOptions{MaxReviews: 0})
	pc.EXPECT().FindPlace(gomock.Any(), gomock.Any()).Return(&domain.Place{ID: "p"}, nil)
	pc.EXPECT().PlaceReviews(gomock.Any(), gomock.Any(), gomock.Any()).Return(reviews(10), nil)

	out := svc.Search(context.Background(), "busy place")
	assert.Len(t, out.Reviews, 10)
}

func TestSearch_ZeroScoreDependsOnPolicy(t *testing.T) {
	for policy, want := range map[sentiment.Policy]domain.SentimentLabel{
		sentiment.PolicyTernary: domain.Neutral,
		sentiment.PolicyBinary:  domain.Positive,
	} {
		svc, pc := newService(t, policy, app.SearchOptions{})
		pc.EXPECT().FindPlace(gomock.Any(), gomock.Any()).Return(&domain.Place{ID: "p"}, nil)
		pc.EXPECT().PlaceReviews(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]domain.RawReview{{AuthorName: "x", Text: "meh"}, {AuthorName: "y", Text: ""}}, nil)

		out := svc.Search(context.Background(), "q")
		require.Len(t, out.Reviews, 2)
		assert.Equal(t, want, out.Reviews[0].Label, policy)
		assert.Equal(t, want, out.Reviews[1].Label, policy)
	}
}

func TestSearch_UpstreamFailureIsTransient(t *testing.T) {
	t.Run("resolve", func(t *testing.T) {
		svc, pc := newService(t, sentiment.PolicyTernary, app.SearchOptions{})
		pc.EXPECT().FindPlace(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("%w: boom", domain.ErrUpstream))

		out := svc.Search(context.Background(), "q")
		assert.Equal(t, domain.OutcomeTransientError, out.Kind)
		assert.Equal(t, "resolve: upstream unavailable", out.Reason)
	})
	t.Run("reviews", func(t *testing.T) {
		svc, pc := newService(t, sentiment.PolicyTernary, app.SearchOptions{})
		pc.EXPECT().FindPlace(gomock.Any(), gomock.Any()).Return(&domain.Place{ID: "p"}, nil)
		pc.EXPECT().PlaceReviews(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("dial tcp: refused"))

		out := svc.Search(context.Background(), "q")
		assert.Equal(t, domain.OutcomeTransientError, out.Kind)
		assert.Contains(t, out.Reason, "reviews")
		assert.Empty(t, out.Reviews)
	})
}

func TestSearch_ErrorsAsEmptyParity(t *testing.T) {
	opts := app.SearchOptions{ErrorsAsEmpty: true}

	svc, pc := newService(t, sentiment.PolicyTernary, opts)
	pc.EXPECT().FindPlace(gomock.Any(), gomock.Any()).Return(nil, domain.ErrUpstream)
	assert.Equal(t, domain.OutcomePlaceNotFound, svc.Search(context.Background(), "q").Kind)

	svc, pc = newService(t, sentiment.PolicyTernary, opts)
	pc.EXPECT().FindPlace(gomock.Any(), gomock.Any()).Return(&domain.Place{ID: "p"}, nil)
	pc.EXPECT().PlaceReviews(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrUpstream)
	assert.Equal(t, domain.OutcomeNoReviews, svc.Search(context.Background(), "q").Kind)
}

func TestSearch_Idempotent(t *testing.T) {
	svc, pc := newService(t, sentiment.PolicyTernary, app.SearchOptions{MaxReviews: 8})
	raw := []domain.RawReview{{AuthorName: "a", Text: "Amazing"}, {AuthorName: "b", Text: "not worth"}, {AuthorName: "c", Text: "meh"}}
	pc.EXPECT().FindPlace(gomock.Any(), "q").Return(&domain.Place{ID: "p"}, nil).Times(2)
	pc.EXPECT().PlaceReviews(gomock.Any(), domain.PlaceID("p"), gomock.Any()).Return(raw, nil).Times(2)

	first := svc.Search(context.Background(), "q")
	second := svc.Search(context.Background(), "q")
	assert.Equal(t, first.Kind, second.Kind)
	assert.Equal(t, first.Reviews, second.Reviews)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSearch_IgnoresCallerCancellation(t *testing.T) {
	svc, pc := newService(t, sentiment.PolicyTernary, app.SearchOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pc.EXPECT().FindPlace(gomock.Any(), "q").DoAndReturn(func(ctx context.Context, _ string) (*domain.Place, error) {
		assert.NoError(t, ctx.Err())
		return nil, nil
	})
	assert.Equal(t, domain.OutcomePlaceNotFound, svc.Search(ctx, "q").Kind)
}

func TestSearch_CoalescesConcurrentIdenticalQueries(t *testing.T) {
	svc, pc := newService(t, sentiment.PolicyTernary, app.SearchOptions{})
	gate := make(chan struct{})
	pc.EXPECT().FindPlace(gomock.Any(), "same").DoAndReturn(func(context.Context, string) (*domain.Place, error) {
		<-gate
		return &domain.Place{ID: "p"}, nil
	}).Times(1)
	pc.EXPECT().PlaceReviews(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.RawReview{{AuthorName: "a", Text: "Amazing"}}, nil).Times(1)

	const callers = 5
	var wg sync.WaitGroup
	outs := make([]domain.SearchOutcome, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outs[i] = svc.Search(context.Background(), "same")
		}(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(gate)
	wg.Wait()

	for _, o := range outs {
		require.Equal(t, domain.OutcomeFound, o.Kind)
		require.Len(t, o.Reviews, 1)
	}
	// callers own their slices
	outs[0].Reviews[0].AuthorName = "mutated"
	assert.Equal(t, "a", outs[1].Reviews[0].AuthorName)
}
