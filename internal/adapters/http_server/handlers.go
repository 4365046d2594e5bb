// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"place_sentiment/internal/app"
	"place_sentiment/internal/domain"
)

const excerptLen = 140

type Searcher interface {
	Search(ctx context.Context, query string) domain.SearchOutcome
}

type Handlers struct {
	S        Searcher
	Guard    domain.Guard
	GuardTTL time.Duration
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type placeJSON struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type reviewJSON struct {
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Excerpt   string    `json:"excerpt"`
	Time      time.Time `json:"time"`
	Score     float64   `json:"score"`
	Sentiment string    `json:"sentiment"`
}

type searchResponse struct {
	ID      string       `json:"id"`
	Query   string       `json:"query"`
	Outcome string       `json:"outcome"`
	Message string       `json:"message"`
	Place   *placeJSON   `json:"place,omitempty"`
	Reviews []reviewJSON `json:"reviews"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/search", h.search)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func toResponse(o domain.SearchOutcome) searchResponse {
	resp := searchResponse{
		ID:      o.ID,
		Query:   o.Query,
		Outcome: string(o.Kind),
		Message: app.Message(o.Kind),
		Reviews: make([]reviewJSON, 0, len(o.Reviews)),
	}
	if o.Place != nil {
		resp.Place = &placeJSON{ID: string(o.Place.ID), Name: o.Place.Name}
	}
	for _, r := range o.Reviews {
		resp.Reviews = append(resp.Reviews, reviewJSON{
			Author:    r.AuthorName,
			Rating:    r.Rating,
			Text:      r.Text,
			Excerpt:   app.Truncate(r.Text, excerptLen),
			Time:      time.Unix(r.Time, 0).UTC(),
			Score:     r.Score,
			Sentiment: string(r.Label),
		})
	}
	return resp
}

// search forwards q untouched; a missing q is searched as the empty string.
func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	if h.Guard != nil {
		key := remoteIP(r) + "|" + strings.ToLower(strings.TrimSpace(query))
		release, ok, err := h.Guard.Acquire(r.Context(), key, h.GuardTTL)
		switch {
		case err != nil:
			// fail open: a broken guard must not take search down with it
			log.Warn().Err(err).Msg("in-flight guard unavailable")
		case !ok:
			writeProblem(w, http.StatusConflict, "Conflict", domain.ErrSearchInFlight.Error())
			return
		default:
			defer release()
		}
	}

	out := h.S.Search(r.Context(), query)

	status := http.StatusOK
	if out.Kind == domain.OutcomeTransientError {
		status = http.StatusServiceUnavailable
		w.Header().Set("Retry-After", "5")
	}
	body, err := json.Marshal(toResponse(out))
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal search response")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write search body")
	}
}
