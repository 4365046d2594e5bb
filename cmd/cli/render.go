package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"place_sentiment/internal/app"
	"place_sentiment/internal/domain"
)

const excerptLen = 60

var labelColor = map[domain.SentimentLabel]*color.Color{
	domain.Positive: color.New(color.FgGreen),
	domain.Neutral:  color.New(color.FgYellow),
	domain.Negative: color.New(color.FgRed),
}

func colorLabel(l domain.SentimentLabel) string {
	if c, ok := labelColor[l]; ok {
		return c.Sprint(string(l))
	}
	return string(l)
}

type reviewOut struct {
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	Time      time.Time `json:"time"`
	Score     float64   `json:"score"`
	Sentiment string    `json:"sentiment"`
}

type outcomeOut struct {
	Query   string      `json:"query"`
	Outcome string      `json:"outcome"`
	Message string      `json:"message"`
	PlaceID string      `json:"place_id,omitempty"`
	Place   string      `json:"place,omitempty"`
	Reviews []reviewOut `json:"reviews"`
}

func writeJSON(w io.Writer, o domain.SearchOutcome) error {
	out := outcomeOut{
		Query:   o.Query,
		Outcome: string(o.Kind),
		Message: app.Message(o.Kind),
		Reviews: make([]reviewOut, 0, len(o.Reviews)),
	}
	if o.Place != nil {
		out.PlaceID, out.Place = string(o.Place.ID), o.Place.Name
	}
	for _, r := range o.Reviews {
		out.Reviews = append(out.Reviews, reviewOut{
			Author: r.AuthorName, Rating: r.Rating, Text: r.Text,
			Time: time.Unix(r.Time, 0).UTC(), Score: r.Score, Sentiment: string(r.Label),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeTable prints the status line and, for Found, one row per review.
func writeTable(w io.Writer, o domain.SearchOutcome) error {
	if o.Kind != domain.OutcomeFound {
		_, err := fmt.Fprintln(w, app.Message(o.Kind))
		return err
	}
	if o.Place != nil && o.Place.Name != "" {
		fmt.Fprintf(w, "%s\n\n", o.Place.Name)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "AUTHOR\tRATING\tDATE\tREVIEW\tSENTIMENT")
	for _, r := range o.Reviews {
		fmt.Fprintf(tw, "%s\t%d/5\t%s\t%s\t%s\n",
			app.Truncate(r.AuthorName, 24),
			r.Rating,
			time.Unix(r.Time, 0).UTC().Format("2006-01-02"),
			app.Truncate(r.Text, excerptLen),
			colorLabel(r.Label),
		)
	}
	return tw.Flush()
}

// summaryLine is the one-line form used by batch.
func summaryLine(o domain.SearchOutcome) string {
	if o.Kind != domain.OutcomeFound {
		return fmt.Sprintf("%q\t%s", o.Query, app.Message(o.Kind))
	}
	counts := map[domain.SentimentLabel]int{}
	for _, r := range o.Reviews {
		counts[r.Label]++
	}
	name := ""
	if o.Place != nil {
		name = o.Place.Name
	}
	return fmt.Sprintf("%q\t%s\t%d reviews\t%s %d\t%s %d\t%s %d",
		o.Query, name, len(o.Reviews),
		colorLabel(domain.Positive), counts[domain.Positive],
		colorLabel(domain.Neutral), counts[domain.Neutral],
		colorLabel(domain.Negative), counts[domain.Negative],
	)
}
