package domain

// RawReview is immutable once received. Rating follows the upstream 1..5
// convention and Time is upstream epoch seconds.
type RawReview struct {
	AuthorName string
	Rating     int
	Text       string
	Time       int64
}

type SentimentLabel string

const (
	Positive SentimentLabel = "Positive"
	Neutral  SentimentLabel = "Neutral"
	Negative SentimentLabel = "Negative"
)

type LabeledReview struct {
	RawReview
	Score float64
	Label SentimentLabel
}
