package sentiment

import "github.com/jonreiter/govader"

// Vader scores text with the VADER compound score, already in [-1, 1].
type Vader struct {
	sia *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader {
	return &Vader{sia: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) Score(text string) float64 {
	return v.sia.PolarityScores(text).Compound
}
