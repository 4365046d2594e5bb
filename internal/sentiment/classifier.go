package sentiment

import (
	"fmt"
	"math"
	"strings"

	"place_sentiment/internal/domain"
)

// Policy maps a polarity score to a label.
type Policy string

const (
	// PolicyTernary: >0 Positive, ==0 Neutral, <0 Negative.
	PolicyTernary Policy = "ternary"
	// PolicyBinary: >=0 Positive, <0 Negative. Neutral is never produced.
	PolicyBinary Policy = "binary"

	DefaultPolicy = PolicyTernary
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyTernary:
		return PolicyTernary, nil
	case PolicyBinary:
		return PolicyBinary, nil
	}
	return "", fmt.Errorf("unknown sentiment policy %q (want ternary or binary)", s)
}

func (p Policy) Label(score float64) domain.SentimentLabel {
	switch {
	case score < 0:
		return domain.Negative
	case score > 0 || p == PolicyBinary:
		return domain.Positive
	default:
		return domain.Neutral
	}
}

type Classifier struct {
	scorer domain.Scorer
	policy Policy
}

func NewClassifier(s domain.Scorer, p Policy) *Classifier {
	if p == "" {
		p = DefaultPolicy
	}
	return &Classifier{scorer: s, policy: p}
}

func (c *Classifier) Policy() Policy { return c.policy }

// Score returns the scorer's polarity, clamped to [-1, 1]. Blank text scores 0
// without consulting the scorer.
func (c *Classifier) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	s := c.scorer.Score(text)
	switch {
	case math.IsNaN(s):
		return 0
	case s > 1:
		return 1
	case s < -1:
		return -1
	}
	return s
}

func (c *Classifier) Classify(text string) domain.SentimentLabel {
	return c.policy.Label(c.Score(text))
}
