// Package sentiment turns review text into a discrete label.
//
// A Scorer produces a polarity score and a Policy buckets it. Two policies
// exist because they disagree on a score of exactly zero: the ternary policy
// calls it Neutral, the binary one Positive. Callers pick one explicitly;
// ternary is the default.
package sentiment
