package domain

type OutcomeKind string

const (
	OutcomeFound          OutcomeKind = "found"
	OutcomePlaceNotFound  OutcomeKind = "place_not_found"
	OutcomeNoReviews      OutcomeKind = "no_reviews"
	OutcomeTransientError OutcomeKind = "transient_error"
)

// SearchOutcome is the only thing a search hands back to its caller.
// Reviews is set for OutcomeFound only; Reason for OutcomeTransientError only.
type SearchOutcome struct {
	ID      string
	Query   string
	Kind    OutcomeKind
	Place   *Place
	Reviews []LabeledReview
	Reason  string
}
