package domain

// PlaceID is an opaque token in the upstream places namespace.
type PlaceID string

type Place struct {
	ID   PlaceID
	Name string
}
