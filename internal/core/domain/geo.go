package domain

// GeoEntry is one entry of the carrier's geography directory. Cities and
// districts share this shape; a district list is scoped to its parent city by
// the fetch call, not by a field on the entry.
type GeoEntry struct {
	Code string `json:"code" bson:"code"`
	Name string `json:"name" bson:"name"`
}

// ReconciledAddress is the outcome of matching a free-text address against
// the directory. District is only meaningful once City is set, since district
// lookup is scoped by city code. Either pointer may stay nil: an unmatched
// entry is a valid terminal state that requires manual operator selection.
type ReconciledAddress struct {
	City     *GeoEntry
	District *GeoEntry
}

// Resolved reports whether both city and district have been selected.
func (r ReconciledAddress) Resolved() bool {
	return r.City != nil && r.District != nil
}
