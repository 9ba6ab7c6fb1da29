package domain

// Candidate is an electoral candidate managed by the administrator. Votes is
// only ever incremented by the vote-casting operation, never through the
// management surface.
type Candidate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Party       string `json:"party"`
	PhotoURL    string `json:"photoUrl"`
	Description string `json:"description"`
	Votes       int    `json:"votes"`
}

// CandidateInput carries the administrator-editable fields of a candidate.
// Identity and tally are assigned by the service.
type CandidateInput struct {
	Name        string `json:"name"`
	Party       string `json:"party"`
	PhotoURL    string `json:"photoUrl"`
	Description string `json:"description"`
}
