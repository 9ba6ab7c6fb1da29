package domain

// Voter captures one registered elector. Storage of the actual record lives
// behind the storage port; the JSON field names are the persisted layout and
// the wire shape of the listing endpoints.
type Voter struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	AadhaarNumber string `json:"aadhaarNumber"`
	PasswordHash  string `json:"passwordHash"`

	// VotedCandidateID is nil until the voter casts a ballot and is set
	// exactly once after that.
	VotedCandidateID *string `json:"votedCandidateId"`
}

// HasVoted reports whether the voter's single ballot has been spent.
func (v Voter) HasVoted() bool {
	return v.VotedCandidateID != nil
}

// Public strips credentials before a voter record leaves the service.
func (v Voter) Public() Voter {
	v.PasswordHash = ""
	return v
}

// Registration is the transient submission a voter sends to register. It is
// validated, converted into a Voter and never persisted in this shape.
type Registration struct {
	FullName        string `json:"fullName"`
	Age             int    `json:"age"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AadhaarNumber   string `json:"aadhaarNumber"`
	ChallengeID     string `json:"challengeId"`
	ChallengeAnswer int    `json:"challengeAnswer"`
}
