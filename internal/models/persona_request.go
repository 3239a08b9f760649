package models

import "time"

// PersonaRequestInput is a validated submission before the store assigns it an id.
// Optional fields are nil when the caller did not supply them.
type PersonaRequestInput struct {
	ProductType          string  `json:"productType" validate:"max=200"`
	Industry             string  `json:"industry" validate:"max=200"`
	PrimaryUserGoal      string  `json:"primaryUserGoal" validate:"max=1000"`
	ProductDescription   string  `json:"productDescription" validate:"max=5000"`
	UserContext          *string `json:"userContext" validate:"omitempty,max=5000"`
	Challenges           *string `json:"challenges" validate:"omitempty,max=5000"`
	EthicsConsiderations *string `json:"ethicsConsiderations" validate:"omitempty,max=5000"`
	TrustFactors         *string `json:"trustFactors" validate:"omitempty,max=5000"`
	AdditionalNotes      *string `json:"additionalNotes" validate:"omitempty,max=5000"`
}

type PersonaRequest struct {
	ID int64 `json:"id"`
	PersonaRequestInput
	GeneratedPersonaID *int64    `json:"generatedPersonaId"`
	CreatedAt          time.Time `json:"createdAt"`
}

// PersonaRequestUpdate carries the fields to merge into a stored request; nil fields are left alone.
type PersonaRequestUpdate struct {
	GeneratedPersonaID *int64
}

// Clone returns a copy that shares no pointers with r.
func (r PersonaRequest) Clone() PersonaRequest {
	r.UserContext = cloneString(r.UserContext)
	r.Challenges = cloneString(r.Challenges)
	r.EthicsConsiderations = cloneString(r.EthicsConsiderations)
	r.TrustFactors = cloneString(r.TrustFactors)
	r.AdditionalNotes = cloneString(r.AdditionalNotes)
	if r.GeneratedPersonaID != nil {
		id := *r.GeneratedPersonaID
		r.GeneratedPersonaID = &id
	}
	return r
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
