package models

import "time"

type BehavioralInsights struct {
	DecisionMaking     string `json:"decisionMaking"`
	CommunicationStyle string `json:"communicationStyle"`
	LearningPreference string `json:"learningPreference"`
	TimeManagement     string `json:"timeManagement"`
}

type EthicsAssessment struct {
	BiasConsiderations     []string `json:"biasConsiderations"`
	InclusionOpportunities []string `json:"inclusionOpportunities"`
}

type StrategicImpact struct {
	Product   []string `json:"product"`
	Marketing []string `json:"marketing"`
	Design    []string `json:"design"`
}

// PersonaDraft is a generated persona that has not been stored yet.
type PersonaDraft struct {
	Name               string             `json:"name"`
	Title              string             `json:"title"`
	Location           string             `json:"location"`
	PrimaryMotivation  string             `json:"primaryMotivation"`
	TrustDrivers       []string           `json:"trustDrivers"`
	AccessContext      string             `json:"accessContext"`
	BehavioralInsights BehavioralInsights `json:"behavioralInsights"`
	UserVoiceQuotes    []string           `json:"userVoiceQuotes"`
	EthicsAssessment   EthicsAssessment   `json:"ethicsAssessment"`
	StrategicImpact    StrategicImpact    `json:"strategicImpact"`
	KeyTakeaway        string             `json:"keyTakeaway"`
}

type Persona struct {
	ID int64 `json:"id"`
	PersonaDraft
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy of the draft.
func (d PersonaDraft) Clone() PersonaDraft {
	d.TrustDrivers = cloneStrings(d.TrustDrivers)
	d.UserVoiceQuotes = cloneStrings(d.UserVoiceQuotes)
	d.EthicsAssessment.BiasConsiderations = cloneStrings(d.EthicsAssessment.BiasConsiderations)
	d.EthicsAssessment.InclusionOpportunities = cloneStrings(d.EthicsAssessment.InclusionOpportunities)
	d.StrategicImpact.Product = cloneStrings(d.StrategicImpact.Product)
	d.StrategicImpact.Marketing = cloneStrings(d.StrategicImpact.Marketing)
	d.StrategicImpact.Design = cloneStrings(d.StrategicImpact.Design)
	return d
}

// Clone returns a deep copy of the persona.
func (p Persona) Clone() Persona {
	p.PersonaDraft = p.PersonaDraft.Clone()
	return p
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}
