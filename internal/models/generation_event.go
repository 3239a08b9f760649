package models

import "time"

const (
	GenerationSucceeded = "succeeded"
	GenerationFailed    = "failed"
)

// GenerationEvent records the outcome of a single generate attempt.
type GenerationEvent struct {
	ID              string    `bson:"_id" json:"id"`
	RequestID       int64     `bson:"request_id" json:"requestId"`
	PersonaID       int64     `bson:"persona_id" json:"personaId"`
	Provider        string    `bson:"provider" json:"provider"`
	Model           string    `bson:"model" json:"model"`
	Outcome         string    `bson:"outcome" json:"outcome"`
	Error           string    `bson:"error,omitempty" json:"error,omitempty"`
	DefaultedFields []string  `bson:"defaulted_fields" json:"defaultedFields"`
	DurationMS      int64     `bson:"duration_ms" json:"durationMs"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
}
