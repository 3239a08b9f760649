// Package persona runs the generate flow shared by the JSON API and the
// server-rendered wizard.
package persona

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wuwenbin0122/persona-studio/internal/generator"
	"github.com/wuwenbin0122/persona-studio/internal/models"
	"github.com/wuwenbin0122/persona-studio/internal/utils"
	"github.com/wuwenbin0122/persona-studio/internal/validation"
)

const recordTimeout = 5 * time.Second

// Store is the subset of store.Memory the service depends on.
type Store interface {
	CreatePersonaRequest(ctx context.Context, input models.PersonaRequestInput) (*models.PersonaRequest, error)
	UpdatePersonaRequest(ctx context.Context, id int64, update models.PersonaRequestUpdate) (*models.PersonaRequest, error)
	CreatePersona(ctx context.Context, draft models.PersonaDraft) (*models.Persona, error)
	GetPersona(ctx context.Context, id int64) (*models.Persona, error)
}

// EventRecorder receives one event per generate attempt.
type EventRecorder interface {
	RecordGeneration(ctx context.Context, event models.GenerationEvent) error
}

type Service struct {
	store     Store
	generator generator.PersonaGenerator
	recorder  EventRecorder
	logger    *zap.Logger
	now       func() time.Time
}

// Outcome is a successful generation.
type Outcome struct {
	Persona         *models.Persona
	RequestID       int64
	DefaultedFields []string
}

// NewService wires the flow. recorder may be nil.
func NewService(store Store, gen generator.PersonaGenerator, recorder EventRecorder, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		generator: gen,
		recorder:  recorder,
		logger:    utils.OrNop(logger),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Generate validates a raw JSON body and runs the flow.
func (s *Service) Generate(ctx context.Context, body []byte) (*Outcome, error) {
	input, err := validation.ParsePersonaRequest(body)
	if err != nil {
		return nil, err
	}
	return s.GenerateFromInput(ctx, input)
}

// GenerateFromFields validates already decoded fields, as posted by the wizard form.
func (s *Service) GenerateFromFields(ctx context.Context, fields map[string]any) (*Outcome, error) {
	input, err := validation.ValidatePersonaRequest(fields)
	if err != nil {
		return nil, err
	}
	return s.GenerateFromInput(ctx, input)
}

// GenerateFromInput stores the request, generates the persona, stores it and
// links the request. A failed generation leaves the request unlinked.
func (s *Service) GenerateFromInput(ctx context.Context, input models.PersonaRequestInput) (*Outcome, error) {
	req, err := s.store.CreatePersonaRequest(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("persona: store request: %w", err)
	}

	started := s.now()
	result, err := s.generator.Generate(ctx, input)
	elapsed := s.now().Sub(started)
	if err != nil {
		s.logger.Error("persona generation failed",
			zap.Int64("request_id", req.ID),
			zap.String("provider", s.generator.Provider()),
			zap.Error(err),
		)
		s.record(ctx, models.GenerationEvent{
			RequestID:  req.ID,
			Outcome:    models.GenerationFailed,
			Error:      err.Error(),
			DurationMS: elapsed.Milliseconds(),
		})
		return nil, err
	}

	persona, err := s.store.CreatePersona(ctx, result.Draft)
	if err != nil {
		return nil, fmt.Errorf("persona: store persona: %w", err)
	}

	if _, err := s.store.UpdatePersonaRequest(ctx, req.ID, models.PersonaRequestUpdate{
		GeneratedPersonaID: &persona.ID,
	}); err != nil {
		return nil, fmt.Errorf("persona: link request: %w", err)
	}

	s.logger.Info("persona generated",
		zap.Int64("request_id", req.ID),
		zap.Int64("persona_id", persona.ID),
		zap.Duration("duration", elapsed),
		zap.Int("defaulted_fields", len(result.DefaultedFields)),
	)
	s.record(ctx, models.GenerationEvent{
		RequestID:       req.ID,
		PersonaID:       persona.ID,
		Outcome:         models.GenerationSucceeded,
		DefaultedFields: result.DefaultedFields,
		DurationMS:      elapsed.Milliseconds(),
	})

	return &Outcome{
		Persona:         persona,
		RequestID:       req.ID,
		DefaultedFields: result.DefaultedFields,
	}, nil
}

func (s *Service) GetPersona(ctx context.Context, id int64) (*models.Persona, error) {
	return s.store.GetPersona(ctx, id)
}

// record never fails the caller; the event outlives a cancelled request.
func (s *Service) record(ctx context.Context, event models.GenerationEvent) {
	if s.recorder == nil {
		return
	}

	event.ID = uuid.NewString()
	event.Provider = s.generator.Provider()
	event.Model = s.generator.Model()
	event.CreatedAt = s.now()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	if err := s.recorder.RecordGeneration(ctx, event); err != nil {
		s.logger.Warn("failed to record generation event",
			zap.String("event_id", event.ID),
			zap.Int64("request_id", event.RequestID),
			zap.Error(err),
		)
	}
}
