package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wuwenbin0122/persona-studio/internal/models"
)

var (
	ErrNotFound          = errors.New("store: not found")
	ErrDuplicateUsername = errors.New("store: username already taken")
)

// Memory keeps users, personas and persona requests in process memory.
// Each collection has its own id sequence starting at 1. Nothing survives a restart.
type Memory struct {
	mu sync.RWMutex

	users    map[int64]models.User
	personas map[int64]models.Persona
	requests map[int64]models.PersonaRequest

	nextUserID    int64
	nextPersonaID int64
	nextRequestID int64

	now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:         make(map[int64]models.User),
		personas:      make(map[int64]models.Persona),
		requests:      make(map[int64]models.PersonaRequest),
		nextUserID:    1,
		nextPersonaID: 1,
		nextRequestID: 1,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	_ = ctx

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.findUserLocked(user.Username); ok {
		return nil, ErrDuplicateUsername
	}

	user.ID = m.nextUserID
	m.nextUserID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = m.now()
	}
	m.users[user.ID] = user

	return &user, nil
}

func (m *Memory) GetUser(ctx context.Context, id int64) (*models.User, error) {
	_ = ctx

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *Memory) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	_ = ctx

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.findUserLocked(username)
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// findUserLocked scans linearly; the user collection is tiny.
func (m *Memory) findUserLocked(username string) (models.User, bool) {
	for _, user := range m.users {
		if user.Username == username {
			return user, true
		}
	}
	return models.User{}, false
}

func (m *Memory) CreatePersona(ctx context.Context, draft models.PersonaDraft) (*models.Persona, error) {
	_ = ctx

	m.mu.Lock()
	defer m.mu.Unlock()

	persona := models.Persona{
		ID:           m.nextPersonaID,
		PersonaDraft: draft.Clone(),
		CreatedAt:    m.now(),
	}
	m.nextPersonaID++
	m.personas[persona.ID] = persona

	out := persona.Clone()
	return &out, nil
}

func (m *Memory) GetPersona(ctx context.Context, id int64) (*models.Persona, error) {
	_ = ctx

	m.mu.RLock()
	defer m.mu.RUnlock()

	persona, ok := m.personas[id]
	if !ok {
		return nil, ErrNotFound
	}

	out := persona.Clone()
	return &out, nil
}

func (m *Memory) CreatePersonaRequest(ctx context.Context, input models.PersonaRequestInput) (*models.PersonaRequest, error) {
	_ = ctx

	m.mu.Lock()
	defer m.mu.Unlock()

	request := models.PersonaRequest{
		ID:                  m.nextRequestID,
		PersonaRequestInput: input,
		CreatedAt:           m.now(),
	}
	request = request.Clone()
	m.nextRequestID++
	m.requests[request.ID] = request

	out := request.Clone()
	return &out, nil
}

func (m *Memory) GetPersonaRequest(ctx context.Context, id int64) (*models.PersonaRequest, error) {
	_ = ctx

	m.mu.RLock()
	defer m.mu.RUnlock()

	request, ok := m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}

	out := request.Clone()
	return &out, nil
}

// UpdatePersonaRequest merges the non-nil fields of update into the stored request.
func (m *Memory) UpdatePersonaRequest(ctx context.Context, id int64, update models.PersonaRequestUpdate) (*models.PersonaRequest, error) {
	_ = ctx

	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}

	if update.GeneratedPersonaID != nil {
		personaID := *update.GeneratedPersonaID
		request.GeneratedPersonaID = &personaID
	}
	m.requests[id] = request

	out := request.Clone()
	return &out, nil
}
