package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/wuwenbin0122/persona-studio/internal/models"
	"github.com/wuwenbin0122/persona-studio/internal/store"
)

func TestPersonaIDsIncreaseFromOne(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		persona, err := mem.CreatePersona(ctx, sampleDraft())
		if err != nil {
			t.Fatalf("create persona: %v", err)
		}
		if i == 0 && persona.ID != 1 {
			t.Fatalf("expected first persona id 1, got %d", persona.ID)
		}
		if persona.ID <= last {
			t.Fatalf("expected id greater than %d, got %d", last, persona.ID)
		}
		if persona.CreatedAt.IsZero() {
			t.Fatalf("expected createdAt to be set")
		}
		last = persona.ID
	}
}

func TestSequencesAreIndependent(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	if _, err := mem.CreatePersona(ctx, sampleDraft()); err != nil {
		t.Fatalf("create persona: %v", err)
	}
	if _, err := mem.CreatePersona(ctx, sampleDraft()); err != nil {
		t.Fatalf("create persona: %v", err)
	}

	request, err := mem.CreatePersonaRequest(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if request.ID != 1 {
		t.Fatalf("expected request id 1, got %d", request.ID)
	}

	user, err := mem.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected user id 1, got %d", user.ID)
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	if _, err := mem.GetPersona(ctx, 9999); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for persona, got %v", err)
	}
	if _, err := mem.GetPersonaRequest(ctx, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for request, got %v", err)
	}
	if _, err := mem.GetUser(ctx, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for user, got %v", err)
	}
	if _, err := mem.UpdatePersonaRequest(ctx, 3, models.PersonaRequestUpdate{}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestUpdatePersonaRequestLinksPersona(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	request, err := mem.CreatePersonaRequest(ctx, sampleInput())
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if request.GeneratedPersonaID != nil {
		t.Fatalf("expected new request to be unlinked")
	}

	personaID := int64(7)
	updated, err := mem.UpdatePersonaRequest(ctx, request.ID, models.PersonaRequestUpdate{GeneratedPersonaID: &personaID})
	if err != nil {
		t.Fatalf("update request: %v", err)
	}
	if updated.GeneratedPersonaID == nil || *updated.GeneratedPersonaID != 7 {
		t.Fatalf("expected generatedPersonaId 7, got %v", updated.GeneratedPersonaID)
	}

	// An empty update must leave the link in place.
	again, err := mem.UpdatePersonaRequest(ctx, request.ID, models.PersonaRequestUpdate{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if again.GeneratedPersonaID == nil || *again.GeneratedPersonaID != 7 {
		t.Fatalf("expected link to survive empty update")
	}
	if again.ProductType != "saas-platform" {
		t.Fatalf("expected other fields untouched, got %q", again.ProductType)
	}
}

func TestReturnedPersonaIsACopy(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	created, err := mem.CreatePersona(ctx, sampleDraft())
	if err != nil {
		t.Fatalf("create persona: %v", err)
	}
	created.TrustDrivers[0] = "mutated"

	fetched, err := mem.GetPersona(ctx, created.ID)
	if err != nil {
		t.Fatalf("get persona: %v", err)
	}
	if fetched.TrustDrivers[0] != "Security" {
		t.Fatalf("stored persona was mutated through returned value: %q", fetched.TrustDrivers[0])
	}
}

func TestUsernameLookupAndUniqueness(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	if _, err := mem.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "h"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := mem.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "h2"}); !errors.Is(err, store.ErrDuplicateUsername) {
		t.Fatalf("expected duplicate username error, got %v", err)
	}

	user, err := mem.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("lookup by username: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected user id 1, got %d", user.ID)
	}
	if _, err := mem.GetUserByUsername(ctx, "bob"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown username, got %v", err)
	}
}

func sampleDraft() models.PersonaDraft {
	return models.PersonaDraft{
		Name:              "Maya Chen",
		Title:             "Finance Lead",
		Location:          "Austin, TX",
		PrimaryMotivation: "Keep spend predictable",
		TrustDrivers:      []string{"Security", "Transparency"},
		AccessContext:     "Laptop and phone",
		BehavioralInsights: models.BehavioralInsights{
			DecisionMaking:     "Data-driven",
			CommunicationStyle: "Direct",
			LearningPreference: "Hands-on",
			TimeManagement:     "Blocks calendar",
		},
		UserVoiceQuotes: []string{"Show me the numbers"},
		EthicsAssessment: models.EthicsAssessment{
			BiasConsiderations:     []string{"Income assumptions"},
			InclusionOpportunities: []string{"Plain language"},
		},
		StrategicImpact: models.StrategicImpact{
			Product:   []string{"Budget alerts"},
			Marketing: []string{"Trust messaging"},
			Design:    []string{"Clear charts"},
		},
		KeyTakeaway: "Clarity builds trust",
	}
}

func sampleInput() models.PersonaRequestInput {
	return models.PersonaRequestInput{
		ProductType:        "saas-platform",
		Industry:           "finance",
		PrimaryUserGoal:    "manage budgets",
		ProductDescription: "a budgeting app",
	}
}

func TestParseID(t *testing.T) {
	cases := map[string]bool{"1": true, "42": true, "0": false, "-1": false, "1.5": false, "": false, "x": false}
	for raw, want := range cases {
		if _, ok := store.ParseID(raw); ok != want {
			t.Fatalf("ParseID(%q) ok=%v, want %v", raw, ok, want)
		}
	}
}
