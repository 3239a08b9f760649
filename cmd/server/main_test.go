package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wuwenbin0122/persona-studio/internal/generator"
	"github.com/wuwenbin0122/persona-studio/internal/persona"
	"github.com/wuwenbin0122/persona-studio/internal/store"
	"github.com/wuwenbin0122/persona-studio/internal/users"
	"github.com/wuwenbin0122/persona-studio/internal/utils"
)

type staticCompleter string

func (s staticCompleter) Complete(ctx context.Context, prompt string, opts generator.CompleteOptions) (string, error) {
	return string(s), nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &utils.Config{
		BaseURL:            "https://personas.example.com",
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}
	adapter := generator.NewAdapter(staticCompleter(`{"name": "Maya Chen"}`), generator.AdapterOptions{Provider: "fake"}, nil)
	service := persona.NewService(store.NewMemory(), adapter, nil, nil)

	router, err := setupRouter(cfg, service, nil)
	if err != nil {
		t.Fatalf("setupRouter returned error: %v", err)
	}
	return router
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected status %q", body["status"])
	}
	if _, err := time.Parse(time.RFC3339, body["timestamp"]); err != nil {
		t.Fatalf("expected RFC3339 timestamp, got %q", body["timestamp"])
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestRouterServesAPIAndPages(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/personas/generate", strings.NewReader(`{
		"productType": "saas-platform",
		"industry": "finance",
		"primaryUserGoal": "manage budgets",
		"productDescription": "a budgeting app"
	}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/personas/1/share", nil))
	if !strings.Contains(rec.Body.String(), "https://personas.example.com/persona/1") {
		t.Fatalf("expected configured base url in share link, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/persona/1", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Maya Chen") {
		t.Fatalf("expected card page, got %d", rec.Code)
	}
}

func TestOpenAuditSinkNone(t *testing.T) {
	recorder, closeFn, err := openAuditSink(context.Background(), &utils.Config{Audit: utils.AuditConfig{Sink: utils.AuditSinkNone}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recorder != nil {
		t.Fatalf("expected no recorder")
	}
	closeFn()
}

func TestSeedUser(t *testing.T) {
	ctx := context.Background()
	accounts := users.NewService(store.NewMemory())
	cfg := utils.UsersConfig{SeedUsername: "admin", SeedPassword: "s3cret!"}

	if err := seedUser(ctx, accounts, cfg, zap.NewNop()); err != nil {
		t.Fatalf("seedUser returned error: %v", err)
	}
	if err := seedUser(ctx, accounts, cfg, zap.NewNop()); err != nil {
		t.Fatalf("expected reseeding to keep the account, got %v", err)
	}

	user, err := accounts.Authenticate(ctx, "admin", "s3cret!")
	if err != nil {
		t.Fatalf("expected seeded account to authenticate: %v", err)
	}
	if user.PasswordHash != "" {
		t.Fatalf("expected sanitized user")
	}
}

func TestSeedUserSkippedWithoutUsername(t *testing.T) {
	ctx := context.Background()
	accounts := users.NewService(store.NewMemory())

	if err := seedUser(ctx, accounts, utils.UsersConfig{}, zap.NewNop()); err != nil {
		t.Fatalf("seedUser returned error: %v", err)
	}
	if _, err := accounts.Lookup(ctx, 1); !errors.Is(err, users.ErrUserNotFound) {
		t.Fatalf("expected no account, got %v", err)
	}
}

func TestSeedUserRejectsWeakPassword(t *testing.T) {
	accounts := users.NewService(store.NewMemory())
	cfg := utils.UsersConfig{SeedUsername: "admin", SeedPassword: "abc"}

	if err := seedUser(context.Background(), accounts, cfg, zap.NewNop()); !errors.Is(err, users.ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak, got %v", err)
	}
}
