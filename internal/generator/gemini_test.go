package generator

import (
	"context"
	"testing"

	"github.com/wuwenbin0122/persona-studio/internal/utils"
)

func TestNewGeminiClientRequiresKey(t *testing.T) {
	if _, err := NewGeminiClient(context.Background(), utils.GeminiConfig{APIKey: "  "}); err == nil {
		t.Fatalf("expected error for missing gemini api key")
	}
}

func TestNewSelectsGeminiWithoutKeyFails(t *testing.T) {
	_, err := New(context.Background(), utils.GenerationConfig{Provider: "gemini"}, nil)
	if err == nil {
		t.Fatalf("expected error when gemini is selected without a key")
	}
}
