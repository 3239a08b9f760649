package generator

import (
	"net/http"
	"testing"

	"github.com/wuwenbin0122/persona-studio/internal/utils"
)

func TestNewOpenAIClientHasNoClientTimeout(t *testing.T) {
	client := NewOpenAIClient(utils.OpenAIConfig{APIKey: "k"})

	httpClient, ok := client.client.(*http.Client)
	if !ok {
		t.Fatalf("expected *http.Client, got %T", client.client)
	}
	if httpClient.Timeout != 0 {
		t.Fatalf("expected no client timeout, got %s", httpClient.Timeout)
	}
}
