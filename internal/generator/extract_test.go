package generator

import (
	"errors"
	"testing"
)

func TestExtractJSONStrict(t *testing.T) {
	obj, err := ExtractJSON(`  {"name": "Maya"}  `)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj["name"] != "Maya" {
		t.Fatalf("expected name Maya, got %v", obj["name"])
	}
}

func TestExtractJSONFromCodeFence(t *testing.T) {
	text := "```json\n{\"name\": \"Maya\", \"title\": \"Lead\"}\n```"
	obj, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj["title"] != "Lead" {
		t.Fatalf("expected title Lead, got %v", obj["title"])
	}
}

func TestExtractJSONFromProse(t *testing.T) {
	text := `Sure! Here is the persona you asked for:
{"name": "Maya {the planner}", "quote": "say \"hi\" }", "nested": {"a": 1}}
Let me know if you need changes.`

	obj, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj["name"] != "Maya {the planner}" {
		t.Fatalf("braces inside strings were miscounted, got name %v", obj["name"])
	}
	if _, ok := obj["nested"].(map[string]any); !ok {
		t.Fatalf("expected nested object to survive extraction")
	}
}

func TestExtractJSONSkipsNonJSONBraces(t *testing.T) {
	text := `Template {placeholder} follows: {"name": "Maya"}`
	obj, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj["name"] != "Maya" {
		t.Fatalf("expected second candidate to be used, got %v", obj)
	}
}

func TestExtractJSONSkipsUnclosedProseBrace(t *testing.T) {
	obj, err := ExtractJSON(`smile :{ then {"name":"A"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj["name"] != "A" {
		t.Fatalf("expected object after the stray brace, got %v", obj)
	}
}

func TestExtractJSONTruncatedObjectFails(t *testing.T) {
	text := `{"name": "Maya", "behavioralInsights": {"decisionMaking": "fast"}`
	if _, err := ExtractJSON(text); !errors.Is(err, ErrNoJSONObject) {
		t.Fatalf("expected ErrNoJSONObject for truncated object, got %v", err)
	}
}

func TestExtractJSONDoesNotFallBackToNestedObject(t *testing.T) {
	text := `{"name": "Maya", "behavioralInsights": {"decisionMaking": "fast"},}`
	if _, err := ExtractJSON(text); !errors.Is(err, ErrNoJSONObject) {
		t.Fatalf("expected ErrNoJSONObject for malformed outer object, got %v", err)
	}
}

func TestExtractJSONFailures(t *testing.T) {
	if _, err := ExtractJSON("   "); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
	if _, err := ExtractJSON("no json here"); !errors.Is(err, ErrNoJSONObject) {
		t.Fatalf("expected ErrNoJSONObject, got %v", err)
	}
	if _, err := ExtractJSON(`{"name": "unterminated"`); !errors.Is(err, ErrNoJSONObject) {
		t.Fatalf("expected ErrNoJSONObject for unbalanced input, got %v", err)
	}
	if _, err := ExtractJSON(`["not", "an", "object"]`); !errors.Is(err, ErrNoJSONObject) {
		t.Fatalf("expected ErrNoJSONObject for array, got %v", err)
	}
}
