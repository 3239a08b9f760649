package export

import (
	"bytes"
	"encoding/json"
	"mime"
	"reflect"
	"testing"
	"time"

	"github.com/wuwenbin0122/persona-studio/internal/models"
)

func TestPDFIsPlaceholderDocument(t *testing.T) {
	doc := PDF(&models.Persona{ID: 1})
	if !bytes.HasPrefix(doc, []byte("%PDF-1.4")) {
		t.Fatalf("expected pdf header, got %q", doc[:8])
	}
	if !bytes.HasSuffix(doc, []byte("%%EOF")) {
		t.Fatalf("expected pdf trailer")
	}

	doc[0] = 'X'
	if PDF(nil)[0] != '%' {
		t.Fatalf("PDF must return a fresh copy")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	persona := &models.Persona{
		ID: 3,
		PersonaDraft: models.PersonaDraft{
			Name:         "Maya Chen",
			TrustDrivers: []string{"Security", "Audit trails"},
		},
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	doc, err := JSON(persona)
	if err != nil {
		t.Fatalf("JSON returned error: %v", err)
	}
	if !bytes.Contains(doc, []byte("\n  \"id\": 3")) {
		t.Fatalf("expected two-space indentation, got %s", doc)
	}

	var decoded models.Persona
	if err := json.Unmarshal(doc, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(&decoded, persona) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, *persona)
	}
}

func TestShareLink(t *testing.T) {
	cases := map[string]string{
		"http://localhost:8080":   "http://localhost:8080/persona/7",
		"https://example.com/":    "https://example.com/persona/7",
		"https://example.com/app": "https://example.com/app/persona/7",
	}
	for base, want := range cases {
		if got := ShareLink(base, 7); got != want {
			t.Fatalf("ShareLink(%q) = %q, want %q", base, got, want)
		}
	}
}

func TestAttachmentDisposition(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{name: "Maya Chen", want: "Maya Chen_persona.pdf"},
		{name: "../etc/passwd", want: ".._etc_passwd_persona.pdf"},
		{name: "Say \"hi\"\r\n", want: "Say _hi__persona.pdf"},
		{name: "   ", want: "persona_persona.pdf"},
		{name: "Zoë", want: "Zoë_persona.pdf"},
	}

	for _, tc := range cases {
		header := AttachmentDisposition(tc.name, "pdf")
		disposition, params, err := mime.ParseMediaType(header)
		if err != nil {
			t.Fatalf("parse %q: %v", header, err)
		}
		if disposition != "attachment" {
			t.Fatalf("expected attachment, got %q", disposition)
		}
		if params["filename"] != tc.want {
			t.Fatalf("name %q: expected filename %q, got %q", tc.name, tc.want, params["filename"])
		}
	}
}

func TestBaseNameMatchesFilename(t *testing.T) {
	for _, name := range []string{"Maya Chen", "A/B \"C\"", ""} {
		if got, want := BaseName(name)+".json", Filename(name, "json"); got != want {
			t.Fatalf("BaseName(%q) = %q, want prefix of %q", name, got, want)
		}
	}
	if got := BaseName(`A/B "C"`); got != "A_B _C__persona" {
		t.Fatalf("unexpected base name %q", got)
	}
}
