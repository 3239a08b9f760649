// Package export renders stored personas as downloadable documents.
package export

import (
	"encoding/base64"
	"encoding/json"
	"mime"
	"strconv"
	"strings"
	"unicode"

	"github.com/wuwenbin0122/persona-studio/internal/models"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeJSON = "application/json"

	fallbackFilename = "persona"
)

// pdfPlaceholder is a minimal single-page document. Real rendering is out of scope.
const pdfPlaceholder = "JVBERi0xLjQKJdPr6eEKMSAwIG9iago8PAovVHlwZSAvQ2F0YWxvZwo+PgplbmRvYmoKMiAwIG9iago8PAovVHlwZSAvUGFnZQo+PgplbmRvYmoKeHJlZgowIDMKMDAwMDAwMDAwMCA2NTUzNSBmIAowMDAwMDAwMDEwIDAwMDAwIG4gCjAwMDAwMDAwNzkgMDAwMDAgbiAKdHJhaWxlcgo8PAovU2l6ZSAzCi9Sb290IDEgMCBSCj4+CnN0YXJ0eHJlZgoxMjgKJSVFT0Y="

var pdfBytes = mustDecode(pdfPlaceholder)

func mustDecode(s string) []byte {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// PDF returns the document bytes for persona. Every persona currently gets
// the same placeholder document.
func PDF(persona *models.Persona) []byte {
	_ = persona
	out := make([]byte, len(pdfBytes))
	copy(out, pdfBytes)
	return out
}

// JSON returns persona as a two-space indented document.
func JSON(persona *models.Persona) ([]byte, error) {
	return json.MarshalIndent(persona, "", "  ")
}

// ShareLink builds the public card URL for a persona id.
func ShareLink(baseURL string, id int64) string {
	return strings.TrimRight(baseURL, "/") + "/persona/" + strconv.FormatInt(id, 10)
}

// BaseName is "<name>_persona" with unsafe characters replaced.
func BaseName(name string) string {
	return sanitize(name) + "_persona"
}

// Filename is BaseName plus the extension.
func Filename(name, ext string) string {
	return BaseName(name) + "." + ext
}

// AttachmentDisposition builds a Content-Disposition header value for a download.
func AttachmentDisposition(name, ext string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": Filename(name, ext)})
}

func sanitize(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"':
			return '_'
		case unicode.IsControl(r):
			return '_'
		}
		return r
	}, strings.TrimSpace(name))

	if strings.Trim(cleaned, "_ .") == "" {
		return fallbackFilename
	}
	return cleaned
}
