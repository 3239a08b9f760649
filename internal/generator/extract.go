package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyResponse = errors.New("provider returned an empty response")
	ErrNoJSONObject  = errors.New("no JSON object found in provider response")
)

// ExtractJSON pulls the persona object out of provider text. It tries a strict
// parse, then the body of a Markdown code fence, then the first balanced {...}
// substring that decodes as an object.
func ExtractJSON(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyResponse
	}

	if obj, err := decodeObject(trimmed); err == nil {
		return obj, nil
	}

	if unfenced := stripCodeFences(trimmed); unfenced != trimmed {
		if obj, err := decodeObject(unfenced); err == nil {
			return obj, nil
		}
	}

	var lastErr error
	for start := strings.IndexByte(trimmed, '{'); start >= 0; {
		end := matchBrace(trimmed, start)
		if end < 0 {
			// A truncated object must not yield one of its nested objects;
			// a stray brace in prose may still precede a complete one.
			if opensObject(trimmed, start) {
				break
			}
			next := strings.IndexByte(trimmed[start+1:], '{')
			if next < 0 {
				break
			}
			start = start + 1 + next
			continue
		}

		obj, err := decodeObject(trimmed[start : end+1])
		if err == nil {
			return obj, nil
		}
		lastErr = err

		// Nested objects of a rejected candidate are not persona candidates.
		next := strings.IndexByte(trimmed[end+1:], '{')
		if next < 0 {
			break
		}
		start = end + 1 + next
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoJSONObject, lastErr)
	}
	return nil, ErrNoJSONObject
}

func decodeObject(candidate string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("decoded value is not an object")
	}
	return obj, nil
}

// opensObject reports whether the brace at start is followed by a key or a closing brace.
func opensObject(s string, start int) bool {
	rest := strings.TrimLeft(s[start+1:], " \t\r\n")
	return rest == "" || rest[0] == '"' || rest[0] == '}'
}

// matchBrace returns the index of the brace closing the one at start, or -1.
// Braces inside JSON string literals are skipped.
func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func stripCodeFences(src string) string {
	s := strings.TrimSpace(src)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	body := lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		body = lines[1 : len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}
