// Command smoke drives a running server through the generate, fetch, export
// and share endpoints and reports what passed.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
)

type smokeClient struct {
	baseURL string
	client  *http.Client
}

type check struct {
	name string
	fn   func() error
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the persona server")
	productType := flag.String("product", "saas-platform", "Product type to generate for")
	industry := flag.String("industry", "finance", "Industry to generate for")
	timeout := flag.Duration("timeout", 60*time.Second, "HTTP timeout per request")
	flag.Parse()

	sc := &smokeClient{
		baseURL: strings.TrimRight(*baseURL, "/"),
		client:  &http.Client{Timeout: *timeout},
	}

	fmt.Printf("%sPersona Studio smoke test against %s%s\n\n", colorCyan, sc.baseURL, colorReset)

	var personaID int64
	checks := []check{
		{"health", sc.health},
		{"generate", func() error {
			id, err := sc.generate(*productType, *industry)
			personaID = id
			return err
		}},
		{"fetch", func() error { return sc.expectStatus("/api/personas/"+itoa(personaID), http.StatusOK) }},
		{"not found", func() error { return sc.expectStatus("/api/personas/999999", http.StatusNotFound) }},
		{"validation", sc.validation},
		{"export pdf", func() error { return sc.expectStatus("/api/personas/"+itoa(personaID)+"/export/pdf", http.StatusOK) }},
		{"export json", func() error { return sc.expectStatus("/api/personas/"+itoa(personaID)+"/export/json", http.StatusOK) }},
		{"share", func() error { return sc.share(personaID) }},
	}

	failed := 0
	for _, c := range checks {
		if err := c.fn(); err != nil {
			failed++
			fmt.Printf("%s✗ %s: %v%s\n", colorRed, c.name, err, colorReset)
			continue
		}
		fmt.Printf("%s✓ %s%s\n", colorGreen, c.name, colorReset)
	}

	fmt.Printf("\nPassed: %d  Failed: %d\n", len(checks)-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func (sc *smokeClient) health() error {
	return sc.expectStatus("/health", http.StatusOK)
}

func (sc *smokeClient) generate(productType, industry string) (int64, error) {
	payload := map[string]string{
		"productType":        productType,
		"industry":           industry,
		"primaryUserGoal":    "manage budgets",
		"productDescription": "a budgeting app",
	}

	status, body, err := sc.postJSON("/api/personas/generate", payload)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("expected status 200, got %d: %s", status, body)
	}

	var resp struct {
		Persona struct {
			ID          int64  `json:"id"`
			Name        string `json:"name"`
			Title       string `json:"title"`
			KeyTakeaway string `json:"keyTakeaway"`
		} `json:"persona"`
		RequestID int64 `json:"requestId"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if resp.Persona.Name == "" || resp.Persona.Title == "" || resp.Persona.KeyTakeaway == "" {
		return 0, fmt.Errorf("persona is missing name, title or key takeaway: %s", body)
	}

	fmt.Printf("  generated %q (persona %d, request %d)\n", resp.Persona.Name, resp.Persona.ID, resp.RequestID)
	return resp.Persona.ID, nil
}

func (sc *smokeClient) validation() error {
	status, body, err := sc.postJSON("/api/personas/generate", map[string]string{"industry": "finance"})
	if err != nil {
		return err
	}
	if status != http.StatusBadRequest {
		return fmt.Errorf("expected status 400, got %d: %s", status, body)
	}
	return nil
}

func (sc *smokeClient) share(id int64) error {
	resp, err := sc.client.Get(sc.baseURL + "/api/personas/" + itoa(id) + "/share")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body struct {
		ShareLink string `json:"shareLink"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !strings.HasSuffix(body.ShareLink, "/persona/"+itoa(id)) {
		return fmt.Errorf("unexpected share link %q", body.ShareLink)
	}
	return nil
}

func (sc *smokeClient) expectStatus(path string, want int) error {
	resp, err := sc.client.Get(sc.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode != want {
		return fmt.Errorf("GET %s: expected status %d, got %d", path, want, resp.StatusCode)
	}
	return nil
}

func (sc *smokeClient) postJSON(path string, payload any) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	resp, err := sc.client.Post(sc.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func itoa(id int64) string {
	return fmt.Sprintf("%d", id)
}
