package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
	Auth   string
}

type testServer struct {
	server   *httptest.Server
	requests []recordedRequest
}

func newTestServer(t *testing.T, responses map[string]string) *testServer {
	t.Helper()
	ts := &testServer{}

	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		body.ReadFrom(r.Body)

		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.RequestURI(),
			Body:   body.String(),
			Auth:   r.Header.Get("Authorization"),
		})

		key := r.Method + " " + r.URL.Path
		if resp, ok := responses[key]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp))
			return
		}

		w.WriteHeader(404)
		w.Write([]byte(`{"error":{"message":"not found","type":"not_found"}}`))
	}))

	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) client() *apiClient {
	return &apiClient{
		baseURL:    ts.server.URL,
		token:      "test-token",
		httpClient: ts.server.Client(),
	}
}

var ctx = context.Background()

const sampleReading = `{
	"id": "r-123",
	"created_at": "2025-06-01T12:00:00Z",
	"cards": [
		{"slot": "past", "card": {"id": "major-00", "name": "The Fool", "keywords": ["beginnings"]}, "narrative": "Once you leapt."},
		{"slot": "present", "card": {"id": "major-01", "name": "The Magician", "keywords": ["skill"]}, "narrative": "Now you shape."},
		{"slot": "future", "card": {"id": "major-21", "name": "The World", "keywords": ["completion"]}, "narrative": "Soon you arrive."}
	],
	"narrative_source": "template"
}`

func TestDrawReadingRequest(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"POST /v1/readings": sampleReading,
	})

	client := ts.client()

	body := map[string]any{
		"profile": map[string]any{"headline": "Engineer"},
	}
	resp, err := client.post(ctx, "/v1/readings", body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result readingResponse
	if err := decodeJSON(resp, &result); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if result.ID != "r-123" {
		t.Errorf("id = %q, want r-123", result.ID)
	}
	if len(result.Cards) != 3 {
		t.Fatalf("got %d cards, want 3", len(result.Cards))
	}
	if result.Cards[0].Card.Name != "The Fool" {
		t.Errorf("first card = %q, want The Fool", result.Cards[0].Card.Name)
	}

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	r := ts.requests[0]
	if r.Auth != "Bearer test-token" {
		t.Errorf("auth = %q, want Bearer test-token", r.Auth)
	}
	var sent map[string]any
	if err := json.Unmarshal([]byte(r.Body), &sent); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if _, ok := sent["profile"]; !ok {
		t.Error("request body missing profile")
	}
}

func TestListReadingsRequest(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /v1/readings": "[" + sampleReading + "]",
	})

	resp, err := ts.client().get(ctx, "/v1/readings?limit=5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var readings []readingResponse
	if err := decodeJSON(resp, &readings); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("got %d readings, want 1", len(readings))
	}

	if ts.requests[0].Path != "/v1/readings?limit=5" {
		t.Errorf("path = %q", ts.requests[0].Path)
	}
}

func TestDeleteReadingNotFound(t *testing.T) {
	ts := newTestServer(t, map[string]string{})

	resp, err := ts.client().delete(ctx, "/v1/readings/no-such-id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result map[string]string
	err = decodeJSON(resp, &result)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error %q should mention status 404", err)
	}
}

func TestReadingNewRequiresServer(t *testing.T) {
	defer rootCmd.SetArgs(nil)

	// Point the client factory at a server that is not running.
	oldFactory := newAPIClient
	defer func() { newAPIClient = oldFactory }()
	newAPIClient = func() (*apiClient, error) {
		return &apiClient{
			baseURL:    "http://127.0.0.1:1",
			token:      "test-token",
			httpClient: http.DefaultClient,
		}, nil
	}

	rootCmd.SetArgs([]string{"reading", "new", "--headline", "Engineer"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error when server is unreachable")
	}
}

func TestTruncateShortStrings(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"0123456789abcdef", 8, "01234567"},
		{"short", 8, "short"},
		{"", 8, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"past", "Past"},
		{"p", "P"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColorizeRespectsNoColor(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	if result := colorize(colorGreen, "hello"); strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=true should not contain ANSI codes, got %q", result)
	}

	noColor = false
	if result := colorize(colorGreen, "hello"); !strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=false should contain ANSI codes, got %q", result)
	}
}
