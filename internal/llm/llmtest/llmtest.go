// Package llmtest provides a fake OpenAI Responses endpoint for tests.
package llmtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Server answers POST /responses with canned output text and records
// every decoded request body.
type Server struct {
	URL string

	mu       sync.Mutex
	bodies   []map[string]any
	statuses []string
	outputs  []string
	fail     bool
}

// NewServer starts a fake endpoint. Responses are served from outputs in
// order; the last one repeats.
func NewServer(t *testing.T, outputs ...string) *Server {
	t.Helper()

	s := &Server{outputs: outputs}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	s.URL = srv.URL

	return s
}

// QueueStatuses makes the next responses use the given statuses
// ("incomplete" adds max_output_tokens details).
func (s *Server) QueueStatuses(statuses ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statuses = append(s.statuses, statuses...)
}

// FailWith500 makes every following request fail.
func (s *Server) FailWith500() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fail = true
}

func (s *Server) Requests() []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]map[string]any(nil), s.bodies...)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/responses" {
		http.NotFound(w, r)
		return
	}

	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	s.mu.Lock()
	s.bodies = append(s.bodies, body)
	fail := s.fail
	status := "completed"
	if len(s.statuses) > 0 {
		status = s.statuses[0]
		s.statuses = s.statuses[1:]
	}
	text := ""
	if len(s.outputs) > 0 {
		text = s.outputs[0]
		if len(s.outputs) > 1 {
			s.outputs = s.outputs[1:]
		}
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if fail {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
		return
	}

	_ = json.NewEncoder(w).Encode(responseJSON(status, text))
}

func responseJSON(status string, text string) map[string]any {
	resp := map[string]any{
		"id":         "resp_test",
		"object":     "response",
		"created_at": 0,
		"status":     status,
		"model":      "gpt-4o-mini",
		"output": []any{
			map[string]any{
				"type":   "message",
				"id":     "msg_test",
				"status": "completed",
				"role":   "assistant",
				"content": []any{
					map[string]any{"type": "output_text", "text": text, "annotations": []any{}},
				},
			},
		},
	}
	if status == "incomplete" {
		resp["incomplete_details"] = map[string]any{"reason": "max_output_tokens"}
	}

	return resp
}
