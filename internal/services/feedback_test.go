package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGenerateFeedback(t *testing.T) {
	tests := []struct {
		name       string
		generator  *fakeGenerator
		want       string
		wantPrefix string
	}{
		{
			name:      "answer is trimmed",
			generator: &fakeGenerator{response: "\n  Highlight your Go work.  \n"},
			want:      "Highlight your Go work.",
		},
		{
			name:      "empty answer falls back",
			generator: &fakeGenerator{response: "   "},
			want:      FallbackFeedback,
		},
		{
			name:       "backend error is rendered",
			generator:  &fakeGenerator{err: &GenerationServiceError{Op: "send request", Err: errors.New("connection refused")}},
			wantPrefix: "LLM Error: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFeedbackService(tt.generator, nil, time.Second)
			got := svc.GenerateFeedback(context.Background(), "resume", "job")

			if tt.wantPrefix != "" {
				if !strings.HasPrefix(got, tt.wantPrefix) {
					t.Errorf("feedback = %q, want prefix %q", got, tt.wantPrefix)
				}
				return
			}
			if got != tt.want {
				t.Errorf("feedback = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateFeedbackFromOllamaReplies(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		want       string
		wantPrefix string
	}{
		{name: "error field on success", status: http.StatusOK, body: `{"error":"model is loading"}`, want: FallbackFeedback},
		{name: "empty object", status: http.StatusOK, body: `{}`, want: FallbackFeedback},
		{name: "null response", status: http.StatusOK, body: `{"response":null}`, want: FallbackFeedback},
		{name: "answer", status: http.StatusOK, body: `{"response":"Lead with results."}`, want: "Lead with results."},
		{name: "bad status", status: http.StatusServiceUnavailable, body: `{"error":"busy"}`, wantPrefix: "LLM Error: "},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantPrefix: "LLM Error: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc := NewFeedbackService(NewOllamaGenerator(server.URL, "mistral", time.Second), nil, time.Second)
			got := svc.GenerateFeedback(context.Background(), "resume", "job")

			if tt.wantPrefix != "" {
				if !strings.HasPrefix(got, tt.wantPrefix) {
					t.Errorf("feedback = %q, want prefix %q", got, tt.wantPrefix)
				}
				return
			}
			if got != tt.want {
				t.Errorf("feedback = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateFeedbackTruncatesInputs(t *testing.T) {
	gen := &fakeGenerator{response: "ok"}
	svc := NewFeedbackService(gen, nil, 0)

	resume := strings.Repeat("r", 5000)
	jd := strings.Repeat("j", 10)
	svc.GenerateFeedback(context.Background(), resume, jd)

	if strings.Count(gen.prompt, "r") < 3000 || strings.Contains(gen.prompt, strings.Repeat("r", 3001)) {
		t.Errorf("resume was not truncated to 3000 characters")
	}
	if !strings.Contains(gen.prompt, jd) {
		t.Errorf("short job description should be kept whole")
	}
	if !strings.HasSuffix(gen.prompt, "Feedback:") {
		t.Errorf("prompt should end with the Feedback: cue")
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		text string
		n    int
		want string
	}{
		{text: "short", n: 300, want: "short..."},
		{text: "", n: 300, want: "..."},
		{text: "abcdef", n: 3, want: "abc..."},
		{text: "héllo wörld", n: 4, want: "héll..."},
	}
	for _, tt := range tests {
		if got := Snippet(tt.text, tt.n); got != tt.want {
			t.Errorf("Snippet(%q, %d) = %q, want %q", tt.text, tt.n, got, tt.want)
		}
	}
}
