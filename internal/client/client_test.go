package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/richhaase/codescan/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, opts...)
	if err != nil {
		t.Fatalf("New(%q): %v", srv.URL, err)
	}
	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "ftp://host", "http://", "://bad"} {
		if _, err := New(raw); err == nil {
			t.Errorf("New(%q) succeeded, want error", raw)
		}
	}
}

func TestNew_TrimsAndKeepsPathPrefix(t *testing.T) {
	c, err := New(" http://scanner.local/api ")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.endpoint("review"); got != "http://scanner.local/api/review" {
		t.Errorf("review endpoint = %q", got)
	}
	if got := c.endpoint("health"); got != "http://scanner.local/api/health" {
		t.Errorf("health endpoint = %q", got)
	}
}

func TestHealth_Online(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/health" {
			t.Errorf("request = %s %s, want GET /health", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := c.Health(context.Background()); err != nil {
		t.Errorf("Health: %v", err)
	}
}

func TestHealth_NonSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	err := c.Health(context.Background())
	if !errors.Is(err, ErrBadStatus) {
		t.Fatalf("err = %v, want ErrBadStatus", err)
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %T, want *StatusError", err)
	}
	if statusErr.Code != http.StatusServiceUnavailable {
		t.Errorf("code = %d, want 503", statusErr.Code)
	}
}

func TestHealth_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Health(context.Background()); !errors.Is(err, ErrUnreachable) {
		t.Errorf("err = %v, want ErrUnreachable", err)
	}
}

func TestReview_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/review" {
			t.Errorf("request = %s %s, want POST /review", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}

		var got map[string]any
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		want := map[string]any{"code": "def f(): pass", "language": "python"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("body = %v, want %v", got, want)
		}

		_, _ = io.WriteString(w, `{"summary":"ok","scores":{"overall":8,"security":9},"issues":[],"recommendations":[]}`)
	})

	result, err := c.Review(context.Background(), domain.ReviewRequest{ID: "local", Code: "def f(): pass", Language: "python"})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}

	if result.Summary != "ok" {
		t.Errorf("summary = %q", result.Summary)
	}
	if got := result.Scores.Metrics(); !reflect.DeepEqual(got, []string{"overall", "security"}) {
		t.Errorf("metrics = %v, want service order", got)
	}
	if v, _ := result.Scores.Get("security"); v != 9 {
		t.Errorf("security = %v, want 9", v)
	}
	if len(result.Issues) != 0 || len(result.Recommendations) != 0 {
		t.Errorf("expected no issues or recommendations, got %+v", result)
	}
}

func TestReview_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine crashed", http.StatusInternalServerError)
	})

	result, err := c.Review(context.Background(), domain.ReviewRequest{Code: "x", Language: "python"})
	if result != nil {
		t.Errorf("result = %+v, want nil", result)
	}
	if !errors.Is(err, ErrBadStatus) {
		t.Fatalf("err = %v, want ErrBadStatus", err)
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Error("status error should not be ErrMalformedResponse")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %T, want *StatusError", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", statusErr.Code)
	}
	if statusErr.Body != "engine crashed" {
		t.Errorf("body = %q, want %q", statusErr.Body, "engine crashed")
	}
	if !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("message %q missing HTTP 500", err.Error())
	}
}

func TestReview_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"missing summary", `{"scores":{},"issues":[],"recommendations":[]}`},
		{"missing recommendations", `{"summary":"s","scores":{},"issues":[]}`},
		{"score not a number", `{"summary":"s","scores":{"overall":"high"},"issues":[],"recommendations":[]}`},
		{"issue missing suggestion", `{"summary":"s","scores":{},"issues":[{"severity":"high","category":"c","description":"d"}],"recommendations":[]}`},
		{"recommendation not a string", `{"summary":"s","scores":{},"issues":[],"recommendations":[1]}`},
		{"array body", `[]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tc.body)
			})

			result, err := c.Review(context.Background(), domain.ReviewRequest{Code: "x", Language: "python"})
			if result != nil {
				t.Errorf("result = %+v, want nil", result)
			}
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("err = %v, want ErrMalformedResponse", err)
			}
			if errors.Is(err, ErrUnreachable) {
				t.Error("malformed body should not be ErrUnreachable")
			}
		})
	}
}

func TestReview_Timeout(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := c.Review(context.Background(), domain.ReviewRequest{Code: "x", Language: "python"})
	if !errors.Is(err, ErrUnreachable) {
		t.Errorf("err = %v, want ErrUnreachable", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed >= time.Second {
		t.Errorf("timeout took %v", elapsed)
	}
}

func TestReview_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Review(ctx, domain.ReviewRequest{Code: "x", Language: "python"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestReview_IssuesDecoded(t *testing.T) {
	want := domain.ReviewResult{
		Summary: "needs work",
		Scores:  domain.Scores{{Metric: "overall", Value: 4}},
		Issues: []domain.Issue{
			{Severity: "high", Category: "security", Description: "eval on input", Suggestion: "remove eval"},
		},
		Recommendations: []string{"add input validation"},
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(want)
	})

	got, err := c.Review(context.Background(), domain.ReviewRequest{Code: "eval(x)", Language: "javascript"})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("result = %+v, want %+v", *got, want)
	}
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{Code: 404}
	if got := err.Error(); got != "analysis service returned HTTP 404 Not Found" {
		t.Errorf("Error() = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"abc", 5, "abc"},
		{"abcdef", 2, "ab…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
