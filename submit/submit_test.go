package submit

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/use-agent/talentclip/models"
)

func sampleRecord() *models.TalentRecord {
	return models.NewTalentRecord(map[models.Field]string{
		models.FieldFullName:   "Ada Lovelace",
		models.FieldProfileURL: "https://www.linkedin.com/in/ada",
		models.FieldTags:       "math, , engines",
	})
}

func TestSubmit_Success(t *testing.T) {
	var gotBody map[string]any
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotHeader = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Errorf("body is not JSON: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 7}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	if err := c.Submit(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if ct := gotHeader.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}
	if gotHeader.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}

	want := map[string]any{
		"full_name":       "Ada Lovelace",
		"headline":        "",
		"current_role":    "",
		"current_company": "",
		"profile_url":     "https://www.linkedin.com/in/ada",
		"possible_role":   "",
		"tags":            []any{"math", "engines"},
		"notes":           "",
	}
	if diff := cmp.Diff(want, gotBody); diff != "" {
		t.Errorf("posted body mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_ErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"json message", http.StatusBadRequest, `{"message":"duplicate profile"}`, "duplicate profile"},
		{"message list", http.StatusBadRequest, `{"message":["fullName must be a string","tags must be an array"]}`, "fullName must be a string,tags must be an array"},
		{"empty message", http.StatusBadRequest, `{"message":""}`, "Error 400"},
		{"no message", http.StatusInternalServerError, `{"error":"boom"}`, "Error 500"},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, "Error 502"},
		{"empty body", http.StatusServiceUnavailable, ``, "Error 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL, 0).Submit(context.Background(), sampleRecord())
			var httpErr *HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("error = %v (%T), want *HTTPError", err, err)
			}
			if httpErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", httpErr.StatusCode, tt.status)
			}
			if httpErr.Message != tt.want {
				t.Errorf("Message = %q, want %q", httpErr.Message, tt.want)
			}
		})
	}
}

func TestSubmit_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url, 0).Submit(context.Background(), sampleRecord())
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		t.Errorf("transport failure should not be *HTTPError, got %v", err)
	}
}

func TestSubmit_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	err := NewClient(srv.URL, 50*time.Millisecond).Submit(context.Background(), sampleRecord())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) && !strings.Contains(err.Error(), "deadline") {
		t.Errorf("error = %v, want deadline exceeded", err)
	}
}
