package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNotifyPostsPayload(t *testing.T) {
	var got Payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type %q", ct)
		}
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &got); err != nil {
			t.Errorf("unmarshal: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(Config{Enabled: true, URL: srv.URL, Origin: "test-origin"})
	fixed := time.Date(2026, 2, 2, 18, 30, 0, 0, time.UTC)
	c.clock = func() time.Time { return fixed }

	c.Notify(context.Background(), "observation_submitted", "ODT-2026-02-02T18:30Z-DSH-001 assembled")

	if got.Event != "observation_submitted" || got.Origin != "test-origin" {
		t.Fatalf("payload %+v", got)
	}
	if got.Timestamp != "2026-02-02T18:30:00Z" {
		t.Fatalf("timestamp %q", got.Timestamp)
	}
}

func TestNotifySwallowsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	srv.Close()

	c := New(Config{Enabled: true, URL: srv.URL})
	// Endpoint is gone; Notify must not panic or block.
	c.Notify(context.Background(), "blocks_expired", "4 blocks cleared")
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Enabled: true}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for missing url")
	}
	cfg.URL = "http://localhost:9000/hook"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
