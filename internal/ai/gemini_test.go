package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGeminiComplete(t *testing.T) {
	var gotPath, gotKey string
	var gotReq geminiRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"generated article"}]}}]}`))
	}))
	defer srv.Close()

	provider := NewGeminiProvider("g-test", srv.URL, time.Second)
	got, err := provider.Complete(context.Background(), "a prompt")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if got != "generated article" {
		t.Errorf("Complete() = %q", got)
	}
	if gotPath != geminiModelPath {
		t.Errorf("path = %q, want %q", gotPath, geminiModelPath)
	}
	if gotKey != "g-test" {
		t.Errorf("key = %q", gotKey)
	}
	if len(gotReq.Contents) != 1 || len(gotReq.Contents[0].Parts) != 1 || gotReq.Contents[0].Parts[0].Text != "a prompt" {
		t.Errorf("contents = %+v", gotReq.Contents)
	}
}

func TestGeminiComplete_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	provider := NewGeminiProvider("g-test", srv.URL, time.Second)
	if _, err := provider.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("Complete() error = nil, want error")
	}
}

func TestGeminiComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	provider := NewGeminiProvider("g-test", srv.URL, time.Second)
	if _, err := provider.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("Complete() error = nil, want error")
	}
}
