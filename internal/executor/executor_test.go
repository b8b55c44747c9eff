package executor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLocalExecuteSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode failed: %v", err)
		}
		if req["prompt"] != "what is two plus two" {
			t.Errorf("unexpected prompt: %v", req["prompt"])
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"response": " four \n"})
	}))
	t.Cleanup(server.Close)

	local := NewLocal(LocalConfig{Host: server.URL, Model: "qwen3:0.6b"}, nil)
	result := local.Execute(context.Background(), "what is two plus two")

	if !result.Success || result.Response != "four" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestLocalExecuteConnectionError(t *testing.T) {
	t.Parallel()

	local := NewLocal(LocalConfig{Host: "http://127.0.0.1:1", Model: "qwen3:0.6b", Timeout: 200 * time.Millisecond}, nil)
	result := local.Execute(context.Background(), "hello")

	if result.Success {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(result.Error, "Ollama") {
		t.Fatalf("expected actionable error, got %q", result.Error)
	}
}

func TestLocalExecuteServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	local := NewLocal(LocalConfig{Host: server.URL, Model: "qwen3:0.6b"}, nil)
	result := local.Execute(context.Background(), "hello")

	if result.Success || !strings.Contains(result.Error, "500") {
		t.Fatalf("unexpected result: %+v", result)
	}
}

type fakeCreator struct {
	response string
	err      error
	model    string
	prompt   string
}

func (f *fakeCreator) create(_ context.Context, model string, prompt string) (string, error) {
	f.model = model
	f.prompt = prompt
	return f.response, f.err
}

func newTestRemote(creator messageCreator) *Remote {
	remote := NewRemote(RemoteConfig{
		APIKey: "sk-test",
		Models: map[string]string{
			"haiku":  "model-haiku",
			"sonnet": "model-sonnet",
			"opus":   "model-opus",
		},
	}, nil)
	remote.creator = creator
	return remote
}

func TestRemoteExecuteSelectsTierModel(t *testing.T) {
	t.Parallel()

	creator := &fakeCreator{response: " the answer \n"}
	remote := newTestRemote(creator)

	result := remote.Execute(context.Background(), "explain goroutines", "sonnet")
	if !result.Success || result.Response != "the answer" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if creator.model != "model-sonnet" {
		t.Fatalf("unexpected model: %q", creator.model)
	}
	if creator.prompt != "explain goroutines" {
		t.Fatalf("unexpected prompt: %q", creator.prompt)
	}
}

func TestRemoteExecuteUnknownTier(t *testing.T) {
	t.Parallel()

	remote := newTestRemote(&fakeCreator{})
	result := remote.Execute(context.Background(), "hello", "turbo")

	if result.Success || !strings.Contains(result.Error, "turbo") {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRemoteExecuteMissingAPIKey(t *testing.T) {
	t.Parallel()

	remote := NewRemote(RemoteConfig{Models: map[string]string{"haiku": "m"}}, nil)
	remote.creator = &fakeCreator{}

	result := remote.Execute(context.Background(), "hello", "haiku")
	if result.Success || !strings.Contains(result.Error, "ANTHROPIC_API_KEY") {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRemoteExecuteCreatorError(t *testing.T) {
	t.Parallel()

	remote := newTestRemote(&fakeCreator{err: errors.New("overloaded")})
	result := remote.Execute(context.Background(), "hello", "opus")

	if result.Success || result.Error != "overloaded" {
		t.Fatalf("unexpected result: %+v", result)
	}
}
