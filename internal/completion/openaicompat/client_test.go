package openaicompat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spigell/hr-screener/internal/completion"

	"go.uber.org/zap"
)

type recordedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens int `json:"max_tokens"`
}

func newTestServer(t *testing.T, content string, status int) (*httptest.Server, *recordedRequest) {
	t.Helper()

	recorded := &recordedRequest{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %q", got)
		}

		if err := json.NewDecoder(r.Body).Decode(recorded); err != nil {
			t.Errorf("decoding request: %v", err)
		}

		if status != http.StatusOK {
			http.Error(w, "upstream failure", status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  recorded.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			}},
		})
	}))

	t.Cleanup(server.Close)

	return server, recorded
}

func TestCompleteSendsHistoryAndBounds(t *testing.T) {
	server, recorded := newTestServer(t, "Candidate: Alice Smith (Backend Engineer)\nReason: Fits.", http.StatusOK)

	client, err := New("test-key", server.URL+"/v1", "test-model", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	messages := []completion.Message{
		{Role: completion.RoleUser, Content: "ranking request"},
		{Role: completion.RoleAssistant, Content: "first answer"},
		{Role: completion.RoleUser, Content: "follow-up"},
	}

	output, err := client.Complete(context.Background(), messages, 2000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output != "Candidate: Alice Smith (Backend Engineer)\nReason: Fits." {
		t.Fatalf("unexpected output: %q", output)
	}

	if recorded.Model != "test-model" {
		t.Fatalf("unexpected model: %q", recorded.Model)
	}
	if recorded.MaxTokens != 2000 {
		t.Fatalf("unexpected max_tokens: %d", recorded.MaxTokens)
	}

	if len(recorded.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(recorded.Messages))
	}
	if recorded.Messages[0].Role != "user" || recorded.Messages[1].Role != "assistant" || recorded.Messages[2].Role != "user" {
		t.Fatalf("roles not preserved: %+v", recorded.Messages)
	}
	if recorded.Messages[2].Content != "follow-up" {
		t.Fatalf("history order not preserved: %+v", recorded.Messages)
	}
}

func TestCompletePropagatesServiceErrors(t *testing.T) {
	server, _ := newTestServer(t, "", http.StatusInternalServerError)

	client, err := New("test-key", server.URL+"/v1", "test-model", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.Complete(context.Background(), []completion.Message{
		{Role: completion.RoleUser, Content: "hello"},
	}, 100)
	if err == nil {
		t.Fatal("expected error for failing service")
	}
}

func TestCompleteRejectsEmptyContent(t *testing.T) {
	server, _ := newTestServer(t, "   ", http.StatusOK)

	client, err := New("test-key", server.URL+"/v1", "test-model", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.Complete(context.Background(), []completion.Message{
		{Role: completion.RoleUser, Content: "hello"},
	}, 100)
	if err == nil {
		t.Fatal("expected error for empty model content")
	}
}

func TestCompleteRejectsEmptyHistory(t *testing.T) {
	client, err := New("test-key", "", "test-model", 0, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.Complete(context.Background(), nil, 100); err == nil {
		t.Fatal("expected error for empty history")
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New("", "", "model", 0, zap.NewNop()); err == nil {
		t.Fatal("expected error for missing api key")
	}

	if _, err := New("key", "", "", 0, zap.NewNop()); err == nil {
		t.Fatal("expected error for missing model")
	}
}
