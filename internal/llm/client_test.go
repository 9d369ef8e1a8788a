package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"marketeer/internal/types"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "test-model", "test-key", 5*time.Second), srv
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	c := NewClient("http://unused", "m", "", time.Second)
	for _, prompt := range []string{"", "   ", "\n\t"} {
		if _, err := c.Generate(context.Background(), prompt, Params{}); !errors.Is(err, ErrEmptyPrompt) {
			t.Errorf("Generate(%q) err = %v, want ErrEmptyPrompt", prompt, err)
		}
	}
}

func TestGenerateReturnsTrimmedContent(t *testing.T) {
	var gotBody map[string]any
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("auth header = %q", auth)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "  hello there  "}}]}`))
	})
	defer srv.Close()

	out, err := c.Generate(context.Background(), "write a post", Params{MaxNewTokens: 256, Temperature: 0.8, TopP: 0.9})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "hello there" {
		t.Fatalf("out = %q", out)
	}
	if gotBody["model"] != "test-model" {
		t.Fatalf("model = %v", gotBody["model"])
	}
	if gotBody["max_tokens"] != float64(256) {
		t.Fatalf("max_tokens = %v", gotBody["max_tokens"])
	}
	if gotBody["top_p"] != 0.9 {
		t.Fatalf("top_p = %v", gotBody["top_p"])
	}
}

func TestChatParsesToolCalls(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {
				"content": "",
				"tool_calls": [{
					"id": "call-7",
					"type": "function",
					"function": {"name": "shorten_copy", "arguments": "{\"text\": \"hi\"}"}
				}]
			}}]
		}`))
	})
	defer srv.Close()

	reply, err := c.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, nil, Params{})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(reply.ToolCalls) != 1 {
		t.Fatalf("tool calls = %v", reply.ToolCalls)
	}
	tc := reply.ToolCalls[0]
	if tc.ID != "call-7" || tc.Name != "shorten_copy" {
		t.Fatalf("tool call = %+v", tc)
	}
	var args map[string]any
	if err := json.Unmarshal(tc.Args, &args); err != nil || args["text"] != "hi" {
		t.Fatalf("args = %s (%v)", tc.Args, err)
	}
}

func TestChatSynthesizesMissingCorrelationID(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {
				"tool_calls": [{"type": "function", "function": {"name": "remove_emojis", "arguments": "{}"}}]
			}}]
		}`))
	})
	defer srv.Close()

	reply, err := c.Chat(context.Background(), []Message{{Role: "user", Content: "x"}}, nil, Params{})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply.ToolCalls[0].ID == "" {
		t.Fatal("missing correlation id must be synthesized")
	}
}

func TestChatSerializesToolDeclarationsAndResults(t *testing.T) {
	var gotBody struct {
		Messages []map[string]any `json:"messages"`
		Tools    []map[string]any `json:"tools"`
	}
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	})
	defer srv.Close()

	messages := []Message{
		{Role: "system", Content: "instructions"},
		{Role: "assistant", ToolCalls: []types.ToolCall{{ID: "c1", Name: "shorten_copy", Args: json.RawMessage(`{"text":"x"}`)}}},
		{Role: "tool", Content: "shortened", ToolCallID: "c1"},
	}
	tools := []ToolSpec{{Name: "shorten_copy", Description: "shorten", Parameters: map[string]any{"type": "object"}}}

	if _, err := c.Chat(context.Background(), messages, tools, Params{}); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if len(gotBody.Tools) != 1 || gotBody.Tools[0]["type"] != "function" {
		t.Fatalf("tools = %v", gotBody.Tools)
	}
	if gotBody.Messages[2]["tool_call_id"] != "c1" {
		t.Fatalf("tool message = %v", gotBody.Messages[2])
	}
}

func TestChatSurfacesAPIErrors(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": {"message": "model overloaded"}}`))
	})
	defer srv.Close()

	_, err := c.Chat(context.Background(), []Message{{Role: "user", Content: "x"}}, nil, Params{})
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("err = %v", err)
	}
}

func TestChatNoChoicesIsAnError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	})
	defer srv.Close()

	if _, err := c.Chat(context.Background(), []Message{{Role: "user", Content: "x"}}, nil, Params{}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
