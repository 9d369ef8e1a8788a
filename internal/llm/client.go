// Package llm is the boundary to the text-generation backend. The rest of
// the pipeline depends only on the Generator / ChatGenerator interfaces;
// Client is the OpenAI-compatible HTTP implementation (Groq et al.).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"marketeer/internal/types"
)

// ErrEmptyPrompt is returned when a prompt is empty after trimming.
var ErrEmptyPrompt = errors.New("prompt is empty after trimming whitespace")

// Params are the sampling parameters for one backend invocation.
type Params struct {
	MaxNewTokens int
	Temperature  float64
	TopP         float64
}

// Generator is the plain text-completion view of the backend.
type Generator interface {
	Generate(ctx context.Context, prompt string, p Params) (string, error)
}

// Message is one entry in a chat conversation sent to the backend.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []types.ToolCall // set on assistant messages that requested tools
	ToolCallID string           // set on tool-result messages
}

// ToolSpec declares one callable tool to the backend: name, description,
// and a JSON-schema argument object. Implementations stay on our side.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Reply is the backend's answer to a chat invocation: optional text plus
// zero or more tool-call requests.
type Reply struct {
	Content   string
	ToolCalls []types.ToolCall
}

// ChatGenerator is the tool-calling view of the backend.
type ChatGenerator interface {
	Chat(ctx context.Context, messages []Message, tools []ToolSpec, p Params) (*Reply, error)
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a backend client. baseURL is the API root, e.g.
// "https://api.groq.com/openai/v1".
func NewClient(baseURL, model, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// wire types for the chat completions API

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p,omitempty"`
	MaxTokens   int           `json:"max_tokens"`
	Tools       []wireTool    `json:"tools,omitempty"`
}

type chatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []wireToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

type wireTool struct {
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

type wireToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string         `json:"content"`
			ToolCalls []wireToolCall `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends a single-message completion request and returns the text.
// It fails fast on an empty-after-trim prompt.
func (c *Client) Generate(ctx context.Context, prompt string, p Params) (string, error) {
	cleaned := strings.TrimSpace(prompt)
	if cleaned == "" {
		return "", ErrEmptyPrompt
	}
	reply, err := c.Chat(ctx, []Message{{Role: "user", Content: cleaned}}, nil, p)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply.Content), nil
}

// Chat sends a full conversation, optionally declaring tools the backend
// may request.
func (c *Client) Chat(ctx context.Context, messages []Message, tools []ToolSpec, p Params) (*Reply, error) {
	if len(messages) == 0 {
		return nil, errors.New("chat requires at least one message")
	}

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    toWireMessages(messages),
		Temperature: p.Temperature,
		TopP:        p.TopP,
		MaxTokens:   p.MaxNewTokens,
	}
	for _, t := range tools {
		reqBody.Tools = append(reqBody.Tools, wireTool{
			Type: "function",
			Function: wireFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return nil, fmt.Errorf("parse backend response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("backend error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, errors.New("backend returned no choices")
	}

	msg := parsed.Choices[0].Message
	reply := &Reply{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		id := tc.ID
		if id == "" {
			id = uuid.NewString()
		}
		reply.ToolCalls = append(reply.ToolCalls, types.ToolCall{
			ID:   id,
			Name: tc.Function.Name,
			Args: json.RawMessage(tc.Function.Arguments),
		})
	}
	return reply, nil
}

func toWireMessages(messages []Message) []chatMessage {
	out := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		wm := chatMessage{
			Role:       m.Role,
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			var wtc wireToolCall
			wtc.ID = tc.ID
			wtc.Type = "function"
			wtc.Function.Name = tc.Name
			wtc.Function.Arguments = string(tc.Args)
			wm.ToolCalls = append(wm.ToolCalls, wtc)
		}
		out = append(out, wm)
	}
	return out
}
