package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketeer/internal/agent"
	"marketeer/internal/chat"
	"marketeer/internal/copywriter"
	"marketeer/internal/llm"
	"marketeer/internal/types"
	"marketeer/internal/videoscript"
)

type fakeGen struct{ output string }

func (f *fakeGen) Generate(_ context.Context, _ string, _ llm.Params) (string, error) {
	return f.output, nil
}

type fakeChat struct{ reply *llm.Reply }

func (f *fakeChat) Chat(_ context.Context, _ []llm.Message, _ []llm.ToolSpec, _ llm.Params) (*llm.Reply, error) {
	return f.reply, nil
}

func newTestHandler(gen llm.Generator) http.Handler {
	return New(Config{
		Copy:     copywriter.New(gen, llm.Params{}),
		Chat:     chat.New(gen, llm.Params{}),
		Agent:    agent.New(&fakeChat{reply: &llm.Reply{Content: "agent says hi"}}, llm.Params{}),
		Video:    videoscript.New(gen, llm.Params{}),
		BasePath: "/v1",
	})
}

func TestHealth(t *testing.T) {
	handler := newTestHandler(&fakeGen{output: "x"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGenerateCopyEndpoint(t *testing.T) {
	handler := newTestHandler(&fakeGen{output: "A guaranteed hit!"})

	body := strings.NewReader(`{"brand": "Brew Bliss", "platform": "Facebook"}`)
	req := httptest.NewRequest("POST", "/v1/copy", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp types.CopyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Platform != "Facebook" || resp.Cap != 125 {
		t.Fatalf("resp = %+v", resp)
	}
	if strings.Contains(strings.ToLower(resp.Final), "guaranteed") {
		t.Fatalf("validators not applied: %q", resp.Final)
	}
	if len(resp.Audit) == 0 {
		t.Fatal("audit missing banned-term entry")
	}
}

func TestVideoEndpointPopulatesAllBeats(t *testing.T) {
	handler := newTestHandler(&fakeGen{output: "not json at all"})

	body := strings.NewReader(`{"blueprint": "short_ad", "duration_sec": 20, "platform": "Instagram", "style": "warm"}`)
	req := httptest.NewRequest("POST", "/v1/video", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp types.VideoScriptResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Plan.Beats) != 5 {
		t.Fatalf("beats = %d", len(resp.Plan.Beats))
	}
	for _, beat := range resp.Plan.Beats {
		if beat.Voiceover == "" {
			t.Fatalf("beat %d not populated", beat.Index)
		}
	}
	if len(resp.Warnings) != 5 {
		t.Fatalf("warnings = %v", resp.Warnings)
	}
}

func TestChatEndpointAgentMode(t *testing.T) {
	handler := newTestHandler(&fakeGen{output: "plain reply"})

	body := strings.NewReader(`{"platform": "Instagram", "message": "hi", "agent": true}`)
	req := httptest.NewRequest("POST", "/v1/chat", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Final != "agent says hi" {
		t.Fatalf("final = %q", resp.Final)
	}
}

func TestListEndpoints(t *testing.T) {
	handler := newTestHandler(&fakeGen{output: "x"})
	for _, path := range []string{"/v1/platforms", "/v1/blueprints"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
	}
}
