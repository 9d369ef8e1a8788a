// Package server exposes the generation pipelines over HTTP. These are the
// response shapes the front-end renders; the server itself adds nothing to
// the pipeline semantics.
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"marketeer/internal/agent"
	"marketeer/internal/blueprint"
	"marketeer/internal/chat"
	"marketeer/internal/copywriter"
	"marketeer/internal/platform"
	"marketeer/internal/types"
	"marketeer/internal/videoscript"
)

// Config wires the pipelines into the HTTP handler.
type Config struct {
	Copy     *copywriter.Writer
	Chat     *chat.Turner
	Agent    *agent.Runner
	Video    *videoscript.Scripter
	BasePath string
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	types.CampaignRequest
	Message string           `json:"message"`
	History []types.ChatTurn `json:"history,omitempty"`
	Agent   bool             `json:"agent,omitempty" doc:"Use the tool-calling agent instead of the plain chain."`
}

// ChatResponse is the body of the chat reply.
type ChatResponse struct {
	Final string             `json:"final"`
	Raw   string             `json:"raw"`
	Audit []types.AuditEntry `json:"audit"`
	Tools []types.ToolTrace  `json:"tools,omitempty"`
}

// New returns an HTTP handler exposing the Marketeer API.
func New(cfg Config) http.Handler {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/v1"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}

	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("Marketeer API", "0.1.0"))
	group := huma.NewGroup(api, basePath)

	huma.Register(group, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body struct {
			Status string `json:"status"`
		}
	}, error) {
		out := &struct {
			Body struct {
				Status string `json:"status"`
			}
		}{}
		out.Body.Status = "ok"
		return out, nil
	})

	huma.Register(group, huma.Operation{
		OperationID: "list-platforms",
		Method:      http.MethodGet,
		Path:        "/platforms",
		Summary:     "List platform profiles",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []platform.Profile
	}, error) {
		out := &struct {
			Body []platform.Profile
		}{}
		for _, name := range platform.Names() {
			out.Body = append(out.Body, platform.Resolve(name))
		}
		return out, nil
	})

	huma.Register(group, huma.Operation{
		OperationID: "list-blueprints",
		Method:      http.MethodGet,
		Path:        "/blueprints",
		Summary:     "List video blueprints",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []blueprint.Blueprint
	}, error) {
		out := &struct {
			Body []blueprint.Blueprint
		}{}
		for _, name := range blueprint.Names() {
			out.Body = append(out.Body, blueprint.Get(name))
		}
		return out, nil
	})

	huma.Register(group, huma.Operation{
		OperationID: "generate-copy",
		Method:      http.MethodPost,
		Path:        "/copy",
		Summary:     "Generate platform copy for a campaign request",
	}, func(ctx context.Context, input *struct {
		Body types.CampaignRequest
	}) (*struct {
		Body types.CopyResponse
	}, error) {
		resp, err := cfg.Copy.Run(ctx, input.Body)
		if err != nil {
			return nil, huma.Error502BadGateway("copy generation failed", err)
		}
		out := &struct {
			Body types.CopyResponse
		}{Body: *resp}
		return out, nil
	})

	huma.Register(group, huma.Operation{
		OperationID: "generate-video-script",
		Method:      http.MethodPost,
		Path:        "/video",
		Summary:     "Generate a timed multi-beat video script",
	}, func(ctx context.Context, input *struct {
		Body types.VideoRequest
	}) (*struct {
		Body types.VideoScriptResponse
	}, error) {
		resp, err := cfg.Video.Run(ctx, input.Body)
		if err != nil {
			return nil, huma.Error502BadGateway("video scripting failed", err)
		}
		out := &struct {
			Body types.VideoScriptResponse
		}{Body: *resp}
		return out, nil
	})

	huma.Register(group, huma.Operation{
		OperationID: "chat-turn",
		Method:      http.MethodPost,
		Path:        "/chat",
		Summary:     "Run one chat refinement turn",
	}, func(ctx context.Context, input *struct {
		Body ChatRequest
	}) (*struct {
		Body ChatResponse
	}, error) {
		out := &struct {
			Body ChatResponse
		}{}
		if input.Body.Agent {
			final, raw, trace, err := cfg.Agent.RunTurn(ctx, input.Body.CampaignRequest, input.Body.Message, input.Body.History)
			if err != nil {
				return nil, huma.Error502BadGateway("agent turn failed", err)
			}
			out.Body = ChatResponse{Final: final, Raw: raw, Audit: []types.AuditEntry{}, Tools: trace}
			return out, nil
		}
		final, raw, audit, err := cfg.Chat.Run(ctx, input.Body.CampaignRequest, input.Body.Message, input.Body.History)
		if err != nil {
			return nil, huma.Error502BadGateway("chat turn failed", err)
		}
		out.Body = ChatResponse{Final: final, Raw: raw, Audit: audit}
		return out, nil
	})

	return router
}
