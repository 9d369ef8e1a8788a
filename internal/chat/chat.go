// Package chat runs plain (non-agent) refinement turns: one backend call
// over the composed prompt plus transcript, then the validators.
package chat

import (
	"context"
	"fmt"

	"marketeer/internal/llm"
	"marketeer/internal/platform"
	"marketeer/internal/prompt"
	"marketeer/internal/types"
	"marketeer/internal/validate"
)

// Turner executes chat turns against an injected backend.
type Turner struct {
	gen    llm.Generator
	params llm.Params
}

// New creates a chat Turner.
func New(gen llm.Generator, params llm.Params) *Turner {
	return &Turner{gen: gen, params: params}
}

// Run executes one refinement turn and returns the validated final text,
// the raw backend text, and the audit trail.
func (t *Turner) Run(ctx context.Context, req types.CampaignRequest, userMessage string, history []types.ChatTurn) (string, string, []types.AuditEntry, error) {
	profile := platform.Resolve(req.PlatformName)

	raw, err := t.gen.Generate(ctx, prompt.Chat(req, profile, history, userMessage), t.params)
	if err != nil {
		return "", "", nil, fmt.Errorf("chat turn: %w", err)
	}

	final, audit := validate.Run(raw, profile)
	return final, raw, audit, nil
}
