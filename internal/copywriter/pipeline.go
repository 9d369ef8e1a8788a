// Package copywriter is the single-post generation pipeline: resolve the
// platform profile, compose the prompt, call the backend once, then run
// the validators and collect the audit trail.
package copywriter

import (
	"context"
	"fmt"
	"log"

	"marketeer/internal/llm"
	"marketeer/internal/platform"
	"marketeer/internal/prompt"
	"marketeer/internal/types"
	"marketeer/internal/validate"
)

// Writer generates platform copy via the injected backend.
type Writer struct {
	gen    llm.Generator
	params llm.Params
}

// New creates a copy Writer.
func New(gen llm.Generator, params llm.Params) *Writer {
	return &Writer{gen: gen, params: params}
}

// Run generates one post for the request and returns the raw text, the
// validated final text, and the audit of every correction applied.
func (w *Writer) Run(ctx context.Context, req types.CampaignRequest) (*types.CopyResponse, error) {
	profile := platform.Resolve(req.PlatformName)

	log.Printf("[copy] Generating post for %s...", profile.Name)

	raw, err := w.gen.Generate(ctx, prompt.Copy(req, profile), w.params)
	if err != nil {
		return nil, fmt.Errorf("generate copy: %w", err)
	}

	final, audit := validate.Run(raw, profile)

	return &types.CopyResponse{
		Platform: profile.Name,
		Raw:      raw,
		Final:    final,
		Cap:      profile.CharCap,
		Audit:    audit,
	}, nil
}
