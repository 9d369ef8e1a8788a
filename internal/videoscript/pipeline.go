// Package videoscript plans a multi-beat video timeline and scripts it
// beat by beat. Each beat is one backend call; malformed output degrades
// to a deterministic fallback and a warning, never an error.
package videoscript

import (
	"context"
	"fmt"
	"log"

	"marketeer/internal/blueprint"
	"marketeer/internal/jsonblock"
	"marketeer/internal/llm"
	"marketeer/internal/prompt"
	"marketeer/internal/types"
)

// Scripter generates video scripts via the injected backend.
type Scripter struct {
	gen        llm.Generator
	params     llm.Params
	debugFirst bool
}

// New creates a video Scripter.
func New(gen llm.Generator, params llm.Params) *Scripter {
	return &Scripter{gen: gen, params: params}
}

// SetDebugFirst enables logging of the raw first-beat backend response.
func (s *Scripter) SetDebugFirst(on bool) { s.debugFirst = on }

// Plan turns the request into a timed beat schedule without touching the
// backend. Unknown blueprint names fall back to the default blueprint.
func Plan(req types.VideoRequest) types.VideoPlan {
	bp := blueprint.Get(req.BlueprintName)
	beats, duration := blueprint.Schedule(bp, req.DurationSec)
	return types.VideoPlan{
		BlueprintName: bp.Name,
		DurationSec:   duration,
		PlatformName:  req.PlatformName,
		Style:         req.Style,
		Beats:         beats,
	}
}

// Run plans and scripts the full video. Beats are processed strictly in
// index order, one backend invocation each; every returned beat is fully
// populated even under total parse failure.
func (s *Scripter) Run(ctx context.Context, req types.VideoRequest) (*types.VideoScriptResponse, error) {
	plan := Plan(req)
	warnings := []string{}

	log.Printf("[video] Scripting %d beats (%s, %ds)...", len(plan.Beats), plan.BlueprintName, plan.DurationSec)

	for i := range plan.Beats {
		beat := &plan.Beats[i]

		raw, err := s.gen.Generate(ctx, prompt.Beat(req, plan, *beat), s.params)
		if err != nil {
			return nil, fmt.Errorf("beat %d (%s): %w", i+1, beat.Title, err)
		}

		if s.debugFirst && i == 0 {
			log.Printf("[video] raw first beat response:\n%s", raw)
		}

		content, warns := recoverContent(raw, i, beat.Title)
		warnings = append(warnings, warns...)
		beat.BeatContent = content
	}

	return &types.VideoScriptResponse{Plan: plan, Warnings: warnings}, nil
}

// recoverContent extracts the beat record from raw output and fills any
// missing field from the deterministic fallback, warning per field.
func recoverContent(raw string, index int, title string) (types.BeatContent, []string) {
	var warnings []string

	extracted, ok := jsonblock.Extract(raw)
	if !ok {
		warnings = append(warnings,
			fmt.Sprintf("Beat %d ('%s') used fallback block due to invalid JSON.", index+1, title))
		return jsonblock.Fallback(title), warnings
	}

	content := *extracted
	fb := jsonblock.Fallback(title)

	missing := func(field string) {
		warnings = append(warnings,
			fmt.Sprintf("Beat %d ('%s') missing key '%s', using fallback.", index+1, title, field))
	}

	if content.Voiceover == "" {
		missing("voiceover")
		content.Voiceover = fb.Voiceover
	}
	if content.OnScreen == "" {
		missing("on_screen")
		content.OnScreen = fb.OnScreen
	}
	if len(content.Shots) == 0 {
		missing("shots")
		content.Shots = fb.Shots
	}
	if len(content.Broll) == 0 {
		missing("broll")
		content.Broll = fb.Broll
	}
	if len(content.Captions) == 0 {
		missing("captions")
		content.Captions = fb.Captions
	}

	return content, warnings
}
