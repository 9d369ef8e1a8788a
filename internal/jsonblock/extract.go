// Package jsonblock recovers structured beat content from free-form model
// output. Models wrap JSON in prose, markdown fences, or nothing at all;
// Extract tries escalating strategies and Fallback guarantees a valid
// record when all of them fail.
package jsonblock

import (
	"encoding/json"
	"fmt"
	"strings"

	"marketeer/internal/types"
)

// Extract attempts to parse a beat content object out of raw model output.
// Strategy, first success wins:
//  1. parse the whole trimmed text
//  2. parse the first markdown-fenced block (language tag stripped)
//  3. parse the slice between the first '{' and the last '}'
//
// Returns false when no strategy yields a JSON object.
func Extract(raw string) (*types.BeatContent, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, false
	}

	if c, ok := tryParse(text); ok {
		return c, true
	}

	if block, ok := fencedBlock(text); ok {
		if c, ok := tryParse(block); ok {
			return c, true
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if c, ok := tryParse(text[start : end+1]); ok {
			return c, true
		}
	}

	return nil, false
}

// tryParse accepts only a JSON object; lists, scalars, and null are
// rejected so the caller never receives a half-shaped record.
func tryParse(candidate string) (*types.BeatContent, bool) {
	candidate = strings.TrimSpace(candidate)
	if !strings.HasPrefix(candidate, "{") {
		return nil, false
	}
	var content types.BeatContent
	if err := json.Unmarshal([]byte(candidate), &content); err != nil {
		return nil, false
	}
	return &content, true
}

// fencedBlock returns the content of the first ``` fence, with an optional
// language tag line (```json) stripped.
func fencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start < 0 {
		return "", false
	}
	rest := text[start+3:]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	block := rest[:end]
	if nl := strings.Index(block, "\n"); nl >= 0 {
		tag := strings.TrimSpace(block[:nl])
		if tag != "" && !strings.ContainsAny(tag, "{}") {
			block = block[nl+1:]
		}
	}
	return strings.TrimSpace(block), true
}

// Fallback synthesizes a schema-valid beat record from the beat's title.
// It is deterministic and never subject to recovery itself.
func Fallback(beatTitle string) types.BeatContent {
	return types.BeatContent{
		Voiceover: fmt.Sprintf("Introduce the idea for the '%s' part in a clear, simple line.", beatTitle),
		OnScreen:  beatTitle + " on screen.",
		Shots: []string{
			fmt.Sprintf("Shot of the main subject related to %s.", strings.ToLower(beatTitle)),
			"Close-up shot for extra detail.",
			"Wide shot to show context or environment.",
		},
		Broll: []string{
			"Supporting b-roll that reinforces the message.",
			"Cutaway showing product or user in action.",
		},
		Captions: []string{
			beatTitle + " caption text.",
		},
	}
}
