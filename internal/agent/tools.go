package agent

import (
	"fmt"
	"strings"

	"marketeer/internal/llm"
)

// Tool is one deterministic text-editing function the backend may request.
// Call never touches the generation backend.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
	Call        func(args map[string]any) (string, error)
}

// DefaultMaxWords is used by shorten_copy when the backend omits max_words.
const DefaultMaxWords = 40

// Tools returns the fixed tool registry offered to the agent.
func Tools() []Tool {
	return []Tool{
		{
			Name:        "shorten_copy",
			Description: "Shorten the given marketing copy while preserving core meaning and CTA.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text":      map[string]any{"type": "string", "description": "The copy to shorten."},
					"max_words": map[string]any{"type": "integer", "description": "Maximum number of words to keep.", "default": DefaultMaxWords},
				},
				"required": []string{"text"},
			},
			Call: func(args map[string]any) (string, error) {
				text, _ := args["text"].(string)
				maxWords := DefaultMaxWords
				if n, ok := args["max_words"].(float64); ok && n > 0 {
					maxWords = int(n)
				}
				return ShortenCopy(text, maxWords), nil
			},
		},
		{
			Name:        "remove_emojis",
			Description: "Remove emojis and overly playful styling from the copy.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text": map[string]any{"type": "string", "description": "The copy to clean."},
				},
				"required": []string{"text"},
			},
			Call: func(args map[string]any) (string, error) {
				text, _ := args["text"].(string)
				return RemoveEmojis(text), nil
			},
		},
	}
}

// specs converts the registry into the schema shape declared to the backend.
func specs(tools []Tool) []llm.ToolSpec {
	out := make([]llm.ToolSpec, 0, len(tools))
	for _, t := range tools {
		out = append(out, llm.ToolSpec{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}
	return out
}

// ShortenCopy truncates text to at most maxWords words.
func ShortenCopy(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ") + "..."
}

// emojiRanges are the Unicode blocks stripped by RemoveEmojis.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F300, 0x1F5FF}, // symbols and pictographs
	{0x1F680, 0x1F6FF}, // transport and map symbols
	{0x1F1E0, 0x1F1FF}, // regional indicators
}

// RemoveEmojis strips emoji runes and collapses the leftover whitespace.
func RemoveEmojis(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		for _, rng := range emojiRanges {
			if r >= rng[0] && r <= rng[1] {
				return -1
			}
		}
		return r
	}, text)
	return strings.Join(strings.Fields(cleaned), " ")
}

// invoke runs a tool call, converting any panic into an error so a broken
// tool can never abort the turn.
func invoke(t Tool, args map[string]any) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return t.Call(args)
}
