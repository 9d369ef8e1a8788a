// Package platform holds the per-platform constraint and style table.
// The table is read-only after init; Resolve never fails.
package platform

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profile bundles a platform's hard constraints (character cap, hashtag and
// emoji maxima) with its soft style guidance in one concrete record.
type Profile struct {
	Name                string `json:"name" yaml:"name"`
	CharCap             int    `json:"char_cap" yaml:"char_cap"`
	HashtagsMax         int    `json:"hashtags_max" yaml:"hashtags_max"`
	EmojiMax            int    `json:"emoji_max" yaml:"emoji_max"`
	Voice               string `json:"voice" yaml:"voice"`
	EmojiGuideline      string `json:"emoji_guideline" yaml:"emoji_guideline"`
	HashtagGuideline    string `json:"hashtag_guideline" yaml:"hashtag_guideline"`
	FormattingGuideline string `json:"formatting_guideline" yaml:"formatting_guideline"`
	ExtraNotes          string `json:"extra_notes" yaml:"extra_notes"`
}

// DefaultName is the profile every unknown platform resolves to.
const DefaultName = "Instagram"

var profiles = map[string]Profile{
	"Instagram": {
		Name:                "Instagram",
		CharCap:             2200,
		HashtagsMax:         5,
		EmojiMax:            5,
		Voice:               "Casual, energetic, playful. Focus on vibes, feelings, and moments.",
		EmojiGuideline:      "Use emojis naturally to enhance mood (1-5 per post). Avoid overloading every word with emojis.",
		HashtagGuideline:    "Use 3-5 relevant hashtags at the end of the post. Mix branded and generic hashtags.",
		FormattingGuideline: "Short paragraphs, line breaks for readability, occasional emphasis with ALL CAPS.",
		ExtraNotes:          "Hook in the first line. Make it thumb-stopping.",
	},
	"Facebook": {
		Name:                "Facebook",
		CharCap:             125,
		HashtagsMax:         0,
		EmojiMax:            1,
		Voice:               "Friendly and conversational, but a bit more explanatory than Instagram.",
		EmojiGuideline:      "Use emojis sparingly (0-2 per post), mainly to highlight key ideas.",
		HashtagGuideline:    "Hashtags are optional. If used, limit to 1-2 relevant tags.",
		FormattingGuideline: "1-3 short paragraphs. Clear, readable, and easy to skim.",
		ExtraNotes:          "Good place for slightly longer explanations or promotions.",
	},
	"LinkedIn": {
		Name:                "LinkedIn",
		CharCap:             3000,
		HashtagsMax:         3,
		EmojiMax:            2,
		Voice:               "Professional, clear, and value-driven. Focus on benefits, outcomes, and credibility.",
		EmojiGuideline:      "Avoid emojis in most cases. If absolutely necessary, limit to 0-1 subtle emoji.",
		HashtagGuideline:    "Use 0-3 professional hashtags at the end if needed.",
		FormattingGuideline: "Short, well-structured paragraphs. Avoid slang. No all-caps. Sound confident and polished.",
		ExtraNotes:          "Highlight business value, customer experience, and trust.",
	},
	"Twitter": {
		Name:                "Twitter",
		CharCap:             280,
		HashtagsMax:         2,
		EmojiMax:            2,
		Voice:               "Short, punchy, and to the point. Witty if possible.",
		EmojiGuideline:      "Use emojis sparingly (0-2) to add flavor, not clutter.",
		HashtagGuideline:    "Use 1-3 short hashtags. Prioritize relevance over quantity.",
		FormattingGuideline: "Single-paragraph or a short thread. Max impact in minimal characters.",
		ExtraNotes:          "Lead with the core hook in the first few words.",
	},
}

// Historical variants of the same platform map onto one canonical key.
var aliases = map[string]string{
	"X":         "Twitter",
	"Twitter/X": "Twitter",
}

// Resolve returns the profile for name, following aliases and falling back
// to the default profile for anything unknown.
func Resolve(name string) Profile {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	if p, ok := profiles[name]; ok {
		return p
	}
	return profiles[DefaultName]
}

// Names returns the canonical platform names in stable order.
func Names() []string {
	out := make([]string, 0, len(profiles))
	for name := range profiles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LoadTable replaces the built-in table with profiles from a YAML file.
// Intended for process start only; the table must still contain the
// default profile.
func LoadTable(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var loaded map[string]Profile
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse platform table: %w", err)
	}
	if _, ok := loaded[DefaultName]; !ok {
		return fmt.Errorf("platform table must define the default profile %q", DefaultName)
	}
	for name, p := range loaded {
		if p.Name == "" {
			p.Name = name
		}
		if p.CharCap <= 0 {
			return fmt.Errorf("platform %q: char_cap must be positive", name)
		}
		loaded[name] = p
	}
	profiles = loaded
	return nil
}
