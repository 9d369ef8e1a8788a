// Package blueprint defines video narrative structures and turns them into
// timed beat schedules.
package blueprint

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// BeatTemplate is one named beat with its relative share of the timeline.
type BeatTemplate struct {
	ID     string  `json:"id" yaml:"id"`
	Title  string  `json:"title" yaml:"title"`
	Goal   string  `json:"goal" yaml:"goal"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// Blueprint is a named, ordered sequence of beat templates. Weights are
// relative; they are normalized at scheduling time.
type Blueprint struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Beats       []BeatTemplate `json:"beats" yaml:"beats"`
}

// DefaultName is the blueprint every unknown name resolves to.
const DefaultName = "short_ad"

var blueprints = map[string]Blueprint{
	"short_ad": {
		Name:        "short_ad",
		Description: "Punchy short ad for Reels/Shorts/TikTok with strong hook and CTA.",
		Beats: []BeatTemplate{
			{ID: "hook", Title: "Hook", Goal: "Grab attention in the first second and stop the scroll.", Weight: 0.2},
			{ID: "problem", Title: "Problem", Goal: "Show the pain point the viewer feels right now.", Weight: 0.2},
			{ID: "solution", Title: "Solution", Goal: "Introduce the product as the clear solution.", Weight: 0.3},
			{ID: "proof", Title: "Proof", Goal: "Show quick proof: results, social proof, or credibility.", Weight: 0.2},
			{ID: "cta", Title: "Call to Action", Goal: "Give a clear, simple next step.", Weight: 0.1},
		},
	},
	"ugc_review": {
		Name:        "ugc_review",
		Description: "User-generated style review with before/after flow.",
		Beats: []BeatTemplate{
			{ID: "intro", Title: "UGC Intro", Goal: "Introduce yourself quickly and mention the product.", Weight: 0.2},
			{ID: "before", Title: "Before", Goal: "Describe life before using the product (the struggle).", Weight: 0.25},
			{ID: "experience", Title: "Experience", Goal: "Describe what it was like actually trying the product.", Weight: 0.3},
			{ID: "after", Title: "After", Goal: "Describe the positive results / outcome.", Weight: 0.15},
			{ID: "recommend", Title: "Recommendation & CTA", Goal: "Recommend the product and give a simple prompt to act.", Weight: 0.1},
		},
	},
	"how_to": {
		Name:        "how_to",
		Description: "Educational explainer with clear steps and recap.",
		Beats: []BeatTemplate{
			{ID: "intro", Title: "Intro", Goal: "Tell viewers what they will learn and why it matters.", Weight: 0.2},
			{ID: "step1", Title: "Step 1", Goal: "Explain and demo the first key step.", Weight: 0.25},
			{ID: "step2", Title: "Step 2", Goal: "Explain and demo the second key step.", Weight: 0.25},
			{ID: "step3", Title: "Step 3", Goal: "Optional third step or bonus tip.", Weight: 0.15},
			{ID: "wrap", Title: "Recap & CTA", Goal: "Recap key points and suggest the next action.", Weight: 0.15},
		},
	},
}

// Get returns a known blueprint or the default one.
func Get(name string) Blueprint {
	if bp, ok := blueprints[name]; ok {
		return bp
	}
	return blueprints[DefaultName]
}

// Names returns the blueprint names in stable order.
func Names() []string {
	out := make([]string, 0, len(blueprints))
	for name := range blueprints {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// LoadTable replaces the built-in table with blueprints from a YAML file.
// Intended for process start only.
func LoadTable(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var loaded map[string]Blueprint
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse blueprint table: %w", err)
	}
	if _, ok := loaded[DefaultName]; !ok {
		return fmt.Errorf("blueprint table must define the default blueprint %q", DefaultName)
	}
	for name, bp := range loaded {
		if bp.Name == "" {
			bp.Name = name
		}
		for _, beat := range bp.Beats {
			if beat.Weight < 0 {
				return fmt.Errorf("blueprint %q: beat %q has negative weight", name, beat.ID)
			}
		}
		loaded[name] = bp
	}
	blueprints = loaded
	return nil
}
