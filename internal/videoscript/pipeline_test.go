package videoscript

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"marketeer/internal/llm"
	"marketeer/internal/types"
)

// fakeGen returns canned output and records the prompts it saw.
type fakeGen struct {
	output  func(call int) string
	prompts []string
}

func (f *fakeGen) Generate(_ context.Context, prompt string, _ llm.Params) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.output(len(f.prompts) - 1), nil
}

func videoReq() types.VideoRequest {
	return types.VideoRequest{
		Brand:         "Brew Bliss",
		Product:       "Cold brew",
		Audience:      "commuters",
		Goal:          "drive store visits",
		BlueprintName: "short_ad",
		DurationSec:   20,
		PlatformName:  "Instagram",
		Style:         "warm and energetic",
	}
}

func TestPlanUsesSchedulerAndDefaults(t *testing.T) {
	plan := Plan(videoReq())
	if plan.BlueprintName != "short_ad" || plan.DurationSec != 20 {
		t.Fatalf("plan = %s/%ds", plan.BlueprintName, plan.DurationSec)
	}
	if len(plan.Beats) != 5 {
		t.Fatalf("got %d beats", len(plan.Beats))
	}
	if plan.Beats[4].TEnd != 20 {
		t.Fatalf("last beat ends at %v", plan.Beats[4].TEnd)
	}

	unknown := videoReq()
	unknown.BlueprintName = "mystery"
	if got := Plan(unknown).BlueprintName; got != "short_ad" {
		t.Fatalf("unknown blueprint resolved to %q", got)
	}
}

func TestRunValidJSONPopulatesBeats(t *testing.T) {
	gen := &fakeGen{output: func(i int) string {
		return fmt.Sprintf(`{"voiceover": "line %d", "on_screen": "text %d", "shots": ["s"], "broll": ["b"], "captions": ["c"]}`, i, i)
	}}
	scripter := New(gen, llm.Params{MaxNewTokens: 256})

	resp, err := scripter.Run(context.Background(), videoReq())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(resp.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", resp.Warnings)
	}
	for i, beat := range resp.Plan.Beats {
		if beat.Voiceover != fmt.Sprintf("line %d", i) {
			t.Errorf("beat %d voiceover = %q", i, beat.Voiceover)
		}
	}
	// One backend invocation per beat, strictly in order.
	if len(gen.prompts) != 5 {
		t.Fatalf("backend invoked %d times, want 5", len(gen.prompts))
	}
	if !strings.Contains(gen.prompts[0], "Hook") || !strings.Contains(gen.prompts[4], "Call to Action") {
		t.Fatal("prompts not issued in beat order")
	}
}

func TestRunGarbageOutputFallsBackEverywhere(t *testing.T) {
	gen := &fakeGen{output: func(int) string { return "sorry, I cannot do that" }}
	scripter := New(gen, llm.Params{})

	resp, err := scripter.Run(context.Background(), videoReq())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(resp.Warnings) != 5 {
		t.Fatalf("want one fallback warning per beat, got %d: %v", len(resp.Warnings), resp.Warnings)
	}
	for i, beat := range resp.Plan.Beats {
		if beat.Voiceover == "" || beat.OnScreen == "" || len(beat.Shots) == 0 || len(beat.Broll) == 0 || len(beat.Captions) == 0 {
			t.Fatalf("beat %d not fully populated: %+v", i, beat.BeatContent)
		}
	}
	if !strings.Contains(resp.Warnings[0], "invalid JSON") {
		t.Fatalf("warning text = %q", resp.Warnings[0])
	}
}

func TestRunPartialJSONFillsMissingFields(t *testing.T) {
	gen := &fakeGen{output: func(int) string {
		return `{"voiceover": "keep this", "shots": []}`
	}}
	scripter := New(gen, llm.Params{})

	resp, err := scripter.Run(context.Background(), videoReq())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	beat := resp.Plan.Beats[0]
	if beat.Voiceover != "keep this" {
		t.Fatalf("parsed field overwritten: %q", beat.Voiceover)
	}
	if beat.OnScreen == "" || len(beat.Shots) == 0 {
		t.Fatal("missing fields must be filled from fallback")
	}
	// Four missing fields per beat, five beats.
	if len(resp.Warnings) != 20 {
		t.Fatalf("got %d warnings, want 20", len(resp.Warnings))
	}
	if !strings.Contains(resp.Warnings[0], "missing key 'on_screen'") {
		t.Fatalf("warning text = %q", resp.Warnings[0])
	}
}

func TestRunPromptCarriesTimeWindow(t *testing.T) {
	gen := &fakeGen{output: func(int) string { return "{}" }}
	scripter := New(gen, llm.Params{})

	if _, err := scripter.Run(context.Background(), videoReq()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(gen.prompts[0], "0.0s to 4.0s") {
		t.Fatalf("first beat prompt missing time window:\n%s", gen.prompts[0])
	}
}
