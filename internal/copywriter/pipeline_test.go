package copywriter

import (
	"context"
	"strings"
	"testing"

	"marketeer/internal/llm"
	"marketeer/internal/types"
)

type fakeGen struct {
	output string
	prompt string
}

func (f *fakeGen) Generate(_ context.Context, prompt string, _ llm.Params) (string, error) {
	f.prompt = prompt
	return f.output, nil
}

func TestRunCleanOutputPassesThrough(t *testing.T) {
	gen := &fakeGen{output: "Fresh cold brew, every morning. Visit us today!"}
	writer := New(gen, llm.Params{MaxNewTokens: 256, Temperature: 0.8, TopP: 0.9})

	resp, err := writer.Run(context.Background(), types.CampaignRequest{
		Brand:        "Brew Bliss",
		Product:      "Cold brew subscription",
		PlatformName: "Instagram",
		Tone:         "friendly",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if resp.Platform != "Instagram" || resp.Cap != 2200 {
		t.Fatalf("resolved %s/%d", resp.Platform, resp.Cap)
	}
	if resp.Final != gen.output || resp.Raw != gen.output {
		t.Fatalf("clean output changed: %q", resp.Final)
	}
	if len(resp.Audit) != 0 {
		t.Fatalf("unexpected audit: %v", resp.Audit)
	}
	if !strings.Contains(gen.prompt, "Brew Bliss") || !strings.Contains(gen.prompt, "Write a single post for Instagram") {
		t.Fatalf("prompt missing campaign context:\n%s", gen.prompt)
	}
}

func TestRunAppliesValidators(t *testing.T) {
	long := "Results guaranteed! " + strings.Repeat("Come and see for yourself. ", 10)
	gen := &fakeGen{output: long}
	writer := New(gen, llm.Params{})

	resp, err := writer.Run(context.Background(), types.CampaignRequest{PlatformName: "Facebook"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Contains(strings.ToLower(resp.Final), "guaranteed") {
		t.Fatalf("banned term survived: %q", resp.Final)
	}
	if len([]rune(resp.Final)) > 125 {
		t.Fatalf("final exceeds Facebook cap: %d chars", len([]rune(resp.Final)))
	}
	if resp.Raw != long {
		t.Fatal("raw must keep the untouched backend output")
	}

	var rules []string
	for _, entry := range resp.Audit {
		rules = append(rules, entry.Rule)
	}
	if len(rules) != 2 || rules[0] != "banned_term" || rules[1] != "length_trim" {
		t.Fatalf("audit rules = %v, want [banned_term length_trim]", rules)
	}
}

func TestRunUnknownPlatformUsesDefault(t *testing.T) {
	gen := &fakeGen{output: "hello"}
	writer := New(gen, llm.Params{})

	resp, err := writer.Run(context.Background(), types.CampaignRequest{PlatformName: "MySpace"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if resp.Platform != "Instagram" || resp.Cap != 2200 {
		t.Fatalf("unknown platform resolved to %s/%d", resp.Platform, resp.Cap)
	}
}
