package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"marketeer/internal/blueprint"
	"marketeer/internal/platform"
	"marketeer/internal/types"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	return t
}

func renderCopy(resp *types.CopyResponse) {
	fmt.Printf("Platform: %s (cap %d)\n\n%s\n", resp.Platform, resp.Cap, resp.Final)
	renderAudit(resp.Audit)
}

func renderAudit(audit []types.AuditEntry) {
	if len(audit) == 0 {
		return
	}
	fmt.Println()
	t := newTable()
	t.AppendHeader(table.Row{"Rule", "Detail"})
	for _, entry := range audit {
		detail := ""
		switch entry.Rule {
		case "banned_term":
			detail = fmt.Sprintf("%q -> %q", entry.Bad, entry.Replacement)
		case "length_trim":
			detail = fmt.Sprintf("%d -> %d chars (cap %d)", entry.BeforeLen, entry.AfterLen, entry.Cap)
		}
		t.AppendRow(table.Row{entry.Rule, detail})
	}
	t.Render()
}

func renderVideo(resp *types.VideoScriptResponse) {
	plan := resp.Plan
	fmt.Printf("Blueprint: %s | Platform: %s | Duration: %ds | Style: %s\n\n",
		plan.BlueprintName, plan.PlatformName, plan.DurationSec, plan.Style)

	t := newTable()
	t.AppendHeader(table.Row{"#", "Beat", "Window", "Voiceover", "On screen"})
	for _, beat := range plan.Beats {
		t.AppendRow(table.Row{
			beat.Index + 1,
			beat.Title,
			fmt.Sprintf("%.2f-%.2fs", beat.TStart, beat.TEnd),
			beat.Voiceover,
			beat.OnScreen,
		})
	}
	t.Render()

	for _, beat := range plan.Beats {
		fmt.Printf("\n[%s]\n", beat.Title)
		for _, shot := range beat.Shots {
			fmt.Printf("  shot:    %s\n", shot)
		}
		for _, broll := range beat.Broll {
			fmt.Printf("  b-roll:  %s\n", broll)
		}
		for _, caption := range beat.Captions {
			fmt.Printf("  caption: %s\n", caption)
		}
	}

	if len(resp.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range resp.Warnings {
			fmt.Println("  -", w)
		}
	}
}

func renderChat(final string, trace []types.ToolTrace, audit []types.AuditEntry) {
	fmt.Println(final)
	if len(trace) > 0 {
		fmt.Println()
		t := newTable()
		t.AppendHeader(table.Row{"Tool", "Result"})
		for _, tt := range trace {
			t.AppendRow(table.Row{tt.Call.Name, tt.Result})
		}
		t.Render()
	}
	renderAudit(audit)
}

func renderPlatforms() {
	t := newTable()
	t.AppendHeader(table.Row{"Platform", "Char cap", "Hashtags", "Emojis", "Voice"})
	for _, name := range platform.Names() {
		p := platform.Resolve(name)
		t.AppendRow(table.Row{p.Name, p.CharCap, p.HashtagsMax, p.EmojiMax, p.Voice})
	}
	t.Render()
}

func renderBlueprints() {
	t := newTable()
	t.AppendHeader(table.Row{"Blueprint", "Beats", "Description"})
	for _, name := range blueprint.Names() {
		bp := blueprint.Get(name)
		t.AppendRow(table.Row{bp.Name, len(bp.Beats), bp.Description})
	}
	t.Render()
}
