// Package prompt renders campaign requests and platform profiles into the
// instruction strings sent to the generation backend. Pure templating, one
// builder per call site.
package prompt

import (
	"fmt"
	"strings"

	"marketeer/internal/platform"
	"marketeer/internal/types"
)

// Copy builds the first-draft post prompt for one campaign request.
func Copy(req types.CampaignRequest, profile platform.Profile) string {
	var sb strings.Builder
	sb.WriteString("You are an expert social media marketer.\n")
	sb.WriteString(fmt.Sprintf("Write a single post for %s.\n\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Brand: %s\n", req.Brand))
	sb.WriteString(fmt.Sprintf("Product/Offer: %s\n", req.Product))
	sb.WriteString(fmt.Sprintf("Target audience: %s\n", req.Audience))
	sb.WriteString(fmt.Sprintf("Campaign goal: %s\n", req.Goal))
	sb.WriteString(fmt.Sprintf("Tone: %s\n", req.Tone))
	sb.WriteString(fmt.Sprintf("Call-to-action style: %s\n", req.CTAStyle))
	if extra := strings.TrimSpace(req.ExtraContext); extra != "" {
		sb.WriteString(fmt.Sprintf("Extra context: %s\n", extra))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Keep the copy within approximately %d characters, and make it engaging but natural.\n", profile.CharCap))
	sb.WriteString("Do not include explanations, just the post text itself.")
	return sb.String()
}

// Chat builds a refinement-turn prompt: full campaign context, platform
// style guidance, the transcript so far, and the new user message.
func Chat(req types.CampaignRequest, profile platform.Profile, history []types.ChatTurn, userMessage string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert social media marketer.\n")
	sb.WriteString(fmt.Sprintf("You help refine and iterate on social media posts for %s.\n\n", profile.Name))

	sb.WriteString("Campaign context:\n")
	sb.WriteString(fmt.Sprintf("- Brand: %s\n", req.Brand))
	sb.WriteString(fmt.Sprintf("- Product/Offer: %s\n", req.Product))
	sb.WriteString(fmt.Sprintf("- Target audience: %s\n", req.Audience))
	sb.WriteString(fmt.Sprintf("- Campaign goal: %s\n", req.Goal))
	sb.WriteString(fmt.Sprintf("- Tone requested by user: %s\n", req.Tone))
	sb.WriteString(fmt.Sprintf("- Call-to-action style: %s\n", req.CTAStyle))
	sb.WriteString(fmt.Sprintf("- Extra context from the user: %s\n\n", req.ExtraContext))

	sb.WriteString(fmt.Sprintf("Platform style guidelines for %s:\n", profile.Name))
	sb.WriteString(fmt.Sprintf("- Voice and personality: %s\n", profile.Voice))
	sb.WriteString(fmt.Sprintf("- Emojis: %s\n", profile.EmojiGuideline))
	sb.WriteString(fmt.Sprintf("- Hashtags: %s\n", profile.HashtagGuideline))
	sb.WriteString(fmt.Sprintf("- Formatting: %s\n", profile.FormattingGuideline))
	sb.WriteString(fmt.Sprintf("- Character limit: approximately %d characters.\n\n", profile.CharCap))

	sb.WriteString("Here is the conversation so far between you and the user about this campaign:\n\n")
	sb.WriteString(Transcript(history))
	sb.WriteString("\n\nNow the user says:\n")
	sb.WriteString(userMessage)
	sb.WriteString("\n\nYour task:\n")
	sb.WriteString("- Follow the platform style guidelines and tone.\n")
	sb.WriteString("- Respect the character limit as much as reasonably possible.\n")
	sb.WriteString("- If the user asks to edit or adapt an existing post, transform it accordingly.\n")
	sb.WriteString("- Do NOT include explanations, analysis, or labels in your answer.\n\n")
	sb.WriteString("Respond with ONLY the post text or edited post text the user asked for. Do not add any extra commentary.")
	return sb.String()
}

// Beat builds the JSON-contract prompt for a single video beat.
func Beat(req types.VideoRequest, plan types.VideoPlan, beat types.Beat) string {
	var sb strings.Builder
	sb.WriteString("You are a creative short-form video scriptwriter.\n")
	sb.WriteString(fmt.Sprintf("Platform: %s\n", plan.PlatformName))
	sb.WriteString(fmt.Sprintf("Style: %s\n\n", plan.Style))
	sb.WriteString(fmt.Sprintf("Brand: %s\n", req.Brand))
	sb.WriteString(fmt.Sprintf("Product: %s\n", req.Product))
	sb.WriteString(fmt.Sprintf("Target audience: %s\n", req.Audience))
	sb.WriteString(fmt.Sprintf("Campaign goal: %s\n", req.Goal))
	if extra := strings.TrimSpace(req.ExtraContext); extra != "" {
		sb.WriteString(fmt.Sprintf("Extra context: %s\n", extra))
	}
	sb.WriteString("\n")
	sb.WriteString("This video follows a multi-beat structure. You are writing ONLY the beat:\n")
	sb.WriteString(fmt.Sprintf("- Beat title: %s\n", beat.Title))
	sb.WriteString(fmt.Sprintf("- Beat goal: %s\n", beat.Goal))
	sb.WriteString(fmt.Sprintf("- Time window: %.1fs to %.1fs in the video.\n\n", beat.TStart, beat.TEnd))
	sb.WriteString("Return a single JSON object with EXACTLY these keys:\n")
	sb.WriteString("  \"voiceover\"  (string, <= 18 words)\n")
	sb.WriteString("  \"on_screen\"  (string, <= 36 characters, like a short overlay text)\n")
	sb.WriteString("  \"shots\"      (array of 3 short shot descriptions)\n")
	sb.WriteString("  \"broll\"      (array of 2 short b-roll ideas)\n")
	sb.WriteString("  \"captions\"   (array of 1-2 short caption strings)\n\n")
	sb.WriteString("Do not add any extra keys. Do not add explanations or markdown.\n")
	sb.WriteString("Just output the JSON object.")
	return sb.String()
}

// AgentInstructions builds the standing instruction block for the
// tool-calling chat agent.
func AgentInstructions(req types.CampaignRequest, profile platform.Profile) string {
	var sb strings.Builder
	sb.WriteString("You are Marketeer, an expert marketing copywriter.\n\n")
	sb.WriteString("You help users:\n")
	sb.WriteString("- write first-draft posts\n")
	sb.WriteString("- refine tone\n")
	sb.WriteString("- shorten or expand posts\n")
	sb.WriteString("- adapt copy across platforms\n\n")

	sb.WriteString("Campaign context:\n")
	sb.WriteString(fmt.Sprintf("- Brand: %s\n", req.Brand))
	sb.WriteString(fmt.Sprintf("- Product / offer: %s\n", req.Product))
	sb.WriteString(fmt.Sprintf("- Audience: %s\n", req.Audience))
	sb.WriteString(fmt.Sprintf("- Goal: %s\n", req.Goal))
	sb.WriteString(fmt.Sprintf("- Platform: %s\n", req.PlatformName))
	sb.WriteString(fmt.Sprintf("- Tone: %s\n", req.Tone))
	sb.WriteString(fmt.Sprintf("- CTA style: %s\n", req.CTAStyle))
	sb.WriteString(fmt.Sprintf("- Extra context: %s\n\n", req.ExtraContext))

	sb.WriteString("Platform style guidelines:\n")
	sb.WriteString(fmt.Sprintf("- Voice: %s\n", profile.Voice))
	sb.WriteString(fmt.Sprintf("- Emoji usage: %s\n", profile.EmojiGuideline))
	sb.WriteString(fmt.Sprintf("- Hashtags: %s\n", profile.HashtagGuideline))
	sb.WriteString(fmt.Sprintf("- Formatting: %s\n", profile.FormattingGuideline))
	sb.WriteString(fmt.Sprintf("- Extra notes: %s\n\n", profile.ExtraNotes))

	sb.WriteString("You may have access to special tools that help you shorten text or strip emojis.\n\n")
	sb.WriteString("When you respond:\n")
	sb.WriteString("- If the user clearly wants a simple answer, respond directly.\n")
	sb.WriteString("- If the user is asking to rewrite existing text (e.g. \"shorten this\", \"remove emojis\"), feel free to call tools if they are available.\n")
	sb.WriteString("- Always return clean, user-ready copy (no JSON, no debug).")
	return sb.String()
}

// Transcript flattens prior chat turns into a plain-text transcript.
func Transcript(history []types.ChatTurn) string {
	if len(history) == 0 {
		return "(No previous conversation yet.)"
	}
	var lines []string
	for _, turn := range history {
		if turn.User != "" {
			lines = append(lines, "User: "+turn.User)
		}
		if turn.Assistant != "" {
			lines = append(lines, "Assistant: "+turn.Assistant)
		}
	}
	return strings.Join(lines, "\n")
}
