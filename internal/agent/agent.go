// Package agent runs a bounded tool-calling conversation: at most two
// backend invocations per turn, with deterministic text-editing tools
// dispatched in between.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"marketeer/internal/llm"
	"marketeer/internal/platform"
	"marketeer/internal/prompt"
	"marketeer/internal/types"
)

// Runner executes agent chat turns against an injected chat backend.
type Runner struct {
	gen    llm.ChatGenerator
	params llm.Params
	tools  []Tool
}

// New creates a Runner with the default tool registry.
func New(gen llm.ChatGenerator, params llm.Params) *Runner {
	return &Runner{gen: gen, params: params, tools: Tools()}
}

// RunTurn executes one agent turn. Round one declares the tool set; if the
// backend requests no tools its text is final. Otherwise every requested
// call is dispatched and a single second round produces the final answer.
// Tool failures become tool result text, never errors.
func (r *Runner) RunTurn(ctx context.Context, req types.CampaignRequest, userMessage string, history []types.ChatTurn) (string, string, []types.ToolTrace, error) {
	profile := platform.Resolve(req.PlatformName)
	instructions := prompt.AgentInstructions(req, profile)

	messages := []llm.Message{{Role: "system", Content: instructions}}
	for _, turn := range history {
		if turn.User != "" {
			messages = append(messages, llm.Message{Role: "user", Content: turn.User})
		}
		if turn.Assistant != "" {
			messages = append(messages, llm.Message{Role: "assistant", Content: turn.Assistant})
		}
	}
	messages = append(messages, llm.Message{Role: "user", Content: userMessage})

	reply, err := r.gen.Chat(ctx, messages, specs(r.tools), r.params)
	if err != nil {
		return "", "", nil, fmt.Errorf("agent first invocation: %w", err)
	}

	if len(reply.ToolCalls) == 0 {
		final := strings.TrimSpace(reply.Content)
		return final, reply.Content, nil, nil
	}

	toolMap := make(map[string]Tool, len(r.tools))
	for _, t := range r.tools {
		toolMap[t.Name] = t
	}

	messages = append(messages, llm.Message{
		Role:      "assistant",
		Content:   reply.Content,
		ToolCalls: reply.ToolCalls,
	})

	trace := make([]types.ToolTrace, 0, len(reply.ToolCalls))
	for _, call := range reply.ToolCalls {
		result := dispatch(toolMap, call)
		trace = append(trace, types.ToolTrace{Call: call, Result: result})
		messages = append(messages, llm.Message{
			Role:       "tool",
			Content:    result,
			ToolCallID: call.ID,
		})
	}

	// Second and final invocation; no further tool-calling is allowed.
	finalReply, err := r.gen.Chat(ctx, messages, specs(r.tools), r.params)
	if err != nil {
		return "", "", trace, fmt.Errorf("agent second invocation: %w", err)
	}

	final := strings.TrimSpace(finalReply.Content)
	return final, finalReply.Content, trace, nil
}

// dispatch resolves and runs one tool call. Unknown tools and tool
// failures are converted into textual results.
func dispatch(toolMap map[string]Tool, call types.ToolCall) string {
	tool, ok := toolMap[call.Name]
	if !ok {
		return fmt.Sprintf("Tool '%s' is not available.", call.Name)
	}

	args := map[string]any{}
	if len(call.Args) > 0 {
		if err := json.Unmarshal(call.Args, &args); err != nil {
			log.Printf("[agent] tool %s: bad arguments: %v", call.Name, err)
		}
	}

	result, err := invoke(tool, args)
	if err != nil {
		return fmt.Sprintf("Tool '%s' failed with error: %v", call.Name, err)
	}
	return result
}
