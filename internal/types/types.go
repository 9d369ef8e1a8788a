package types

import "encoding/json"

// CampaignRequest captures one structured marketing request. All fields
// default to empty strings; a zero value is a valid (if useless) request.
type CampaignRequest struct {
	Brand        string `json:"brand,omitempty"`
	Product      string `json:"product,omitempty"`
	Audience     string `json:"audience,omitempty"`
	Goal         string `json:"goal,omitempty"`
	PlatformName string `json:"platform,omitempty"`
	Tone         string `json:"tone,omitempty"`
	CTAStyle     string `json:"cta_style,omitempty"`
	ExtraContext string `json:"extra_context,omitempty"`
}

// CopyResponse is the result of one copy generation run.
type CopyResponse struct {
	Platform string       `json:"platform"`
	Raw      string       `json:"raw"`
	Final    string       `json:"final"`
	Cap      int          `json:"cap"`
	Audit    []AuditEntry `json:"audit"`
}

// AuditEntry records one automatic correction applied to generated text.
// Rule-specific fields are populated depending on Rule.
type AuditEntry struct {
	Rule        string `json:"rule"`
	Bad         string `json:"bad,omitempty"`
	Replacement string `json:"replacement,omitempty"`
	BeforeLen   int    `json:"before_len,omitempty"`
	AfterLen    int    `json:"after_len,omitempty"`
	Cap         int    `json:"cap,omitempty"`
}

// ChatTurn is one prior user/assistant exchange in a conversation.
type ChatTurn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// VideoRequest asks for a full multi-beat video script.
type VideoRequest struct {
	Brand         string `json:"brand,omitempty"`
	Product       string `json:"product,omitempty"`
	Audience      string `json:"audience,omitempty"`
	Goal          string `json:"goal,omitempty"`
	BlueprintName string `json:"blueprint,omitempty"`
	DurationSec   int    `json:"duration_sec,omitempty"`
	PlatformName  string `json:"platform,omitempty"`
	Style         string `json:"style,omitempty"`
	ExtraContext  string `json:"extra_context,omitempty"`
}

// BeatContent holds the five generated fields of one beat. Every field is
// guaranteed non-empty after output recovery has run.
type BeatContent struct {
	Voiceover string   `json:"voiceover"`
	OnScreen  string   `json:"on_screen"`
	Shots     []string `json:"shots"`
	Broll     []string `json:"broll"`
	Captions  []string `json:"captions"`
}

// Beat is one timed segment of a video script.
type Beat struct {
	Index  int     `json:"index"`
	Title  string  `json:"title"`
	Goal   string  `json:"goal"`
	TStart float64 `json:"t_start"`
	TEnd   float64 `json:"t_end"`
	BeatContent
}

// VideoPlan is the timed beat schedule plus overall video metadata.
// Beats partition [0, DurationSec] with no gaps or overlaps.
type VideoPlan struct {
	BlueprintName string `json:"blueprint_name"`
	DurationSec   int    `json:"duration_sec"`
	PlatformName  string `json:"platform_name"`
	Style         string `json:"style"`
	Beats         []Beat `json:"beats"`
}

// VideoScriptResponse is the full scripted video handed to the caller.
type VideoScriptResponse struct {
	Plan     VideoPlan `json:"plan"`
	Warnings []string  `json:"warnings"`
}

// ToolCall is a backend-requested invocation of a registered tool. ID pairs
// the tool's result back into the conversation.
type ToolCall struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

// ToolTrace records one dispatched tool call and its textual result.
type ToolTrace struct {
	Call   ToolCall `json:"call"`
	Result string   `json:"result"`
}
