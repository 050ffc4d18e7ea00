package models

type CareerMessage struct {
	Role        string       `json:"role"` // "user", "assistant" or "tool"
	Content     string       `json:"content"`
	ToolCalls   []ToolCall   `json:"tool_calls,omitempty"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type ToolResult struct {
	ToolCallID string `json:"tool_call_id"`
	Content    string `json:"content"`
}

type CareerChatRequest struct {
	Messages []CareerMessage `json:"messages"`
}

type CareerChatResponse struct {
	Messages []CareerMessage `json:"messages"`
}

type SearchSnippet struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}
