package career

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"interviewcoach/models"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// AgentTool is the interface every tool exposed to the agent implements.
type AgentTool interface {
	Name() string
	Description() string
	Call(ctx context.Context, input string) (string, error)
	GetAnthropicToolSpec() anthropic.ToolInputSchemaParam
}

func generateAnthropicSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}

type WebSearchToolInput struct {
	Query string `json:"query" jsonschema:"required,description=The search query to run"`
}

// WebSearchTool performs a Google search through the Serper API and returns
// the top organic results as JSON snippets.
type WebSearchTool struct {
	apiKey string
	client *http.Client
}

func NewWebSearchTool(apiKey string) WebSearchTool {
	return WebSearchTool{
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (t WebSearchTool) Name() string {
	return "web_search"
}

func (t WebSearchTool) Description() string {
	return "Performs a real-time web search for recent, trending, or time-sensitive career and tech information"
}

func (t WebSearchTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[WebSearchToolInput]()
}

func (t WebSearchTool) Call(ctx context.Context, input string) (string, error) {
	var params WebSearchToolInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return "", fmt.Errorf("failed to parse web search tool input: %v", err)
	}

	if t.apiKey == "" {
		return "Error: Serper API key not found. Web search is unavailable.", nil
	}

	snippets, err := t.search(ctx, params.Query)
	if err != nil {
		return fmt.Sprintf("Error performing web search: %v", err), nil
	}

	result, err := json.MarshalIndent(snippets, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal search results: %v", err)
	}
	return string(result), nil
}

func (t WebSearchTool) search(ctx context.Context, query string) ([]models.SearchSnippet, error) {
	payload, err := json.Marshal(map[string]any{
		"q":   query,
		"num": 10,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://google.serper.dev/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("X-API-KEY", t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed with status %d", resp.StatusCode)
	}

	var body struct {
		Organic []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
			Link    string `json:"link"`
		} `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := body.Organic
	if len(results) > 5 {
		results = results[:5]
	}

	snippets := make([]models.SearchSnippet, 0, len(results))
	for _, r := range results {
		snippets = append(snippets, models.SearchSnippet{
			Title:   r.Title,
			Snippet: r.Snippet,
			Link:    r.Link,
		})
	}
	return snippets, nil
}
