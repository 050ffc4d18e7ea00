package responder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"interviewcoach/models"

	"github.com/tmc/langchaingo/llms"
)

type fakeLLM struct {
	content string
	err     error

	lastMessages []llms.MessageContent
}

func (f *fakeLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.lastMessages = messages
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.content}},
	}, nil
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func textOf(message llms.MessageContent) string {
	var parts []string
	for _, part := range message.Parts {
		if text, ok := part.(llms.TextContent); ok {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "")
}

func TestGenerate(t *testing.T) {
	llm := &fakeLLM{content: "Here's how I'd think about it."}
	service := NewService(llm)

	resp := service.Generate("how do I start?", models.ResponseEncouragement, "", nil)

	if resp.Content != "Here's how I'd think about it." {
		t.Errorf("Content = %q, want the model output", resp.Content)
	}
	if resp.ResponseType != models.ResponseEncouragement {
		t.Errorf("ResponseType = %s, want encouragement", resp.ResponseType)
	}
	if resp.ConfidenceScore != defaultConfidence {
		t.Errorf("ConfidenceScore = %v, want %v", resp.ConfidenceScore, defaultConfidence)
	}

	if len(llm.lastMessages) != 2 {
		t.Fatalf("message count = %d, want system + human", len(llm.lastMessages))
	}
	if llm.lastMessages[0].Role != llms.ChatMessageTypeSystem {
		t.Errorf("first message role = %s, want system", llm.lastMessages[0].Role)
	}
	if !strings.Contains(textOf(llm.lastMessages[1]), "how do I start?") {
		t.Error("human message should carry the user text")
	}
}

func TestGenerateFallbackOnError(t *testing.T) {
	service := NewService(&fakeLLM{err: errors.New("model unavailable")})

	resp := service.Generate("hello", models.ResponseHintProvision, "", nil)

	if resp.Content != fallbackContent {
		t.Errorf("Content = %q, want the canned fallback", resp.Content)
	}
	if resp.ConfidenceScore != fallbackConfidence {
		t.Errorf("ConfidenceScore = %v, want %v", resp.ConfidenceScore, fallbackConfidence)
	}
	if resp.ResponseType != models.ResponseEncouragement {
		t.Errorf("ResponseType = %s, want encouragement", resp.ResponseType)
	}
}

func TestGenerateFallbackOnEmptyResponse(t *testing.T) {
	service := NewService(&fakeLLM{content: "   "})

	resp := service.Generate("hello", models.ResponseCodeReview, "", nil)

	if resp.Content != fallbackContent {
		t.Errorf("Content = %q, want the canned fallback", resp.Content)
	}
}

func TestGenerateIncludesProblemContext(t *testing.T) {
	llm := &fakeLLM{content: "ok"}
	service := NewService(llm)

	problem := &models.Problem{Title: "Two Sum", Description: "Find two numbers that add to target."}
	service.Generate("ready", models.ResponseProblemIntroduction, "Interview Phase: starting", problem)

	prompt := textOf(llm.lastMessages[1])
	if !strings.Contains(prompt, "Two Sum") {
		t.Error("prompt should include the problem title")
	}
	if !strings.Contains(prompt, "Interview Phase: starting") {
		t.Error("prompt should include the conversation context")
	}
}

func TestGenerateHintMentionsLevel(t *testing.T) {
	llm := &fakeLLM{content: "try a hash map"}
	service := NewService(llm)

	resp := service.GenerateHint("Hints Given: 0/3", "gentle")

	if resp.ResponseType != models.ResponseHintProvision {
		t.Errorf("ResponseType = %s, want hint_provision", resp.ResponseType)
	}
	if !strings.Contains(textOf(llm.lastMessages[1]), "gentle") {
		t.Error("prompt should carry the hint level")
	}
}

func TestGenerateCodeReviewCarriesCode(t *testing.T) {
	llm := &fakeLLM{content: "looks correct"}
	service := NewService(llm)

	resp := service.GenerateCodeReview("def solve(): pass", "Two Sum")

	if resp.ResponseType != models.ResponseCodeReview {
		t.Errorf("ResponseType = %s, want code_review", resp.ResponseType)
	}
	if !strings.Contains(textOf(llm.lastMessages[1]), "def solve(): pass") {
		t.Error("prompt should carry the submitted code")
	}
}
