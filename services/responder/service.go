package responder

import (
	"context"
	"fmt"
	"log"
	"strings"

	"interviewcoach/models"

	"github.com/tmc/langchaingo/llms"
)

const (
	problemIntroductionSystemPrompt = `You are a friendly technical interviewer. Present the DSA problem clearly and ask if they have any questions.`

	hintProvisionSystemPrompt = `You are a supportive technical interviewer. Provide helpful hints without giving away the complete solution.`

	codeReviewSystemPrompt = `You are a technical interviewer reviewing code. Provide constructive feedback on correctness and efficiency.`

	encouragementSystemPrompt = `You are a supportive technical interviewer. Keep the candidate motivated and guide them through challenges.`

	// fallbackContent is returned whenever the model call fails; the
	// conversation must always get an assistant turn back.
	fallbackContent = "I apologize, but I'm experiencing some technical difficulties. Could you please repeat your question?"

	fallbackConfidence = 0.3
	defaultConfidence  = 0.8
)

// Service turns (message, context, response kind) into a structured reply by
// delegating to a language model. It never returns an error: delegate
// failures become the canonical low-confidence fallback reply.
type Service struct {
	llm         llms.Model
	temperature float64
}

func NewService(llm llms.Model) *Service {
	return &Service{
		llm:         llm,
		temperature: 0.2,
	}
}

func systemPromptFor(responseType models.ResponseType) string {
	switch responseType {
	case models.ResponseProblemIntroduction:
		return problemIntroductionSystemPrompt
	case models.ResponseHintProvision:
		return hintProvisionSystemPrompt
	case models.ResponseCodeReview:
		return codeReviewSystemPrompt
	default:
		return encouragementSystemPrompt
	}
}

func buildUserPrompt(userMessage, conversationContext string, problem *models.Problem) string {
	var prompt strings.Builder

	if conversationContext != "" {
		prompt.WriteString(conversationContext)
		prompt.WriteString("\n")
	}

	if problem != nil {
		prompt.WriteString(fmt.Sprintf("Problem: %s\nDescription: %s\n", problem.Title, problem.Description))
	}

	prompt.WriteString("\n")
	prompt.WriteString(userMessage)
	return prompt.String()
}

// Generate produces a reply of the requested kind. conversationContext and
// problem are both optional.
func (s *Service) Generate(userMessage string, responseType models.ResponseType, conversationContext string, problem *models.Problem) *models.InterviewResponse {
	log.Printf("[INFO] Generating %s response", responseType)

	ctx := context.Background()
	messageHistory := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPromptFor(responseType)),
		llms.TextParts(llms.ChatMessageTypeHuman, buildUserPrompt(userMessage, conversationContext, problem)),
	}

	resp, err := s.llm.GenerateContent(ctx, messageHistory, llms.WithTemperature(s.temperature))
	if err != nil {
		log.Printf("[ERROR] Failed to generate %s response: %v", responseType, err)
		return fallbackResponse()
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		log.Printf("[ERROR] Empty model response for %s", responseType)
		return fallbackResponse()
	}

	return &models.InterviewResponse{
		Content:         resp.Choices[0].Content,
		ResponseType:    responseType,
		ConfidenceScore: defaultConfidence,
	}
}

// GenerateProblemIntroduction opens a conversation for the given problem.
func (s *Service) GenerateProblemIntroduction(problem *models.Problem) *models.InterviewResponse {
	return s.Generate("Please introduce this DSA problem", models.ResponseProblemIntroduction, "", problem)
}

// GenerateHint produces a hint of the given intensity ("gentle" or "moderate").
func (s *Service) GenerateHint(conversationContext, hintLevel string) *models.InterviewResponse {
	return s.Generate(
		"I need a hint",
		models.ResponseHintProvision,
		fmt.Sprintf("Context: %s. Provide a %s hint.", conversationContext, hintLevel),
		nil,
	)
}

// GenerateCodeReview reviews submitted code against the problem context.
func (s *Service) GenerateCodeReview(code, problemContext string) *models.InterviewResponse {
	return s.Generate(
		"Please review my code",
		models.ResponseCodeReview,
		fmt.Sprintf("Problem: %s\nCode:\n%s", problemContext, code),
		nil,
	)
}

func fallbackResponse() *models.InterviewResponse {
	return &models.InterviewResponse{
		Content:         fallbackContent,
		ResponseType:    models.ResponseEncouragement,
		ConfidenceScore: fallbackConfidence,
	}
}
