package conversation

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"interviewcoach/models"

	"github.com/google/uuid"
)

var ErrConversationNotFound = errors.New("conversation not found")

const (
	DefaultMaxHints = 3

	hintsExhaustedContent = "I've already provided the maximum number of hints for this problem. Try to work with what we've discussed so far."

	processingFallbackContent = "I apologize, but I encountered an issue processing your message. Could you please try again?"
)

// ResponseGenerator is the delegate that produces replies. Implementations
// must fall back internally instead of returning errors.
type ResponseGenerator interface {
	Generate(userMessage string, responseType models.ResponseType, conversationContext string, problem *models.Problem) *models.InterviewResponse
	GenerateProblemIntroduction(problem *models.Problem) *models.InterviewResponse
	GenerateHint(conversationContext, hintLevel string) *models.InterviewResponse
	GenerateCodeReview(code, problemContext string) *models.InterviewResponse
}

// Service is the per-conversation state machine. It classifies user intent,
// dispatches to the response generator, enforces the hint budget and records
// the transcript.
type Service struct {
	generator ResponseGenerator
	store     Store
	maxHints  int
}

func NewService(generator ResponseGenerator, store Store, maxHints int) *Service {
	if maxHints <= 0 {
		maxHints = DefaultMaxHints
	}
	return &Service{
		generator: generator,
		store:     store,
		maxHints:  maxHints,
	}
}

// StartNewConversation opens a conversation for the given problem and seeds
// the transcript with the generated introduction.
func (s *Service) StartNewConversation(problem *models.Problem) (*models.ConversationResponse, error) {
	if problem == nil {
		return nil, fmt.Errorf("problem is required to start a conversation")
	}

	conversationID := uuid.NewString()
	log.Printf("[INFO] Starting new conversation %s for problem %q", conversationID, problem.Title)

	intro := s.generator.GenerateProblemIntroduction(problem)

	now := time.Now()
	conv := &models.Conversation{
		ID: conversationID,
		Messages: []models.ConversationMessage{
			{Role: models.RoleSystem, Content: "Starting technical interview session", Timestamp: now},
			{Role: models.RoleAssistant, Content: intro.Content, Timestamp: now},
		},
		CurrentPhase:     models.PhaseProblemIntroduction,
		Problem:          problem,
		HintsGiven:       0,
		MaxHints:         s.maxHints,
		StartTime:        now,
		LastActivityTime: now,
		LastResponse: &models.LastResponseMeta{
			Content:         intro.Content,
			ResponseType:    intro.ResponseType,
			ConfidenceScore: intro.ConfidenceScore,
		},
	}
	s.store.Put(conv)

	return &models.ConversationResponse{
		Message:        intro.Content,
		ConversationID: conversationID,
		CurrentPhase:   models.PhaseProblemIntroduction,
		Metadata: map[string]any{
			"problem_title":   problem.Title,
			"hints_remaining": s.maxHints,
		},
		RequiresUserAction: true,
		SuggestedActions:   suggestedActionsFor(models.PhaseProblemIntroduction),
	}, nil
}

// ProcessMessage handles one user turn. Whatever goes wrong past the
// conversation lookup, the transcript still gets an assistant reply and the
// call returns normally.
func (s *Service) ProcessMessage(conversationID, userMessage string) (resp *models.ConversationResponse, err error) {
	conv, ok := s.store.Get(conversationID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConversationNotFound, conversationID)
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] Recovered while processing message for conversation %s: %v", conversationID, r)
			resp, err = s.appendFallback(conv), nil
		}
	}()

	now := time.Now()
	conv.Messages = append(conv.Messages, models.ConversationMessage{
		Role: models.RoleUser, Content: userMessage, Timestamp: now,
	})

	intent := classifyIntent(userMessage)
	log.Printf("[INFO] Conversation %s classified intent: %s", conversationID, intent)

	context := buildContext(conv)

	var reply *models.InterviewResponse
	switch intent {
	case models.IntentSubmitCode:
		code := extractCode(userMessage)
		conv.UserCode = code
		conv.CodeLanguage = detectLanguage(code)
		reply = s.generator.GenerateCodeReview(code, context)
		conv.CurrentPhase = models.PhaseCodeReview

	case models.IntentRequestHint:
		if conv.HintsGiven >= conv.MaxHints {
			// Hard ceiling: no delegate call, hint counter untouched.
			reply = &models.InterviewResponse{
				Content:         hintsExhaustedContent,
				ResponseType:    models.ResponseEncouragement,
				ConfidenceScore: 0.9,
			}
		} else {
			hintLevel := "moderate"
			if conv.HintsGiven == 0 {
				hintLevel = "gentle"
			}
			reply = s.generator.GenerateHint(context, hintLevel)
			conv.HintsGiven++
			conv.CurrentPhase = models.PhaseHintGiving
		}

	case models.IntentFinishInterview:
		reply = s.generator.Generate(userMessage, responseTypeFor(intent, conv.CurrentPhase), context, conv.Problem)
		conv.CurrentPhase = models.PhaseWrapUp

	default:
		reply = s.generator.Generate(userMessage, responseTypeFor(intent, conv.CurrentPhase), context, conv.Problem)
	}

	conv.Messages = append(conv.Messages, models.ConversationMessage{
		Role: models.RoleAssistant, Content: reply.Content, Timestamp: time.Now(),
	})
	conv.LastActivityTime = time.Now()
	conv.LastResponse = &models.LastResponseMeta{
		Content:         reply.Content,
		ResponseType:    reply.ResponseType,
		ConfidenceScore: reply.ConfidenceScore,
		UserIntent:      intent,
	}
	s.store.Put(conv)

	return &models.ConversationResponse{
		Message:        reply.Content,
		ConversationID: conversationID,
		CurrentPhase:   conv.CurrentPhase,
		Metadata: map[string]any{
			"response_type":    reply.ResponseType,
			"confidence_score": reply.ConfidenceScore,
			"hints_given":      conv.HintsGiven,
			"hints_remaining":  conv.MaxHints - conv.HintsGiven,
			"user_intent":      intent,
		},
		RequiresUserAction: true,
		SuggestedActions:   suggestedActionsFor(conv.CurrentPhase),
	}, nil
}

// Get returns the conversation state for a caller that needs to read
// counters or the transcript.
func (s *Service) Get(conversationID string) (*models.Conversation, error) {
	conv, ok := s.store.Get(conversationID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConversationNotFound, conversationID)
	}
	return conv, nil
}

// EndConversation marks the conversation completed. This is the one
// caller-driven transition besides the bootstrap.
func (s *Service) EndConversation(conversationID string) error {
	conv, ok := s.store.Get(conversationID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrConversationNotFound, conversationID)
	}
	conv.CurrentPhase = models.PhaseCompleted
	conv.LastActivityTime = time.Now()
	s.store.Put(conv)
	return nil
}

func (s *Service) appendFallback(conv *models.Conversation) *models.ConversationResponse {
	conv.Messages = append(conv.Messages, models.ConversationMessage{
		Role: models.RoleAssistant, Content: processingFallbackContent, Timestamp: time.Now(),
	})
	conv.LastActivityTime = time.Now()
	s.store.Put(conv)

	return &models.ConversationResponse{
		Message:            processingFallbackContent,
		ConversationID:     conv.ID,
		CurrentPhase:       conv.CurrentPhase,
		RequiresUserAction: true,
		SuggestedActions:   suggestedActionsFor(conv.CurrentPhase),
	}
}

// buildContext summarizes the conversation for the response generator: the
// phase, the hint budget, the problem, the last three exchanges and any
// submitted code.
func buildContext(conv *models.Conversation) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("Interview Phase: %s", conv.CurrentPhase))
	parts = append(parts, fmt.Sprintf("Hints Given: %d/%d", conv.HintsGiven, conv.MaxHints))

	if conv.Problem != nil {
		parts = append(parts, fmt.Sprintf("Current Problem: %s", conv.Problem.Title))
		parts = append(parts, fmt.Sprintf("Difficulty: %s", conv.Problem.Difficulty))
	}

	recent := recentExchanges(conv.Messages, 6)
	if len(recent) > 0 {
		parts = append(parts, "Recent conversation:")
		for _, msg := range recent {
			switch msg.Role {
			case models.RoleUser:
				parts = append(parts, fmt.Sprintf("User: %s", truncate(msg.Content, 100)))
			case models.RoleAssistant:
				parts = append(parts, fmt.Sprintf("Assistant: %s", truncate(msg.Content, 100)))
			}
		}
	}

	if conv.UserCode != "" {
		parts = append(parts, fmt.Sprintf("User's submitted code (%s language):", conv.CodeLanguage))
		parts = append(parts, truncate(conv.UserCode, 500))
	}

	return strings.Join(parts, "\n")
}

func recentExchanges(messages []models.ConversationMessage, n int) []models.ConversationMessage {
	if len(messages) <= 1 {
		return nil
	}
	if len(messages) > n {
		return messages[len(messages)-n:]
	}
	return messages
}

// truncate caps s at max characters, cutting on rune boundaries so the
// summary stays valid UTF-8.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// suggestedActionsFor is a pure lookup from phase to next-step suggestions.
func suggestedActionsFor(phase models.InterviewPhase) []string {
	switch phase {
	case models.PhaseProblemIntroduction:
		return []string{
			"Ask clarifying questions about the problem",
			"Start thinking about your approach",
			"Request a hint if you're stuck",
		}
	case models.PhaseDiscussion:
		return []string{
			"Explain your approach",
			"Ask for clarification if needed",
			"Submit your code when ready",
		}
	case models.PhaseHintGiving:
		return []string{
			"Think about the hint provided",
			"Ask follow-up questions",
			"Try implementing the suggested approach",
		}
	case models.PhaseCodeReview:
		return []string{
			"Consider the feedback provided",
			"Ask about specific improvements",
			"Submit an updated solution if needed",
		}
	default:
		return []string{"Continue the conversation"}
	}
}
