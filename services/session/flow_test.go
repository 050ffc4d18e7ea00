package session

import (
	"strings"
	"testing"

	"interviewcoach/models"
	"interviewcoach/services/conversation"
)

type fakeResponder struct {
	hintLevels []string
}

func (f *fakeResponder) Generate(userMessage string, responseType models.ResponseType, conversationContext string, problem *models.Problem) *models.InterviewResponse {
	return &models.InterviewResponse{
		Content:         "let's talk it through",
		ResponseType:    responseType,
		ConfidenceScore: 0.8,
	}
}

func (f *fakeResponder) GenerateProblemIntroduction(problem *models.Problem) *models.InterviewResponse {
	return &models.InterviewResponse{
		Content:         "Let's work on " + problem.Title,
		ResponseType:    models.ResponseProblemIntroduction,
		ConfidenceScore: 0.8,
	}
}

func (f *fakeResponder) GenerateHint(conversationContext, hintLevel string) *models.InterviewResponse {
	f.hintLevels = append(f.hintLevels, hintLevel)
	return &models.InterviewResponse{
		Content:         "a " + hintLevel + " nudge",
		ResponseType:    models.ResponseHintProvision,
		ConfidenceScore: 0.8,
	}
}

func (f *fakeResponder) GenerateCodeReview(code, problemContext string) *models.InterviewResponse {
	return &models.InterviewResponse{
		Content:         "solid solution",
		ResponseType:    models.ResponseCodeReview,
		ConfidenceScore: 0.8,
	}
}

// Full interview walked through the real conversation state machine: intro,
// clarification, two hints, a code submission, completion and close-out.
func TestInterviewFlowEndToEnd(t *testing.T) {
	responder := &fakeResponder{}
	conversations := conversation.NewService(responder, conversation.NewMemoryStore(), conversation.DefaultMaxHints)
	archiver := &fakeArchiver{}
	service := NewService(conversations, NewMemoryStore(), archiver)

	sess, err := service.CreateSession("user-1", "dsa", 3600)
	if err != nil {
		t.Fatalf("CreateSession returned error: %v", err)
	}

	intro, err := service.StartProblem(sess.ID, testProblem())
	if err != nil {
		t.Fatalf("StartProblem returned error: %v", err)
	}
	if intro.CurrentPhase != models.PhaseProblemIntroduction {
		t.Errorf("intro phase = %s, want %s", intro.CurrentPhase, models.PhaseProblemIntroduction)
	}
	if !strings.Contains(intro.Message, "Two Sum") {
		t.Errorf("introduction %q should mention the problem", intro.Message)
	}

	clarify, err := service.ProcessUserMessage(sess.ID, "can you explain the expected output?")
	if err != nil {
		t.Fatalf("clarification turn returned error: %v", err)
	}
	if clarify.Metadata["user_intent"] != models.IntentAskClarification {
		t.Errorf("intent = %v, want %s", clarify.Metadata["user_intent"], models.IntentAskClarification)
	}

	for i := 1; i <= 2; i++ {
		hint, err := service.ProcessUserMessage(sess.ID, "I'm stuck, I need a hint")
		if err != nil {
			t.Fatalf("hint turn %d returned error: %v", i, err)
		}
		if hint.CurrentPhase != models.PhaseHintGiving {
			t.Errorf("hint turn %d phase = %s, want %s", i, hint.CurrentPhase, models.PhaseHintGiving)
		}
	}
	if len(responder.hintLevels) != 2 || responder.hintLevels[0] != "gentle" || responder.hintLevels[1] != "moderate" {
		t.Errorf("hint levels = %v, want [gentle moderate]", responder.hintLevels)
	}

	review, err := service.ProcessUserMessage(sess.ID, "```\ndef two_sum(nums, target):\n    return []\n```")
	if err != nil {
		t.Fatalf("code turn returned error: %v", err)
	}
	if review.CurrentPhase != models.PhaseCodeReview {
		t.Errorf("review phase = %s, want %s", review.CurrentPhase, models.PhaseCodeReview)
	}

	stored, _ := service.GetSession(sess.ID)
	metric := stored.Metrics[0]
	if metric.HintsUsed != 2 {
		t.Errorf("HintsUsed = %d, want 2 (synced from the conversation)", metric.HintsUsed)
	}
	if metric.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", metric.Attempts)
	}

	conversationID := stored.ConversationID

	finalized, err := service.CompleteProblem(sess.ID, true, nil)
	if err != nil {
		t.Fatalf("CompleteProblem returned error: %v", err)
	}
	// Instant completion with two hints: 70 + (30 - 10) = 90.
	if finalized.OverallScore == nil || *finalized.OverallScore != 90 {
		t.Errorf("OverallScore = %v, want 90", finalized.OverallScore)
	}

	conv, err := conversations.Get(conversationID)
	if err != nil {
		t.Fatalf("conversation lookup returned error: %v", err)
	}
	if conv.CurrentPhase != models.PhaseCompleted {
		t.Errorf("conversation phase = %s, want %s after completion", conv.CurrentPhase, models.PhaseCompleted)
	}

	analytics, err := service.CloseSession(sess.ID)
	if err != nil {
		t.Fatalf("CloseSession returned error: %v", err)
	}
	if analytics.ProblemsCompleted != 1 || analytics.AverageScore != 90 {
		t.Errorf("analytics = %d completed / %v average, want 1 / 90", analytics.ProblemsCompleted, analytics.AverageScore)
	}
	if len(archiver.saved) != 1 {
		t.Errorf("archived records = %d, want 1", len(archiver.saved))
	}
}
