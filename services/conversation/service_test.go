package conversation

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"interviewcoach/models"
)

type fakeGenerator struct {
	hintLevels    []string
	generateCalls int
	hintCalls     int
	reviewCalls   int
	panicOnCall   bool
}

func (f *fakeGenerator) Generate(userMessage string, responseType models.ResponseType, conversationContext string, problem *models.Problem) *models.InterviewResponse {
	if f.panicOnCall {
		panic("generator unavailable")
	}
	f.generateCalls++
	return &models.InterviewResponse{
		Content:         "general reply",
		ResponseType:    responseType,
		ConfidenceScore: 0.8,
	}
}

func (f *fakeGenerator) GenerateProblemIntroduction(problem *models.Problem) *models.InterviewResponse {
	return &models.InterviewResponse{
		Content:         "Welcome! Today we'll work on " + problem.Title,
		ResponseType:    models.ResponseProblemIntroduction,
		ConfidenceScore: 0.8,
	}
}

func (f *fakeGenerator) GenerateHint(conversationContext, hintLevel string) *models.InterviewResponse {
	f.hintCalls++
	f.hintLevels = append(f.hintLevels, hintLevel)
	return &models.InterviewResponse{
		Content:         "here is a " + hintLevel + " hint",
		ResponseType:    models.ResponseHintProvision,
		ConfidenceScore: 0.8,
	}
}

func (f *fakeGenerator) GenerateCodeReview(code, problemContext string) *models.InterviewResponse {
	f.reviewCalls++
	return &models.InterviewResponse{
		Content:         "code review feedback",
		ResponseType:    models.ResponseCodeReview,
		ConfidenceScore: 0.8,
	}
}

func testProblem() *models.Problem {
	return &models.Problem{
		ID:         "two-sum",
		Title:      "Two Sum",
		Difficulty: models.DifficultyEasy,
		Category:   models.CategoryArray,
	}
}

func TestStartNewConversation(t *testing.T) {
	service := NewService(&fakeGenerator{}, NewMemoryStore(), DefaultMaxHints)

	resp, err := service.StartNewConversation(testProblem())
	if err != nil {
		t.Fatalf("StartNewConversation returned error: %v", err)
	}

	if resp.ConversationID == "" {
		t.Error("expected a non-empty conversation ID")
	}
	if resp.CurrentPhase != models.PhaseProblemIntroduction {
		t.Errorf("phase = %s, want %s", resp.CurrentPhase, models.PhaseProblemIntroduction)
	}
	if !strings.Contains(resp.Message, "Two Sum") {
		t.Errorf("introduction %q should mention the problem title", resp.Message)
	}
	if remaining := resp.Metadata["hints_remaining"]; remaining != DefaultMaxHints {
		t.Errorf("hints_remaining = %v, want %d", remaining, DefaultMaxHints)
	}

	conv, err := service.Get(resp.ConversationID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(conv.Messages) != 2 {
		t.Errorf("transcript has %d messages, want 2 (system marker + introduction)", len(conv.Messages))
	}
}

func TestStartNewConversationRequiresProblem(t *testing.T) {
	service := NewService(&fakeGenerator{}, NewMemoryStore(), DefaultMaxHints)

	if _, err := service.StartNewConversation(nil); err == nil {
		t.Error("expected error for nil problem")
	}
}

func TestHintBudget(t *testing.T) {
	gen := &fakeGenerator{}
	service := NewService(gen, NewMemoryStore(), 3)

	resp, err := service.StartNewConversation(testProblem())
	if err != nil {
		t.Fatalf("StartNewConversation returned error: %v", err)
	}
	id := resp.ConversationID

	for i := 1; i <= 3; i++ {
		result, err := service.ProcessMessage(id, "I'm stuck, give me a hint")
		if err != nil {
			t.Fatalf("hint %d returned error: %v", i, err)
		}
		if result.CurrentPhase != models.PhaseHintGiving {
			t.Errorf("hint %d phase = %s, want %s", i, result.CurrentPhase, models.PhaseHintGiving)
		}
		if given := result.Metadata["hints_given"]; given != i {
			t.Errorf("hint %d hints_given = %v, want %d", i, given, i)
		}
	}

	if len(gen.hintLevels) != 3 || gen.hintLevels[0] != "gentle" || gen.hintLevels[1] != "moderate" {
		t.Errorf("hint levels = %v, want [gentle moderate moderate]", gen.hintLevels)
	}

	// Fourth request hits the ceiling: canned refusal, no delegate call,
	// counter unchanged.
	result, err := service.ProcessMessage(id, "one more hint please")
	if err != nil {
		t.Fatalf("exhausted hint request returned error: %v", err)
	}
	if result.Message != hintsExhaustedContent {
		t.Errorf("message = %q, want the exhaustion notice", result.Message)
	}
	if gen.hintCalls != 3 {
		t.Errorf("generator hint calls = %d, want 3", gen.hintCalls)
	}
	if given := result.Metadata["hints_given"]; given != 3 {
		t.Errorf("hints_given after ceiling = %v, want 3", given)
	}
	if confidence := result.Metadata["confidence_score"]; confidence != 0.9 {
		t.Errorf("confidence_score = %v, want 0.9", confidence)
	}
}

func TestCodeSubmission(t *testing.T) {
	gen := &fakeGenerator{}
	service := NewService(gen, NewMemoryStore(), DefaultMaxHints)

	resp, _ := service.StartNewConversation(testProblem())
	id := resp.ConversationID

	result, err := service.ProcessMessage(id, "```\ndef two_sum(nums, target):\n    return []\n```")
	if err != nil {
		t.Fatalf("ProcessMessage returned error: %v", err)
	}

	if result.CurrentPhase != models.PhaseCodeReview {
		t.Errorf("phase = %s, want %s", result.CurrentPhase, models.PhaseCodeReview)
	}
	if gen.reviewCalls != 1 {
		t.Errorf("review calls = %d, want 1", gen.reviewCalls)
	}

	conv, _ := service.Get(id)
	if !strings.Contains(conv.UserCode, "def two_sum") {
		t.Errorf("UserCode = %q, want the extracted snippet", conv.UserCode)
	}
	if conv.CodeLanguage != "python" {
		t.Errorf("CodeLanguage = %q, want python", conv.CodeLanguage)
	}
	if intent := result.Metadata["user_intent"]; intent != models.IntentSubmitCode {
		t.Errorf("user_intent = %v, want %s", intent, models.IntentSubmitCode)
	}
}

func TestFinishInterviewTransitionsToWrapUp(t *testing.T) {
	service := NewService(&fakeGenerator{}, NewMemoryStore(), DefaultMaxHints)

	resp, _ := service.StartNewConversation(testProblem())

	result, err := service.ProcessMessage(resp.ConversationID, "I'm done with this problem")
	if err != nil {
		t.Fatalf("ProcessMessage returned error: %v", err)
	}
	if result.CurrentPhase != models.PhaseWrapUp {
		t.Errorf("phase = %s, want %s", result.CurrentPhase, models.PhaseWrapUp)
	}
}

func TestProcessMessageRecoversFromPanic(t *testing.T) {
	gen := &fakeGenerator{panicOnCall: true}
	service := NewService(gen, NewMemoryStore(), DefaultMaxHints)

	resp, _ := service.StartNewConversation(testProblem())

	result, err := service.ProcessMessage(resp.ConversationID, "tell me something")
	if err != nil {
		t.Fatalf("expected recovery, got error: %v", err)
	}
	if result.Message != processingFallbackContent {
		t.Errorf("message = %q, want the processing fallback", result.Message)
	}

	conv, _ := service.Get(resp.ConversationID)
	last := conv.Messages[len(conv.Messages)-1]
	if last.Role != models.RoleAssistant || last.Content != processingFallbackContent {
		t.Errorf("transcript tail = %s %q, want assistant fallback", last.Role, last.Content)
	}
}

func TestProcessMessageUnknownConversation(t *testing.T) {
	service := NewService(&fakeGenerator{}, NewMemoryStore(), DefaultMaxHints)

	if _, err := service.ProcessMessage("missing", "hello"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("error = %v, want ErrConversationNotFound", err)
	}
}

func TestEndConversation(t *testing.T) {
	service := NewService(&fakeGenerator{}, NewMemoryStore(), DefaultMaxHints)

	resp, _ := service.StartNewConversation(testProblem())
	if err := service.EndConversation(resp.ConversationID); err != nil {
		t.Fatalf("EndConversation returned error: %v", err)
	}

	conv, _ := service.Get(resp.ConversationID)
	if conv.CurrentPhase != models.PhaseCompleted {
		t.Errorf("phase = %s, want %s", conv.CurrentPhase, models.PhaseCompleted)
	}

	if err := service.EndConversation("missing"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("error = %v, want ErrConversationNotFound", err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{name: "short string unchanged", input: "hello", max: 10, expected: "hello"},
		{name: "exact length unchanged", input: "hello", max: 5, expected: "hello"},
		{name: "long string capped", input: "hello world", max: 5, expected: "hello..."},
		{name: "multibyte cut on rune boundary", input: "héllo wörld", max: 6, expected: "héllo ..."},
		{name: "cjk text", input: "二分探索で解きます", max: 4, expected: "二分探索..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.max)
			if got != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.expected)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.input, tt.max)
			}
		})
	}
}

func TestBuildContextTruncation(t *testing.T) {
	conv := &models.Conversation{
		CurrentPhase: models.PhaseDiscussion,
		MaxHints:     3,
		Problem:      testProblem(),
		Messages: []models.ConversationMessage{
			{Role: models.RoleSystem, Content: "marker"},
			{Role: models.RoleUser, Content: strings.Repeat("x", 250)},
		},
		UserCode:     strings.Repeat("y", 600),
		CodeLanguage: "python",
	}

	context := buildContext(conv)

	if !strings.Contains(context, "Interview Phase: discussion") {
		t.Errorf("context missing phase line:\n%s", context)
	}
	if !strings.Contains(context, "Hints Given: 0/3") {
		t.Errorf("context missing hint budget line:\n%s", context)
	}
	if !strings.Contains(context, strings.Repeat("x", 100)+"...") {
		t.Error("long user message should be truncated to 100 characters")
	}
	if strings.Contains(context, strings.Repeat("x", 101)) {
		t.Error("user message exceeded the 100 character cap")
	}
	if !strings.Contains(context, strings.Repeat("y", 500)+"...") {
		t.Error("submitted code should be truncated to 500 characters")
	}
}
