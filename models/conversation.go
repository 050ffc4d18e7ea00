package models

import "time"

type InterviewPhase string

const (
	PhaseStarting            InterviewPhase = "starting"
	PhaseProblemIntroduction InterviewPhase = "problem_introduction"
	PhaseDiscussion          InterviewPhase = "discussion"
	PhaseHintGiving          InterviewPhase = "hint_giving"
	PhaseCodeReview          InterviewPhase = "code_review"
	PhaseWrapUp              InterviewPhase = "wrap_up"
	PhaseCompleted           InterviewPhase = "completed"
)

type UserIntent string

const (
	IntentGeneralMessage   UserIntent = "general_message"
	IntentRequestHint      UserIntent = "request_hint"
	IntentSubmitCode       UserIntent = "submit_code"
	IntentAskClarification UserIntent = "ask_clarification"
	IntentRequestRepeat    UserIntent = "request_repeat"
	IntentReadyToStart     UserIntent = "ready_to_start"
	IntentFinishInterview  UserIntent = "finish_interview"
)

type ResponseType string

const (
	ResponseProblemIntroduction ResponseType = "problem_introduction"
	ResponseHintProvision       ResponseType = "hint_provision"
	ResponseCodeReview          ResponseType = "code_review"
	ResponseEncouragement       ResponseType = "encouragement"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

type ConversationMessage struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// InterviewResponse is a single generated reply with its classification.
type InterviewResponse struct {
	Content         string       `json:"content"`
	ResponseType    ResponseType `json:"response_type"`
	ConfidenceScore float64      `json:"confidence_score"`
}

// LastResponseMeta caches the most recent generated reply on a conversation.
type LastResponseMeta struct {
	Content         string       `json:"content"`
	ResponseType    ResponseType `json:"response_type"`
	ConfidenceScore float64      `json:"confidence_score"`
	UserIntent      UserIntent   `json:"user_intent"`
}

type Conversation struct {
	ID               string                `json:"id"`
	Messages         []ConversationMessage `json:"messages"`
	CurrentPhase     InterviewPhase        `json:"current_phase"`
	Problem          *Problem              `json:"problem,omitempty"`
	UserCode         string                `json:"user_code,omitempty"`
	CodeLanguage     string                `json:"code_language,omitempty"`
	HintsGiven       int                   `json:"hints_given"`
	MaxHints         int                   `json:"max_hints"`
	StartTime        time.Time             `json:"start_time"`
	LastActivityTime time.Time             `json:"last_activity_time"`
	LastResponse     *LastResponseMeta     `json:"last_response,omitempty"`
}

// ConversationResponse is the envelope returned for every processed turn.
type ConversationResponse struct {
	Message            string         `json:"message"`
	ConversationID     string         `json:"conversation_id"`
	CurrentPhase       InterviewPhase `json:"current_phase"`
	Metadata           map[string]any `json:"metadata,omitempty"`
	RequiresUserAction bool           `json:"requires_user_action"`
	SuggestedActions   []string       `json:"suggested_actions"`
}
