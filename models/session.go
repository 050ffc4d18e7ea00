package models

import "time"

type SessionStatus string

const (
	SessionActive     SessionStatus = "active"
	SessionPaused     SessionStatus = "paused"
	SessionCompleted  SessionStatus = "completed"
	SessionTerminated SessionStatus = "terminated"
)

// PerformanceMetric tracks a single problem attempt within a session.
// Created when the problem starts, finalized once on completion.
type PerformanceMetric struct {
	SessionID        string            `json:"session_id"`
	ProblemTitle     string            `json:"problem_title"`
	Difficulty       ProblemDifficulty `json:"difficulty"`
	StartTime        time.Time         `json:"start_time"`
	EndTime          *time.Time        `json:"end_time,omitempty"`
	TimeTaken        int               `json:"time_taken,omitempty"` // seconds
	HintsUsed        int               `json:"hints_used"`
	Attempts         int               `json:"attempts"`
	SolutionCorrect  *bool             `json:"solution_correct,omitempty"`
	CodeQualityScore *float64          `json:"code_quality_score,omitempty"`
	OverallScore     *float64          `json:"overall_score,omitempty"`
}

type InterviewSession struct {
	ID                string               `json:"id"`
	UserID            string               `json:"user_id,omitempty"`
	SessionType       string               `json:"session_type"`
	Status            SessionStatus        `json:"status"`
	CurrentProblem    *Problem             `json:"current_problem,omitempty"`
	ProblemsCompleted []string             `json:"problems_completed"`
	Metrics           []*PerformanceMetric `json:"performance_metrics"`
	ConversationID    string               `json:"conversation_id,omitempty"`
	StartTime         time.Time            `json:"start_time"`
	LastActivity      time.Time            `json:"last_activity"`
	DurationLimit     int                  `json:"duration_limit"` // seconds
	Metadata          map[string]any       `json:"metadata,omitempty"`
}

type SessionAnalytics struct {
	SessionID         string               `json:"session_id"`
	Status            SessionStatus        `json:"status"`
	SessionDuration   int                  `json:"session_duration"` // seconds
	ProblemsAttempted int                  `json:"problems_attempted"`
	ProblemsCompleted int                  `json:"problems_completed"`
	CompletionRate    float64              `json:"completion_rate"`
	AverageScore      float64              `json:"average_score"`
	Metrics           []*PerformanceMetric `json:"performance_metrics"`
}

// SessionRecord is the archived row written when a session closes.
type SessionRecord struct {
	ID                int                  `json:"id"`
	SessionID         string               `json:"session_id"`
	UserID            string               `json:"user_id,omitempty"`
	Status            SessionStatus        `json:"status"`
	SessionDuration   int                  `json:"session_duration"`
	ProblemsAttempted int                  `json:"problems_attempted"`
	ProblemsCompleted int                  `json:"problems_completed"`
	CompletionRate    float64              `json:"completion_rate"`
	AverageScore      float64              `json:"average_score"`
	Metrics           []*PerformanceMetric `json:"performance_metrics"`
	CreatedAt         time.Time            `json:"created_at"`
}

type SessionSummary struct {
	SessionID         string        `json:"session_id"`
	Status            SessionStatus `json:"status"`
	StartTime         time.Time     `json:"start_time"`
	LastActivity      time.Time     `json:"last_activity"`
	ProblemsCompleted int           `json:"problems_completed"`
	CurrentProblem    string        `json:"current_problem,omitempty"`
}
