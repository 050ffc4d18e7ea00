package session

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"interviewcoach/models"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrNoActiveProblem      = errors.New("no active problem")
	ErrNoActiveConversation = errors.New("no active conversation")
	ErrSessionExpired       = errors.New("session expired")
)

const DefaultDurationLimit = 3600 // seconds

// Conversations is the conversation state machine as seen by the session
// manager.
type Conversations interface {
	StartNewConversation(problem *models.Problem) (*models.ConversationResponse, error)
	ProcessMessage(conversationID, userMessage string) (*models.ConversationResponse, error)
	Get(conversationID string) (*models.Conversation, error)
	EndConversation(conversationID string) error
}

// HistoryArchiver persists finalized session analytics. A nil archiver
// disables archiving.
type HistoryArchiver interface {
	SaveSessionAnalytics(analytics *models.SessionAnalytics, userID string) error
}

// Service owns interview sessions: lifecycle, per-problem performance
// metrics and analytics. Problems run strictly one at a time per session.
type Service struct {
	store         Store
	conversations Conversations
	history       HistoryArchiver
}

func NewService(conversations Conversations, store Store, history HistoryArchiver) *Service {
	return &Service{
		store:         store,
		conversations: conversations,
		history:       history,
	}
}

// CreateSession opens a new time-boxed session; sessionType defaults to
// "dsa" and the duration limit to one hour.
func (s *Service) CreateSession(userID, sessionType string, durationLimit int) (*models.InterviewSession, error) {
	if sessionType == "" {
		sessionType = "dsa"
	}
	if durationLimit <= 0 {
		durationLimit = DefaultDurationLimit
	}

	now := time.Now()
	session := &models.InterviewSession{
		ID:                uuid.NewString(),
		UserID:            userID,
		SessionType:       sessionType,
		Status:            models.SessionActive,
		ProblemsCompleted: []string{},
		Metrics:           []*models.PerformanceMetric{},
		StartTime:         now,
		LastActivity:      now,
		DurationLimit:     durationLimit,
		Metadata:          map[string]any{},
	}
	s.store.Put(session)

	log.Printf("[INFO] Created interview session %s (type=%s, limit=%ds)", session.ID, sessionType, durationLimit)
	return session, nil
}

// StartProblem begins a conversation for the given problem and opens its
// performance metric.
func (s *Service) StartProblem(sessionID string, problem *models.Problem) (*models.ConversationResponse, error) {
	session, err := s.activeSession(sessionID)
	if err != nil {
		return nil, err
	}

	if problem == nil {
		return nil, fmt.Errorf("problem is required")
	}

	result, err := s.conversations.StartNewConversation(problem)
	if err != nil {
		return nil, fmt.Errorf("failed to start conversation: %w", err)
	}

	session.CurrentProblem = problem
	session.ConversationID = result.ConversationID
	session.LastActivity = time.Now()
	session.Metrics = append(session.Metrics, &models.PerformanceMetric{
		SessionID:    sessionID,
		ProblemTitle: problem.Title,
		Difficulty:   problem.Difficulty,
		StartTime:    time.Now(),
	})
	s.store.Put(session)

	log.Printf("[INFO] Started problem %q in session %s", problem.Title, sessionID)
	return result, nil
}

// ProcessUserMessage forwards one user turn to the conversation and syncs
// the current metric's hint and attempt counters.
func (s *Service) ProcessUserMessage(sessionID, message string) (*models.ConversationResponse, error) {
	session, err := s.activeSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.ConversationID == "" {
		return nil, fmt.Errorf("%w in session %s", ErrNoActiveConversation, sessionID)
	}

	result, err := s.conversations.ProcessMessage(session.ConversationID, message)
	if err != nil {
		return nil, fmt.Errorf("failed to process message: %w", err)
	}

	session.LastActivity = time.Now()

	if len(session.Metrics) > 0 {
		metric := session.Metrics[len(session.Metrics)-1]

		if conv, convErr := s.conversations.Get(session.ConversationID); convErr == nil {
			metric.HintsUsed = conv.HintsGiven
		}

		if intent, ok := result.Metadata["user_intent"].(models.UserIntent); ok && intent == models.IntentSubmitCode {
			metric.Attempts++
		}
	}
	s.store.Put(session)

	return result, nil
}

// CompleteProblem finalizes the current metric, scores the attempt and
// clears the active problem so the next one can start.
func (s *Service) CompleteProblem(sessionID string, solutionCorrect bool, codeQualityScore *float64) (*models.PerformanceMetric, error) {
	session, err := s.activeSession(sessionID)
	if err != nil {
		return nil, err
	}

	if session.CurrentProblem == nil {
		return nil, fmt.Errorf("%w in session %s", ErrNoActiveProblem, sessionID)
	}

	var metric *models.PerformanceMetric
	if len(session.Metrics) > 0 {
		metric = session.Metrics[len(session.Metrics)-1]
		now := time.Now()
		metric.EndTime = &now
		metric.TimeTaken = int(now.Sub(metric.StartTime).Seconds())
		metric.SolutionCorrect = &solutionCorrect
		metric.CodeQualityScore = codeQualityScore

		score := overallScore(solutionCorrect, metric.TimeTaken, metric.HintsUsed)
		metric.OverallScore = &score
	}

	problemTitle := session.CurrentProblem.Title
	session.ProblemsCompleted = append(session.ProblemsCompleted, problemTitle)
	session.CurrentProblem = nil

	if session.ConversationID != "" {
		if endErr := s.conversations.EndConversation(session.ConversationID); endErr != nil {
			log.Printf("[WARN] Failed to end conversation %s: %v", session.ConversationID, endErr)
		}
		session.ConversationID = ""
	}

	session.LastActivity = time.Now()
	s.store.Put(session)

	log.Printf("[INFO] Completed problem %q in session %s", problemTitle, sessionID)
	return metric, nil
}

// overallScore: 70 points for a correct solution plus a time bonus of up to
// 30 points eroded by elapsed minutes and 5 points per hint, clamped to
// [0, 100].
func overallScore(correct bool, timeTakenSeconds, hintsUsed int) float64 {
	score := 0.0
	if correct {
		score = 70
	}

	timeBonus := 30 - timeTakenSeconds/60
	if timeBonus < 0 {
		timeBonus = 0
	}
	bonus := timeBonus - hintsUsed*5
	if bonus < 0 {
		bonus = 0
	}

	score += float64(bonus)
	if score > 100 {
		score = 100
	}
	return score
}

// GetSession returns current session state, applying lazy timeout
// detection first.
func (s *Service) GetSession(sessionID string) (*models.InterviewSession, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s.detectTimeout(session)
	return session, nil
}

// GetSessionAnalytics summarizes a session. The average score covers only
// finalized metrics; empty denominators yield zero.
func (s *Service) GetSessionAnalytics(sessionID string) (*models.SessionAnalytics, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	s.detectTimeout(session)

	attempted := len(session.Metrics)
	completed := len(session.ProblemsCompleted)

	completionRate := 0.0
	if attempted > 0 {
		completionRate = float64(completed) / float64(attempted)
	}

	scoreSum := 0.0
	finalized := 0
	for _, metric := range session.Metrics {
		if metric.SolutionCorrect == nil {
			continue
		}
		finalized++
		if metric.OverallScore != nil {
			scoreSum += *metric.OverallScore
		}
	}
	averageScore := 0.0
	if finalized > 0 {
		averageScore = math.Round(scoreSum/float64(finalized)*10) / 10
	}

	return &models.SessionAnalytics{
		SessionID:         sessionID,
		Status:            session.Status,
		SessionDuration:   int(session.LastActivity.Sub(session.StartTime).Seconds()),
		ProblemsAttempted: attempted,
		ProblemsCompleted: completed,
		CompletionRate:    completionRate,
		AverageScore:      averageScore,
		Metrics:           session.Metrics,
	}, nil
}

// CloseSession finalizes a session, archives its analytics and evicts it
// from the active set. A closed session cannot be resumed.
func (s *Service) CloseSession(sessionID string) (*models.SessionAnalytics, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	session.Status = models.SessionCompleted
	session.LastActivity = time.Now()
	s.store.Put(session)

	analytics, err := s.GetSessionAnalytics(sessionID)
	if err != nil {
		return nil, err
	}

	if s.history != nil {
		if archiveErr := s.history.SaveSessionAnalytics(analytics, session.UserID); archiveErr != nil {
			log.Printf("[ERROR] Failed to archive session %s: %v", sessionID, archiveErr)
		}
	}

	s.store.Delete(sessionID)

	log.Printf("[INFO] Closed interview session %s", sessionID)
	return analytics, nil
}

// ActiveSessions lists the sessions currently held in the store.
func (s *Service) ActiveSessions() []*models.SessionSummary {
	sessions := s.store.All()
	summaries := make([]*models.SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summary := &models.SessionSummary{
			SessionID:         session.ID,
			Status:            session.Status,
			StartTime:         session.StartTime,
			LastActivity:      session.LastActivity,
			ProblemsCompleted: len(session.ProblemsCompleted),
		}
		if session.CurrentProblem != nil {
			summary.CurrentProblem = session.CurrentProblem.Title
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// activeSession fetches a session and lazily applies timeout detection;
// there is no background expiry sweep.
func (s *Service) activeSession(sessionID string) (*models.InterviewSession, error) {
	session, ok := s.store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	if s.detectTimeout(session) || session.Status != models.SessionActive {
		return nil, fmt.Errorf("%w: %s", ErrSessionExpired, sessionID)
	}

	return session, nil
}

func (s *Service) detectTimeout(session *models.InterviewSession) bool {
	if session.Status != models.SessionActive {
		return false
	}
	elapsed := time.Since(session.StartTime)
	if elapsed <= time.Duration(session.DurationLimit)*time.Second {
		return false
	}

	session.Status = models.SessionCompleted
	session.Metadata["timed_out"] = true
	s.store.Put(session)

	log.Printf("[INFO] Session %s timed out after %ds", session.ID, int(elapsed.Seconds()))
	return true
}
