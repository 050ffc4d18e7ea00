package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"interviewcoach/models"

	_ "github.com/lib/pq"
)

type HistoryRepository interface {
	SaveSessionAnalytics(analytics *models.SessionAnalytics, userID string) error
	GetSessionHistory(userID string, limit int) ([]*models.SessionRecord, error)
	Close() error
}

type PostgresHistoryRepository struct {
	db *sql.DB
}

func NewPostgresHistoryRepository(databaseURL string) (*PostgresHistoryRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresHistoryRepository{db: db}, nil
}

func (r *PostgresHistoryRepository) SaveSessionAnalytics(analytics *models.SessionAnalytics, userID string) error {
	metricsJSON, err := json.Marshal(analytics.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	query := `
		INSERT INTO interview_history
			(session_id, user_id, status, session_duration, problems_attempted,
			 problems_completed, completion_rate, average_score, metrics)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.Exec(query,
		analytics.SessionID,
		userID,
		string(analytics.Status),
		analytics.SessionDuration,
		analytics.ProblemsAttempted,
		analytics.ProblemsCompleted,
		analytics.CompletionRate,
		analytics.AverageScore,
		metricsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save session analytics: %w", err)
	}

	return nil
}

func (r *PostgresHistoryRepository) GetSessionHistory(userID string, limit int) ([]*models.SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, session_id, user_id, status, session_duration,
		       problems_attempted, problems_completed, completion_rate,
		       average_score, metrics, created_at
		FROM interview_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query session history: %w", err)
	}
	defer rows.Close()

	records := make([]*models.SessionRecord, 0)
	for rows.Next() {
		record := &models.SessionRecord{}
		var metricsJSON []byte
		err := rows.Scan(
			&record.ID,
			&record.SessionID,
			&record.UserID,
			&record.Status,
			&record.SessionDuration,
			&record.ProblemsAttempted,
			&record.ProblemsCompleted,
			&record.CompletionRate,
			&record.AverageScore,
			&metricsJSON,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session record: %w", err)
		}

		if err := json.Unmarshal(metricsJSON, &record.Metrics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over session records: %w", err)
	}

	return records, nil
}

func (r *PostgresHistoryRepository) Close() error {
	return r.db.Close()
}
