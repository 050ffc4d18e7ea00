package models

import "time"

// User is the persisted user record. Interview session state itself stays
// in memory; only user profiles and counters live in the document store.
type User struct {
	ID              string    `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          string    `bson:"user_id" json:"user_id"`
	Email           string    `bson:"email" json:"email"`
	FullName        string    `bson:"full_name" json:"full_name"`
	TargetRole      string    `bson:"target_role,omitempty" json:"target_role,omitempty"`
	InterviewsTaken int       `bson:"interviews_taken" json:"interviews_taken"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateUserRequest struct {
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	TargetRole string `json:"target_role,omitempty"`
}

type UpdateUserRequest struct {
	FullName   *string `json:"full_name,omitempty"`
	TargetRole *string `json:"target_role,omitempty"`
}
