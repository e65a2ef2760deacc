package model

import (
	"time"

	"github.com/google/uuid"
)

// Submission is the append-only record written when a candidate submits.
// It is never read back by this system.
type Submission struct {
	ID          uuid.UUID              `json:"id"`
	SessionID   uuid.UUID              `json:"session_id"`
	StudentName string                 `json:"student_name"`
	RollNo      string                 `json:"roll_no"`
	Topic       string                 `json:"topic"`
	Answers     map[string]AnswerValue `json:"answers"`
	CreatedAt   time.Time              `json:"created_at"`
}
