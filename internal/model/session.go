package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the explicit, persisted phase of an exam session.
// NOT_STARTED only exists before the start transition commits; EXPIRED and
// SUBMITTED are terminal.
type SessionStatus string

const (
	SessionStatusNotStarted SessionStatus = "NOT_STARTED"
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusExpired    SessionStatus = "EXPIRED"
	SessionStatusSubmitted  SessionStatus = "SUBMITTED"
)

// Terminal reports whether no further transition is permitted.
func (s SessionStatus) Terminal() bool {
	return s == SessionStatusExpired || s == SessionStatusSubmitted
}

// ExamSession represents one candidate's timed attempt at a topic.
// QuestionIDs is the ordered snapshot taken once at start; the question set
// is never re-fetched mid-exam.
type ExamSession struct {
	ID              uuid.UUID     `json:"id"`
	CandidateName   string        `json:"candidate_name"`
	RollNo          string        `json:"roll_no"`
	Topic           string        `json:"topic"`
	DurationMinutes int           `json:"duration_minutes"`
	Status          SessionStatus `json:"status"`
	StartedAt       time.Time     `json:"started_at"`
	SubmittedAt     *time.Time    `json:"submitted_at,omitempty"`
	QuestionIDs     []uuid.UUID   `json:"question_ids"`
}

// StartSessionRequest is the payload for a candidate starting an exam.
type StartSessionRequest struct {
	CandidateName   string `json:"candidate_name" binding:"required,min=1,max=200"`
	RollNo          string `json:"roll_no" binding:"required,min=1,max=50"`
	Topic           string `json:"topic" binding:"required,min=1,max=100"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=5,max=480"`
}

// RecordAnswerRequest is the payload for recording a text or choice answer.
type RecordAnswerRequest struct {
	Kind  string `json:"kind" binding:"required,oneof=text choice"`
	Value string `json:"value" binding:"max=20000"`
}

// SessionState is the candidate-facing view returned on every read: the
// explicit status, the lazily computed clock and the current answer map.
type SessionState struct {
	Session          *ExamSession           `json:"session"`
	RemainingSeconds int64                  `json:"remaining_seconds"`
	Clock            string                 `json:"clock"`
	Progress         float64                `json:"progress"`
	Questions        []Question             `json:"questions"`
	Answers          map[string]AnswerValue `json:"answers"`
	UploadedMedia    map[string]string      `json:"uploaded_media"`
	NoQuestions      bool                   `json:"no_questions"`
}
