package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionType distinguishes multiple-choice from free-form questions.
type QuestionType string

const (
	QuestionTypeMCQ        QuestionType = "MCQ"
	QuestionTypeLongAnswer QuestionType = "LONG_ANSWER"
)

// Difficulty is the authoring-time difficulty label.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// MCQOptionCount is the fixed number of options every MCQ carries.
const MCQOptionCount = 4

// Question represents a single bank question. Questions are immutable once
// created — there are no update or delete flows.
type Question struct {
	ID            uuid.UUID    `json:"id"`
	Topic         string       `json:"topic"`
	Difficulty    Difficulty   `json:"difficulty"`
	Type          QuestionType `json:"type"`
	Text          string       `json:"text"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	Marks         int          `json:"marks"`
	ImageURL      string       `json:"image_url,omitempty"`
	VideoURL      string       `json:"video_url,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// ForCandidate strips the correct answer before the question is handed to
// an exam session.
func (q Question) ForCandidate() Question {
	q.CorrectAnswer = ""
	return q
}

// CreateQuestionRequest is the payload for authoring a question.
type CreateQuestionRequest struct {
	Topic         string   `json:"topic" binding:"required,min=1,max=100"`
	Difficulty    string   `json:"difficulty" binding:"required,oneof=Easy Medium Hard"`
	Type          string   `json:"type" binding:"required,oneof=MCQ LONG_ANSWER"`
	Text          string   `json:"text" binding:"required,min=1,max=5000"`
	Options       []string `json:"options" binding:"omitempty,len=4,dive,max=500"`
	CorrectAnswer string   `json:"correct_answer" binding:"omitempty,max=500"`
	Marks         int      `json:"marks" binding:"required,min=1,max=100"`
	ImageURL      string   `json:"image_url" binding:"omitempty,url,max=2000"`
	VideoURL      string   `json:"video_url" binding:"omitempty,url,max=2000"`
}
