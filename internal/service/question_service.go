package service

import (
	"context"
	"errors"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/examhall/examhall-backend/internal/repository"
)

// Authoring validation errors.
var (
	ErrOptionsRequired  = errors.New("MCQ questions require exactly four non-empty options")
	ErrCorrectNotOption = errors.New("correct answer must equal one of the options")
)

// QuestionService handles question-bank business logic.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// Create validates and stores a new question. MCQ invariants are enforced
// at write time: exactly four non-empty options and a correct answer equal
// to one of them. Long-answer questions carry neither.
func (s *QuestionService) Create(ctx context.Context, q *model.Question) error {
	if err := ValidateQuestion(q); err != nil {
		return err
	}
	return s.questionRepo.Create(ctx, q)
}

// ValidateQuestion checks the MCQ invariants on an authored question and
// normalizes the long-answer shape.
func ValidateQuestion(q *model.Question) error {
	if q.Type == model.QuestionTypeMCQ {
		if len(q.Options) != model.MCQOptionCount {
			return ErrOptionsRequired
		}
		for _, opt := range q.Options {
			if opt == "" {
				return ErrOptionsRequired
			}
		}
		if !optionOf(*q, q.CorrectAnswer) {
			return ErrCorrectNotOption
		}
		return nil
	}

	// Long-answer questions never carry options or a correct answer.
	q.Options = nil
	q.CorrectAnswer = ""
	return nil
}

// ListByTopic retrieves all questions for a topic (exact, case-sensitive
// match). An empty slice means no questions are configured for the topic.
func (s *QuestionService) ListByTopic(ctx context.Context, topic string) ([]model.Question, error) {
	return s.questionRepo.ListByTopic(ctx, topic)
}

// ListRecent retrieves the most recently authored questions, newest first.
func (s *QuestionService) ListRecent(ctx context.Context, limit int) ([]model.Question, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.questionRepo.ListRecent(ctx, limit)
}
