package service

import (
	"errors"
	"testing"

	"github.com/examhall/examhall-backend/internal/model"
)

func mcq(options []string, correct string) *model.Question {
	return &model.Question{
		Topic:         "Algebra",
		Type:          model.QuestionTypeMCQ,
		Text:          "What is 2+2?",
		Options:       options,
		CorrectAnswer: correct,
		Marks:         5,
	}
}

func TestValidateQuestionMCQ(t *testing.T) {
	tests := []struct {
		name    string
		q       *model.Question
		wantErr error
	}{
		{
			name: "valid",
			q:    mcq([]string{"3", "4", "5", "6"}, "4"),
		},
		{
			name:    "too few options",
			q:       mcq([]string{"3", "4", "5"}, "4"),
			wantErr: ErrOptionsRequired,
		},
		{
			name:    "too many options",
			q:       mcq([]string{"3", "4", "5", "6", "7"}, "4"),
			wantErr: ErrOptionsRequired,
		},
		{
			name:    "empty option",
			q:       mcq([]string{"3", "", "5", "6"}, "3"),
			wantErr: ErrOptionsRequired,
		},
		{
			name:    "correct answer not among options",
			q:       mcq([]string{"3", "4", "5", "6"}, "7"),
			wantErr: ErrCorrectNotOption,
		},
		{
			name:    "missing correct answer",
			q:       mcq([]string{"3", "4", "5", "6"}, ""),
			wantErr: ErrCorrectNotOption,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestion(tt.q)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateQuestion() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateQuestionLongAnswerNormalizes(t *testing.T) {
	q := &model.Question{
		Topic:         "History",
		Type:          model.QuestionTypeLongAnswer,
		Text:          "Describe the causes of World War I.",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: "a",
		Marks:         10,
	}

	if err := ValidateQuestion(q); err != nil {
		t.Fatalf("ValidateQuestion() = %v", err)
	}
	if q.Options != nil {
		t.Errorf("Options = %v, want nil", q.Options)
	}
	if q.CorrectAnswer != "" {
		t.Errorf("CorrectAnswer = %q, want empty", q.CorrectAnswer)
	}
}
