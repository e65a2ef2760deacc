package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// AnswerKind tags the variants of AnswerValue.
type AnswerKind string

const (
	AnswerKindText   AnswerKind = "text"
	AnswerKindChoice AnswerKind = "choice"
	AnswerKindImage  AnswerKind = "image"
)

// UnansweredSentinel marks an MCQ widget with no selection made. It is
// distinct from every legal option string (including "") and must never be
// recorded or persisted as an answer.
const UnansweredSentinel = "__unanswered__"

// ErrUnanswered is returned when a caller tries to record the sentinel.
var ErrUnanswered = errors.New("answer is the unanswered sentinel")

// AnswerValue is the tagged union of candidate answers: free text, a
// selected MCQ option, or the URL of an uploaded photo answer.
type AnswerValue struct {
	Kind  AnswerKind `json:"kind"`
	Value string     `json:"value"`
}

// TextAnswer builds a free-text answer. Empty text is legal.
func TextAnswer(text string) AnswerValue {
	return AnswerValue{Kind: AnswerKindText, Value: text}
}

// ChoiceAnswer builds an MCQ answer from the selected option string.
func ChoiceAnswer(option string) AnswerValue {
	return AnswerValue{Kind: AnswerKindChoice, Value: option}
}

// ImageAnswer builds a photo answer from a hosted image URL.
func ImageAnswer(url string) AnswerValue {
	return AnswerValue{Kind: AnswerKindImage, Value: url}
}

// Validate checks the union tag and sentinel rules.
func (a AnswerValue) Validate() error {
	switch a.Kind {
	case AnswerKindText:
		return nil
	case AnswerKindChoice, AnswerKindImage:
		if a.Value == UnansweredSentinel || a.Value == "" {
			return ErrUnanswered
		}
		return nil
	default:
		return fmt.Errorf("unknown answer kind %q", a.Kind)
	}
}

// Encode serializes the answer for the Redis hash and autosave queue.
func (a AnswerValue) Encode() string {
	b, _ := json.Marshal(a)
	return string(b)
}

// DecodeAnswer parses an encoded AnswerValue.
func DecodeAnswer(raw string) (AnswerValue, error) {
	var a AnswerValue
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return AnswerValue{}, fmt.Errorf("decode answer: %w", err)
	}
	return a, nil
}
