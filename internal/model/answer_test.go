package model

import (
	"errors"
	"testing"
)

func TestAnswerValueValidate(t *testing.T) {
	tests := []struct {
		name    string
		answer  AnswerValue
		wantErr error
	}{
		{"free text", TextAnswer("an essay about rivers"), nil},
		{"empty text is legal", TextAnswer(""), nil},
		{"choice", ChoiceAnswer("4"), nil},
		{"image", ImageAnswer("https://i.ibb.co/abc/photo.jpg"), nil},
		{"choice sentinel rejected", ChoiceAnswer(UnansweredSentinel), ErrUnanswered},
		{"empty choice rejected", ChoiceAnswer(""), ErrUnanswered},
		{"empty image rejected", ImageAnswer(""), ErrUnanswered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.answer.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnswerValueValidateUnknownKind(t *testing.T) {
	a := AnswerValue{Kind: "audio", Value: "x"}
	if err := a.Validate(); err == nil {
		t.Fatal("Validate() accepted an unknown kind")
	}
}

func TestAnswerEncodeDecode(t *testing.T) {
	in := ChoiceAnswer("option B")
	out, err := DecodeAnswer(in.Encode())
	if err != nil {
		t.Fatalf("DecodeAnswer() = %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestDecodeAnswerRejectsGarbage(t *testing.T) {
	if _, err := DecodeAnswer("{not json"); err == nil {
		t.Fatal("DecodeAnswer() accepted malformed input")
	}
}

func TestSessionStatusTerminal(t *testing.T) {
	tests := []struct {
		status SessionStatus
		want   bool
	}{
		{SessionStatusNotStarted, false},
		{SessionStatusInProgress, false},
		{SessionStatusExpired, true},
		{SessionStatusSubmitted, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %t, want %t", tt.status, got, tt.want)
		}
	}
}
