package service

import (
	"bytes"
	"os"
	"testing"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/rs/zerolog"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"What is 2+2?", "What is 2+2?"},
		{"tabs\tand\nnewlines", "tabs and newlines"},
		{"café", "café"},
		{"√16 = ?", "?16 = ?"},
		{"日本語", "???"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderProducesPDF(t *testing.T) {
	fontPath := os.Getenv("PAPER_FONT_PATH")
	if fontPath == "" {
		fontPath = "../../assets/fonts/DejaVuSans.ttf"
	}
	if _, err := os.Stat(fontPath); err != nil {
		t.Skipf("paper font not available at %s", fontPath)
	}

	svc := NewPaperService(fontPath, zerolog.Nop())
	questions := []model.Question{
		{
			Type:          model.QuestionTypeMCQ,
			Text:          "What is 2+2?",
			Options:       []string{"3", "4", "5", "6"},
			CorrectAnswer: "4",
			Marks:         5,
		},
		{
			Type:  model.QuestionTypeLongAnswer,
			Text:  "Describe the water cycle.",
			Marks: 10,
		},
	}

	pdf, err := svc.Render(questions, "Weekly Mock Test")
	if err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
}

func TestRenderFailsWithoutFont(t *testing.T) {
	svc := NewPaperService("/nonexistent/font.ttf", zerolog.Nop())
	if _, err := svc.Render([]model.Question{{Text: "q", Marks: 1}}, "Test"); err == nil {
		t.Fatal("Render() succeeded without a font")
	}
}
