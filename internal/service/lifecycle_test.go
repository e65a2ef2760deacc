package service

import (
	"testing"
	"time"

	"github.com/examhall/examhall-backend/internal/model"
)

func TestEvaluateStatus(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		status   model.SessionStatus
		now      time.Time
		duration int
		want     model.SessionStatus
	}{
		{
			name:     "in progress before deadline",
			status:   model.SessionStatusInProgress,
			now:      start.Add(59 * time.Minute),
			duration: 60,
			want:     model.SessionStatusInProgress,
		},
		{
			name:     "expires exactly at deadline",
			status:   model.SessionStatusInProgress,
			now:      start.Add(60 * time.Minute),
			duration: 60,
			want:     model.SessionStatusExpired,
		},
		{
			name:     "expires after deadline",
			status:   model.SessionStatusInProgress,
			now:      start.Add(2 * time.Hour),
			duration: 60,
			want:     model.SessionStatusExpired,
		},
		{
			name:     "submitted is terminal even past deadline",
			status:   model.SessionStatusSubmitted,
			now:      start.Add(3 * time.Hour),
			duration: 60,
			want:     model.SessionStatusSubmitted,
		},
		{
			name:     "expired stays expired",
			status:   model.SessionStatusExpired,
			now:      start,
			duration: 60,
			want:     model.SessionStatusExpired,
		},
		{
			name:     "not started is untouched by the clock",
			status:   model.SessionStatusNotStarted,
			now:      start.Add(5 * time.Hour),
			duration: 60,
			want:     model.SessionStatusNotStarted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateStatus(tt.status, start, tt.duration, tt.now)
			if got != tt.want {
				t.Errorf("EvaluateStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRemainingSeconds(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		now      time.Time
		duration int
		want     int64
	}{
		{"full window at start", start, 60, 3600},
		{"half elapsed", start.Add(30 * time.Minute), 60, 1800},
		{"one second left", start.Add(3599 * time.Second), 60, 1},
		{"exactly zero", start.Add(time.Hour), 60, 0},
		{"clamped past deadline", start.Add(2 * time.Hour), 60, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingSeconds(start, tt.duration, tt.now)
			if got != tt.want {
				t.Errorf("RemainingSeconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{3600, "60:00"},
		{3599, "59:59"},
		{61, "01:01"},
		{9, "00:09"},
		{0, "00:00"},
		{-5, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestProgressFraction(t *testing.T) {
	tests := []struct {
		name      string
		remaining int64
		duration  int
		want      float64
	}{
		{"full", 3600, 60, 1},
		{"half", 1800, 60, 0.5},
		{"empty", 0, 60, 0},
		{"zero duration", 100, 0, 0},
		{"overfull clamped", 7200, 60, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressFraction(tt.remaining, tt.duration)
			if got != tt.want {
				t.Errorf("ProgressFraction() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestMergeAnswers(t *testing.T) {
	answers := map[string]model.AnswerValue{
		"q1": model.TextAnswer("an essay"),
		"q2": model.ChoiceAnswer("4"),
	}
	uploads := map[string]string{
		"q1": "https://i.ibb.co/abc/photo.jpg",
		"q3": "https://i.ibb.co/def/photo.jpg",
	}

	merged := mergeAnswers(answers, uploads)

	if len(merged) != 3 {
		t.Fatalf("merged len = %d, want 3", len(merged))
	}
	// The image overrides the typed answer for q1.
	if merged["q1"].Kind != model.AnswerKindImage || merged["q1"].Value != "https://i.ibb.co/abc/photo.jpg" {
		t.Errorf("q1 = %+v, want image answer", merged["q1"])
	}
	if merged["q2"] != model.ChoiceAnswer("4") {
		t.Errorf("q2 = %+v, want choice answer", merged["q2"])
	}
	if merged["q3"].Kind != model.AnswerKindImage {
		t.Errorf("q3 kind = %s, want image", merged["q3"].Kind)
	}
}
