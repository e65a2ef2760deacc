package service

import (
	"fmt"
	"time"

	"github.com/examhall/examhall-backend/internal/model"
)

// The session lifecycle is an explicit state machine:
//
//	NOT_STARTED → IN_PROGRESS → EXPIRED | SUBMITTED
//
// Transitions are pure functions of (status, started_at, duration, now).
// There is no background timer; expiry is detected lazily on the next read
// and then persisted, so correctness never depends on render cadence.

// EvaluateStatus returns the status a session holds at the given instant.
// Terminal states absorb; IN_PROGRESS becomes EXPIRED exactly when the
// elapsed time reaches the configured duration.
func EvaluateStatus(status model.SessionStatus, startedAt time.Time, durationMinutes int, now time.Time) model.SessionStatus {
	if status.Terminal() {
		return status
	}
	if status == model.SessionStatusInProgress {
		if now.Sub(startedAt) >= time.Duration(durationMinutes)*time.Minute {
			return model.SessionStatusExpired
		}
	}
	return status
}

// RemainingSeconds computes duration*60 − elapsed, clamped to ≥ 0.
func RemainingSeconds(startedAt time.Time, durationMinutes int, now time.Time) int64 {
	total := int64(durationMinutes) * 60
	elapsed := int64(now.Sub(startedAt) / time.Second)
	remaining := total - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// FormatClock renders a zero-padded MM:SS display clock.
func FormatClock(remainingSeconds int64) string {
	if remainingSeconds < 0 {
		remainingSeconds = 0
	}
	mins := remainingSeconds / 60
	secs := remainingSeconds % 60
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

// ProgressFraction returns remaining/total clamped to [0, 1].
func ProgressFraction(remainingSeconds int64, durationMinutes int) float64 {
	total := float64(durationMinutes) * 60
	if total <= 0 {
		return 0
	}
	frac := float64(remainingSeconds) / total
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}

// mergeAnswers overlays uploaded photo answers on top of recorded answers.
// When both a text answer and an uploaded image exist for the same
// question, the image wins.
func mergeAnswers(answers map[string]model.AnswerValue, uploads map[string]string) map[string]model.AnswerValue {
	merged := make(map[string]model.AnswerValue, len(answers)+len(uploads))
	for qid, a := range answers {
		merged[qid] = a
	}
	for qid, url := range uploads {
		merged[qid] = model.ImageAnswer(url)
	}
	return merged
}
