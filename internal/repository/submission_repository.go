package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubmissionRepository appends submission records. Submissions are
// write-only from this system's point of view.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Create appends one submission and moves its session from IN_PROGRESS to
// SUBMITTED in a single transaction. The guarded status UPDATE runs first;
// when it matches no row the session was already finalized (expired or
// submitted by another path) and nothing is written, so a submission can
// never exist for an expired session and a retried submit can never append
// a second row. Returns false in that case.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission, at time.Time) (bool, error) {
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return false, fmt.Errorf("marshal answers: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE exam_sessions SET status = $1, submitted_at = $2
		 WHERE id = $3 AND status = $4`,
		model.SessionStatusSubmitted, at, s.SessionID, model.SessionStatusInProgress)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if err := tx.QueryRow(ctx,
		`INSERT INTO submissions (session_id, student_name, roll_no, topic, answers)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		s.SessionID, s.StudentName, s.RollNo, s.Topic, answers,
	).Scan(&s.ID, &s.CreatedAt); err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}
