package repository

import (
	"context"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository handles exam session data access. The session row owns
// the explicit status field and the question snapshot.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create inserts a new session in IN_PROGRESS state and fills in the
// store-assigned id and start timestamp.
func (r *SessionRepository) Create(ctx context.Context, s *model.ExamSession) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exam_sessions (candidate_name, roll_no, topic, duration_minutes, status, question_ids)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, started_at`,
		s.CandidateName, s.RollNo, s.Topic, s.DurationMinutes, model.SessionStatusInProgress, s.QuestionIDs,
	).Scan(&s.ID, &s.StartedAt)
}

// GetByID retrieves a session by id.
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ExamSession, error) {
	s := &model.ExamSession{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, candidate_name, roll_no, topic, duration_minutes, status, started_at, submitted_at, question_ids
		 FROM exam_sessions WHERE id = $1`, id,
	).Scan(&s.ID, &s.CandidateName, &s.RollNo, &s.Topic, &s.DurationMinutes, &s.Status, &s.StartedAt, &s.SubmittedAt, &s.QuestionIDs)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetInProgress retrieves the candidate's in-progress session for a topic,
// if one exists. Starting twice joins this session instead of resetting
// the time basis.
func (r *SessionRepository) GetInProgress(ctx context.Context, rollNo, topic string) (*model.ExamSession, error) {
	s := &model.ExamSession{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, candidate_name, roll_no, topic, duration_minutes, status, started_at, submitted_at, question_ids
		 FROM exam_sessions
		 WHERE roll_no = $1 AND topic = $2 AND status = $3
		 ORDER BY started_at DESC
		 LIMIT 1`, rollNo, topic, model.SessionStatusInProgress,
	).Scan(&s.ID, &s.CandidateName, &s.RollNo, &s.Topic, &s.DurationMinutes, &s.Status, &s.StartedAt, &s.SubmittedAt, &s.QuestionIDs)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// MarkExpired persists the lazily detected expiry. The guard keeps a
// concurrent submit from being overwritten.
func (r *SessionRepository) MarkExpired(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exam_sessions SET status = $1
		 WHERE id = $2 AND status = $3`,
		model.SessionStatusExpired, id, model.SessionStatusInProgress)
	return err
}

// The SUBMITTED transition lives in SubmissionRepository.Create: the status
// flip and the submission insert must commit together.
