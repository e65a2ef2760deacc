package repository

import (
	"context"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AnswerRepository persists autosaved session answers. Rows are UPSERTed by
// (session_id, question_id) so the latest capture always wins.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

// Upsert creates or replaces the answer for one question in one session.
func (r *AnswerRepository) Upsert(ctx context.Context, sessionID, questionID uuid.UUID, answer model.AnswerValue) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO session_answers (session_id, question_id, kind, value)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (session_id, question_id) DO UPDATE
		 SET kind = EXCLUDED.kind, value = EXCLUDED.value, updated_at = NOW()`,
		sessionID, questionID, answer.Kind, answer.Value,
	)
	return err
}

// ListBySession retrieves the persisted answers for a session keyed by
// question id. Used as the fallback when the Redis answer hash is gone.
func (r *AnswerRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) (map[string]model.AnswerValue, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT question_id, kind, value
		 FROM session_answers WHERE session_id = $1`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	answers := make(map[string]model.AnswerValue)
	for rows.Next() {
		var qid uuid.UUID
		var a model.AnswerValue
		if err := rows.Scan(&qid, &a.Kind, &a.Value); err != nil {
			return nil, err
		}
		answers[qid.String()] = a
	}
	return answers, rows.Err()
}
