package repository

import (
	"context"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// Create inserts a new question and fills in the store-assigned id and
// server timestamp.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (topic, difficulty, type, text, options, correct_answer, marks, image_url, video_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		q.Topic, q.Difficulty, q.Type, q.Text, q.Options, q.CorrectAnswer, q.Marks, q.ImageURL, q.VideoURL,
	).Scan(&q.ID, &q.CreatedAt)
}

// ListByTopic retrieves all questions whose topic matches exactly.
// An empty result is success, not an error.
func (r *QuestionRepository) ListByTopic(ctx context.Context, topic string) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, topic, difficulty, type, text, options, correct_answer, marks, image_url, video_url, created_at
		 FROM questions WHERE topic = $1
		 ORDER BY created_at`, topic,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// ListRecent retrieves the most recently created questions, newest first.
func (r *QuestionRepository) ListRecent(ctx context.Context, limit int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, topic, difficulty, type, text, options, correct_answer, marks, image_url, video_url, created_at
		 FROM questions
		 ORDER BY created_at DESC
		 LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// ListByIDs retrieves the given questions preserving the input order, which
// is the session's snapshot order.
func (r *QuestionRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, topic, difficulty, type, text, options, correct_answer, marks, image_url, video_url, created_at
		 FROM questions WHERE id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID.String()] = q
	}

	ordered := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanQuestions(rows pgxRows) ([]model.Question, error) {
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Topic, &q.Difficulty, &q.Type, &q.Text, &q.Options, &q.CorrectAnswer, &q.Marks, &q.ImageURL, &q.VideoURL, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
