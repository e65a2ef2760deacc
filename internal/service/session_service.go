package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/examhall/examhall-backend/internal/config"
	"github.com/examhall/examhall-backend/internal/model"
	"github.com/examhall/examhall-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Sentinel errors for the session lifecycle.
var (
	ErrSessionExpired   = errors.New("session has expired")
	ErrSessionSubmitted = errors.New("session has already been submitted")
	ErrQuestionNotInSet = errors.New("question is not part of the session snapshot")
	ErrInvalidChoice    = errors.New("choice is not one of the question's options")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// SessionService owns the exam session lifecycle: start, answer capture,
// lazy expiry and final submission.
type SessionService struct {
	sessionRepo    *repository.SessionRepository
	questionRepo   *repository.QuestionRepository
	answerRepo     *repository.AnswerRepository
	submissionRepo *repository.SubmissionRepository
	media          *MediaService
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(
	sessionRepo *repository.SessionRepository,
	questionRepo *repository.QuestionRepository,
	answerRepo *repository.AnswerRepository,
	submissionRepo *repository.SubmissionRepository,
	media *MediaService,
	rdb *redis.Client,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo:    sessionRepo,
		questionRepo:   questionRepo,
		answerRepo:     answerRepo,
		submissionRepo: submissionRepo,
		media:          media,
		rdb:            rdb,
		log:            log.With().Str("component", "session_service").Logger(),
	}
}

// Start begins a session for a candidate. If the candidate already has an
// IN_PROGRESS session for the topic, that session is returned unchanged —
// a second start never resets the time basis. The question snapshot is
// fetched exactly once, here; it is never re-fetched mid-exam.
func (s *SessionService) Start(ctx context.Context, req *model.StartSessionRequest) (*model.ExamSession, []model.Question, error) {
	existing, err := s.sessionRepo.GetInProgress(ctx, req.RollNo, req.Topic)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: check existing session: %v", ErrStoreUnavailable, err)
	}

	now := time.Now()

	if existing != nil {
		// The stored phase may be stale; evaluate before joining.
		if EvaluateStatus(existing.Status, existing.StartedAt, existing.DurationMinutes, now) == model.SessionStatusExpired {
			if err := s.sessionRepo.MarkExpired(ctx, existing.ID); err != nil {
				s.log.Error().Err(err).Str("session_id", existing.ID.String()).Msg("Persist expiry failed")
			}
		} else {
			s.cacheClock(ctx, existing)
			questions, err := s.snapshotQuestions(ctx, existing)
			if err != nil {
				return nil, nil, err
			}
			return existing, questions, nil
		}
	}

	snapshot, err := s.questionRepo.ListByTopic(ctx, req.Topic)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: fetch questions: %v", ErrStoreUnavailable, err)
	}

	// An empty snapshot is a legal informational state, not an error; the
	// session starts but cannot collect answers.
	ids := make([]uuid.UUID, len(snapshot))
	for i, q := range snapshot {
		ids[i] = q.ID
	}

	session := &model.ExamSession{
		CandidateName:   req.CandidateName,
		RollNo:          req.RollNo,
		Topic:           req.Topic,
		DurationMinutes: req.DurationMinutes,
		Status:          model.SessionStatusInProgress,
		QuestionIDs:     ids,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("%w: create session: %v", ErrStoreUnavailable, err)
	}

	s.cacheClock(ctx, session)

	for i := range snapshot {
		snapshot[i] = snapshot[i].ForCandidate()
	}
	return session, snapshot, nil
}

// State returns the candidate-facing view: evaluated status, remaining
// clock, the question snapshot and the current answer map.
func (s *SessionService) State(ctx context.Context, sessionID uuid.UUID) (*model.SessionState, error) {
	session, err := s.evaluate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startedAt := s.startedAt(ctx, session)
	remaining := RemainingSeconds(startedAt, session.DurationMinutes, now)

	questions, err := s.snapshotQuestions(ctx, session)
	if err != nil {
		return nil, err
	}

	answers, err := s.currentAnswers(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	uploads, err := s.rdb.HGetAll(ctx, config.CacheKey.SessionUploadsKey(session.ID.String())).Result()
	if err != nil {
		return nil, fmt.Errorf("get uploads: %w", err)
	}

	return &model.SessionState{
		Session:          session,
		RemainingSeconds: remaining,
		Clock:            FormatClock(remaining),
		Progress:         ProgressFraction(remaining, session.DurationMinutes),
		Questions:        questions,
		Answers:          answers,
		UploadedMedia:    uploads,
		NoQuestions:      len(session.QuestionIDs) == 0,
	}, nil
}

// Clock returns the evaluated status and remaining seconds without loading
// the snapshot or answers. Used by the WebSocket clock stream, which ticks
// once per second per client, so the running window is served entirely from
// the cached start/duration pair; the store is only consulted on a cache
// miss or once the window is over (which also persists the expiry
// transition). Submit drops the clock keys and an elapsed window falls
// through to evaluate, so the fast path can only report a running session.
func (s *SessionService) Clock(ctx context.Context, sessionID uuid.UUID) (model.SessionStatus, int64, error) {
	if remaining, ok := s.cachedRemaining(ctx, sessionID); ok && remaining > 0 {
		return model.SessionStatusInProgress, remaining, nil
	}

	session, err := s.evaluate(ctx, sessionID)
	if err != nil {
		return "", 0, err
	}
	remaining := RemainingSeconds(s.startedAt(ctx, session), session.DurationMinutes, time.Now())
	return session.Status, remaining, nil
}

// cachedRemaining computes the remaining seconds from the cached clock keys
// alone. ok is false on any miss or parse failure.
func (s *SessionService) cachedRemaining(ctx context.Context, sessionID uuid.UUID) (int64, bool) {
	id := sessionID.String()

	startVal, err := s.rdb.Get(ctx, config.CacheKey.SessionStartKey(id)).Result()
	if err != nil {
		return 0, false
	}
	durVal, err := s.rdb.Get(ctx, config.CacheKey.SessionDurationKey(id)).Result()
	if err != nil {
		return 0, false
	}

	unix, err := strconv.ParseInt(startVal, 10, 64)
	if err != nil {
		return 0, false
	}
	mins, err := strconv.Atoi(durVal)
	if err != nil {
		return 0, false
	}

	return RemainingSeconds(time.Unix(unix, 0), mins, time.Now()), true
}

// RecordAnswer captures one text or choice answer for a question in the
// snapshot. Only IN_PROGRESS sessions accept answers; choice values must
// equal one of the question's options and the unanswered sentinel is
// rejected outright.
func (s *SessionService) RecordAnswer(ctx context.Context, sessionID, questionID uuid.UUID, answer model.AnswerValue) error {
	session, err := s.requireInProgress(ctx, sessionID)
	if err != nil {
		return err
	}

	if !snapshotContains(session.QuestionIDs, questionID) {
		return ErrQuestionNotInSet
	}

	if err := answer.Validate(); err != nil {
		return err
	}

	if answer.Kind == model.AnswerKindChoice {
		questions, err := s.questionRepo.ListByIDs(ctx, []string{questionID.String()})
		if err != nil {
			return fmt.Errorf("%w: fetch question: %v", ErrStoreUnavailable, err)
		}
		if len(questions) == 0 {
			return ErrQuestionNotInSet
		}
		if !optionOf(questions[0], answer.Value) {
			return ErrInvalidChoice
		}
	}

	return s.saveAnswer(ctx, session.ID, questionID, answer)
}

// RecordImageAnswer uploads a photographic answer and records it. Uploads
// are idempotent per question id: once a URL is cached for the question,
// later calls reuse it without touching the upload service. A failed
// upload is non-fatal — the text path stays usable.
func (s *SessionService) RecordImageAnswer(ctx context.Context, sessionID, questionID uuid.UUID, image []byte, contentType string) (string, error) {
	session, err := s.requireInProgress(ctx, sessionID)
	if err != nil {
		return "", err
	}

	if !snapshotContains(session.QuestionIDs, questionID) {
		return "", ErrQuestionNotInSet
	}

	uploadsKey := config.CacheKey.SessionUploadsKey(session.ID.String())
	url, err := uploadOnce(ctx, s.rdb, uploadsKey, questionID.String(), func() (string, error) {
		return s.media.Upload(ctx, image, contentType)
	})
	if err != nil {
		return "", err
	}

	if err := s.saveAnswer(ctx, session.ID, questionID, model.ImageAnswer(url)); err != nil {
		return "", err
	}
	return url, nil
}

// uploadOnce makes photo uploads idempotent per question: a URL already in
// the uploads hash is returned as-is and the upload function is never
// invoked for it again. A failed upload caches nothing, so the next attempt
// retries.
func uploadOnce(ctx context.Context, rdb *redis.Client, uploadsKey, questionID string, upload func() (string, error)) (string, error) {
	cached, err := rdb.HGet(ctx, uploadsKey, questionID).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("check cached upload: %w", err)
	}
	if cached != "" {
		return cached, nil
	}

	url, err := upload()
	if err != nil {
		return "", err
	}

	if err := rdb.HSet(ctx, uploadsKey, questionID, url).Err(); err != nil {
		return "", fmt.Errorf("cache upload: %w", err)
	}
	return url, nil
}

// Submit assembles the current answer map into one append-only Submission
// and moves the session to SUBMITTED. Expired sessions are rejected and no
// Submission is written for them. The insert and the status flip commit in
// one transaction; if the write fails, the recorded answers remain intact
// and submit may be retried without appending a second row.
func (s *SessionService) Submit(ctx context.Context, sessionID uuid.UUID) (*model.Submission, error) {
	session, err := s.requireInProgress(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	answers, err := s.currentAnswers(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	uploads, err := s.rdb.HGetAll(ctx, config.CacheKey.SessionUploadsKey(session.ID.String())).Result()
	if err != nil {
		return nil, fmt.Errorf("get uploads: %w", err)
	}

	submission := &model.Submission{
		SessionID:   session.ID,
		StudentName: session.CandidateName,
		RollNo:      session.RollNo,
		Topic:       session.Topic,
		Answers:     mergeAnswers(answers, uploads),
	}

	ok, err := s.submissionRepo.Create(ctx, submission, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: write submission: %v", ErrStoreUnavailable, err)
	}
	if !ok {
		// Another path finalized the session between the guard and the
		// transaction. Report the state that won.
		latest, lerr := s.sessionRepo.GetByID(ctx, session.ID)
		if lerr == nil && latest.Status == model.SessionStatusExpired {
			return nil, ErrSessionExpired
		}
		return nil, ErrSessionSubmitted
	}

	s.dropClock(ctx, session.ID)

	s.log.Info().
		Str("session_id", session.ID.String()).
		Str("roll_no", session.RollNo).
		Int("answers", len(submission.Answers)).
		Msg("Exam submitted")

	return submission, nil
}

// ─── internals ──────────────────────────────────────────────────────

// evaluate loads the session and applies the lazy expiry transition,
// persisting EXPIRED when it fires. The returned session carries the
// evaluated status.
func (s *SessionService) evaluate(ctx context.Context, sessionID uuid.UUID) (*model.ExamSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("%w: get session: %v", ErrStoreUnavailable, err)
	}

	evaluated := EvaluateStatus(session.Status, s.startedAt(ctx, session), session.DurationMinutes, time.Now())
	if evaluated == model.SessionStatusExpired && session.Status != model.SessionStatusExpired {
		if err := s.sessionRepo.MarkExpired(ctx, session.ID); err != nil {
			s.log.Error().Err(err).Str("session_id", session.ID.String()).Msg("Persist expiry failed")
		}
	}
	session.Status = evaluated
	return session, nil
}

// requireInProgress is the mutation guard: every answer capture and the
// submit action pass through it.
func (s *SessionService) requireInProgress(ctx context.Context, sessionID uuid.UUID) (*model.ExamSession, error) {
	session, err := s.evaluate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	switch session.Status {
	case model.SessionStatusExpired:
		return nil, ErrSessionExpired
	case model.SessionStatusSubmitted:
		return nil, ErrSessionSubmitted
	}
	return session, nil
}

// startedAt reads the session start from the Redis cache, falling back to
// the session row and self-healing the cache on a miss.
func (s *SessionService) startedAt(ctx context.Context, session *model.ExamSession) time.Time {
	startKey := config.CacheKey.SessionStartKey(session.ID.String())

	val, err := s.rdb.Get(ctx, startKey).Result()
	if err == nil {
		if unix, perr := strconv.ParseInt(val, 10, 64); perr == nil {
			return time.Unix(unix, 0)
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Start-time cache read failed")
	}

	// Cache miss — Postgres is the source of truth. Put it back so the
	// next read is fast.
	_ = s.rdb.Set(ctx, startKey, session.StartedAt.Unix(), 0)
	return session.StartedAt
}

func (s *SessionService) cacheClock(ctx context.Context, session *model.ExamSession) {
	id := session.ID.String()
	if err := s.rdb.Set(ctx, config.CacheKey.SessionStartKey(id), session.StartedAt.Unix(), 0).Err(); err != nil {
		s.log.Warn().Err(err).Str("session_id", id).Msg("Failed to cache start time")
	}
	if err := s.rdb.Set(ctx, config.CacheKey.SessionDurationKey(id), session.DurationMinutes, 0).Err(); err != nil {
		s.log.Warn().Err(err).Str("session_id", id).Msg("Failed to cache duration")
	}
}

func (s *SessionService) dropClock(ctx context.Context, sessionID uuid.UUID) {
	id := sessionID.String()
	if err := s.rdb.Del(ctx,
		config.CacheKey.SessionStartKey(id),
		config.CacheKey.SessionDurationKey(id),
	).Err(); err != nil {
		s.log.Warn().Err(err).Str("session_id", id).Msg("Failed to drop clock keys")
	}
}

// saveAnswer writes the answer to the hot Redis hash and queues it for
// durable persistence by the autosave worker.
func (s *SessionService) saveAnswer(ctx context.Context, sessionID, questionID uuid.UUID, answer model.AnswerValue) error {
	answersKey := config.CacheKey.SessionAnswersKey(sessionID.String())
	if err := s.rdb.HSet(ctx, answersKey, questionID.String(), answer.Encode()).Err(); err != nil {
		return fmt.Errorf("save answer: %w", err)
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"session_id":  sessionID.String(),
		"question_id": questionID.String(),
		"kind":        answer.Kind,
		"value":       answer.Value,
	})
	if err := s.rdb.RPush(ctx, config.PersistAnswersQueue, payload).Err(); err != nil {
		// The hash still holds the answer; the worker will catch up on the
		// next capture. Log and continue.
		s.log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("Queue answer failed")
	}
	return nil
}

// currentAnswers reads the Redis answer hash, falling back to the
// persisted session_answers rows when the hash is empty or unreachable.
func (s *SessionService) currentAnswers(ctx context.Context, sessionID uuid.UUID) (map[string]model.AnswerValue, error) {
	raw, err := s.rdb.HGetAll(ctx, config.CacheKey.SessionAnswersKey(sessionID.String())).Result()
	if err != nil || len(raw) == 0 {
		if err != nil {
			s.log.Warn().Err(err).Msg("Answer cache read failed, falling back to store")
		}
		answers, dbErr := s.answerRepo.ListBySession(ctx, sessionID)
		if dbErr != nil {
			return nil, fmt.Errorf("%w: list answers: %v", ErrStoreUnavailable, dbErr)
		}
		return answers, nil
	}

	answers := make(map[string]model.AnswerValue, len(raw))
	for qid, encoded := range raw {
		a, derr := model.DecodeAnswer(encoded)
		if derr != nil {
			s.log.Error().Err(derr).Str("question_id", qid).Msg("Corrupt cached answer skipped")
			continue
		}
		answers[qid] = a
	}
	return answers, nil
}

// snapshotQuestions loads the snapshot in its recorded order with correct
// answers stripped.
func (s *SessionService) snapshotQuestions(ctx context.Context, session *model.ExamSession) ([]model.Question, error) {
	if len(session.QuestionIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(session.QuestionIDs))
	for i, id := range session.QuestionIDs {
		ids[i] = id.String()
	}
	questions, err := s.questionRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch snapshot: %v", ErrStoreUnavailable, err)
	}
	for i := range questions {
		questions[i] = questions[i].ForCandidate()
	}
	return questions, nil
}

func snapshotContains(ids []uuid.UUID, questionID uuid.UUID) bool {
	for _, id := range ids {
		if id == questionID {
			return true
		}
	}
	return false
}

func optionOf(q model.Question, value string) bool {
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}
