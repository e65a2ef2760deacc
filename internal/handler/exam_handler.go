package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/examhall/examhall-backend/internal/middleware"
	"github.com/examhall/examhall-backend/internal/model"
	"github.com/examhall/examhall-backend/internal/response"
	"github.com/examhall/examhall-backend/internal/service"
	"github.com/examhall/examhall-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ExamHandler handles the candidate-facing exam session endpoints.
type ExamHandler struct {
	sessionService *service.SessionService
	authService    *service.AuthService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(sessionService *service.SessionService, authService *service.AuthService) *ExamHandler {
	return &ExamHandler{sessionService: sessionService, authService: authService}
}

// StartSession godoc
// POST /api/v1/exam/sessions
// Starts (or idempotently rejoins) a timed exam session and returns the
// candidate token for the rest of the flow.
func (h *ExamHandler) StartSession(c *gin.Context) {
	var req model.StartSessionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	session, questions, err := h.sessionService.Start(c.Request.Context(), &req)
	if err != nil {
		failSession(c, err)
		return
	}

	token, err := h.authService.GenerateCandidateToken(session.ID, session.DurationMinutes)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if questions == nil {
		questions = []model.Question{}
	}

	response.Success(c, http.StatusCreated, gin.H{
		"session":      session,
		"questions":    questions,
		"token":        token,
		"no_questions": len(questions) == 0,
	})
}

// GetState godoc
// GET /api/v1/exam/session
// Returns the evaluated session state: status, remaining clock, snapshot
// and current answers. Expiry is detected here (and on every other
// interaction), not by a background timer.
func (h *ExamHandler) GetState(c *gin.Context) {
	sessionID, ok := sessionIDFromClaims(c)
	if !ok {
		return
	}

	state, err := h.sessionService.State(c.Request.Context(), sessionID)
	if err != nil {
		failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, state)
}

// RecordAnswer godoc
// PUT /api/v1/exam/session/answers/:question_id
// Records a text or choice answer for one snapshot question.
func (h *ExamHandler) RecordAnswer(c *gin.Context) {
	sessionID, ok := sessionIDFromClaims(c)
	if !ok {
		return
	}

	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.RecordAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	answer := model.AnswerValue{Kind: model.AnswerKind(req.Kind), Value: req.Value}
	if err := h.sessionService.RecordAnswer(c.Request.Context(), sessionID, questionID, answer); err != nil {
		failSession(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"recorded": true})
}

// UploadAnswerImage godoc
// POST /api/v1/exam/session/answers/:question_id/image
// Uploads a photographic answer. Idempotent per question id — a second
// upload returns the cached URL without calling the image host again.
func (h *ExamHandler) UploadAnswerImage(c *gin.Context) {
	sessionID, ok := sessionIDFromClaims(c)
	if !ok {
		return
	}

	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	url, err := h.sessionService.RecordImageAnswer(c.Request.Context(), sessionID, questionID, data, header.Header.Get("Content-Type"))
	if err != nil {
		if isSessionErr(err) {
			failSession(c, err)
		} else {
			failUpload(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"url": url})
}

// Submit godoc
// POST /api/v1/exam/session/submit
// Assembles the answer map into one Submission and closes the session.
func (h *ExamHandler) Submit(c *gin.Context) {
	sessionID, ok := sessionIDFromClaims(c)
	if !ok {
		return
	}

	submission, err := h.sessionService.Submit(c.Request.Context(), sessionID)
	if err != nil {
		failSession(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"submission": submission})
}

// sessionIDFromClaims pulls the session id out of the candidate token. On
// failure it writes the error response and returns false.
func sessionIDFromClaims(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return uuid.Nil, false
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return uuid.Nil, false
	}
	return sessionID, true
}

// isSessionErr reports whether the error belongs to the lifecycle taxonomy
// rather than the upload taxonomy.
func isSessionErr(err error) bool {
	return errors.Is(err, service.ErrSessionExpired) ||
		errors.Is(err, service.ErrSessionSubmitted) ||
		errors.Is(err, service.ErrQuestionNotInSet) ||
		errors.Is(err, service.ErrStoreUnavailable) ||
		errors.Is(err, pgx.ErrNoRows)
}

// failSession maps lifecycle errors onto response codes.
func failSession(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrSessionExpired):
		response.Fail(c, http.StatusConflict, response.ErrSessionExpired)
	case errors.Is(err, service.ErrSessionSubmitted):
		response.Fail(c, http.StatusConflict, response.ErrAlreadySubmitted)
	case errors.Is(err, service.ErrQuestionNotInSet):
		response.Fail(c, http.StatusBadRequest, response.ErrQuestionNotInSet)
	case errors.Is(err, service.ErrInvalidChoice):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidOption)
	case errors.Is(err, model.ErrUnanswered):
		response.Fail(c, http.StatusBadRequest, response.ErrAnswerUnanswered)
	case errors.Is(err, service.ErrStoreUnavailable):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
