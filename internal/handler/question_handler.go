package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/examhall/examhall-backend/internal/model"
	"github.com/examhall/examhall-backend/internal/response"
	"github.com/examhall/examhall-backend/internal/service"
	"github.com/examhall/examhall-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// QuestionHandler handles question authoring endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// CreateQuestion godoc
// POST /api/v1/admin/questions
// Authors a new question. Questions are immutable once stored.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question := &model.Question{
		Topic:         req.Topic,
		Difficulty:    model.Difficulty(req.Difficulty),
		Type:          model.QuestionType(req.Type),
		Text:          req.Text,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Marks:         req.Marks,
		ImageURL:      req.ImageURL,
		VideoURL:      req.VideoURL,
	}

	if err := h.questionService.Create(c.Request.Context(), question); err != nil {
		switch {
		case errors.Is(err, service.ErrOptionsRequired):
			response.Fail(c, http.StatusBadRequest, response.ErrOptionsRequired)
		case errors.Is(err, service.ErrCorrectNotOption):
			response.Fail(c, http.StatusBadRequest, response.ErrCorrectNotOption)
		default:
			response.Fail(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// ListQuestions godoc
// GET /api/v1/admin/questions?topic=...
// Lists all questions for a topic (exact match). An empty list is a valid
// result, not an error.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	topic := c.Query("topic")
	if topic == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	questions, err := h.questionService.ListByTopic(c.Request.Context(), topic)
	if err != nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable)
		return
	}

	if questions == nil {
		questions = []model.Question{}
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// ListRecentQuestions godoc
// GET /api/v1/admin/questions/recent?limit=N
// Lists the most recently authored questions, newest first.
func (h *QuestionHandler) ListRecentQuestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	questions, err := h.questionService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable)
		return
	}

	if questions == nil {
		questions = []model.Question{}
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}
