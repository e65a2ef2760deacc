package handler

import (
	"fmt"
	"net/http"

	"github.com/examhall/examhall-backend/internal/response"
	"github.com/examhall/examhall-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// PaperHandler handles printable exam paper export.
type PaperHandler struct {
	questionService *service.QuestionService
	paperService    *service.PaperService
}

// NewPaperHandler creates a new PaperHandler.
func NewPaperHandler(questionService *service.QuestionService, paperService *service.PaperService) *PaperHandler {
	return &PaperHandler{questionService: questionService, paperService: paperService}
}

// DownloadPaper godoc
// GET /api/v1/admin/papers?topic=...&title=...
// Renders all questions for the topic into a PDF and streams it back.
func (h *PaperHandler) DownloadPaper(c *gin.Context) {
	topic := c.Query("topic")
	if topic == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	title := c.DefaultQuery("title", "Weekly Mock Test")

	questions, err := h.questionService.ListByTopic(c.Request.Context(), topic)
	if err != nil {
		response.Fail(c, http.StatusServiceUnavailable, response.ErrStoreUnavailable)
		return
	}
	if len(questions) == 0 {
		response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
		return
	}

	pdf, err := h.paperService.Render(questions, title)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", topic+"_Exam.pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
