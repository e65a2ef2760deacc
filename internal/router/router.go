package router

import (
	"net/http"
	"time"

	"github.com/examhall/examhall-backend/internal/config"
	"github.com/examhall/examhall-backend/internal/handler"
	"github.com/examhall/examhall-backend/internal/middleware"
	"github.com/examhall/examhall-backend/internal/response"
	"github.com/examhall/examhall-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Question *handler.QuestionHandler
	Paper    *handler.PaperHandler
	Media    *handler.MediaHandler
	Exam     *handler.ExamHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group (Public) ────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/admin/login", handlers.Auth.AdminLogin)
	}

	// ─── 2. Exam Group (Candidate) ─────────────────────────────────────
	// Starting a session is public: it is how a candidate obtains their
	// token. Everything after that requires the candidate JWT.
	examAPI := router.Group("/api/v1/exam")
	{
		examAPI.POST("/sessions", handlers.Exam.StartSession)

		sessionAPI := examAPI.Group("/session")
		sessionAPI.Use(middleware.RequireCandidateJWT(authService))
		{
			sessionAPI.GET("", handlers.Exam.GetState)
			sessionAPI.PUT("/answers/:question_id", handlers.Exam.RecordAnswer)
			sessionAPI.POST("/answers/:question_id/image", handlers.Exam.UploadAnswerImage)
			sessionAPI.POST("/submit", handlers.Exam.Submit)
		}
	}

	// ─── 3. WebSocket Group (Candidate WS Auth) ────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireCandidateWSAuth(authService))
	{
		ws.GET("/exam/clock", handlers.WS.ClockStream)
	}

	// ─── 4. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Question authoring
		adminAPI.POST("/questions", handlers.Question.CreateQuestion)
		adminAPI.GET("/questions", handlers.Question.ListQuestions)
		adminAPI.GET("/questions/recent", handlers.Question.ListRecentQuestions)

		// Printable paper export
		adminAPI.GET("/papers", handlers.Paper.DownloadPaper)

		// Media upload
		adminAPI.POST("/media/upload", handlers.Media.UploadMedia)
	}

	return router
}
