package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/emilythestrangee/qna-forum/backend/internal/config"
	"github.com/emilythestrangee/qna-forum/backend/internal/handlers"
	"github.com/emilythestrangee/qna-forum/backend/internal/middleware"
	"github.com/emilythestrangee/qna-forum/backend/internal/service"
	"github.com/emilythestrangee/qna-forum/backend/internal/vote"
)

type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	svc     *service.Service
	handler *handlers.Handler
}

func New(cfg *config.Config, log *slog.Logger, svc *service.Service) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		svc:     svc,
		handler: handlers.NewHandler(svc),
	}
}

// HTTPServer builds the http.Server serving the API.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.HTTP.Addr(),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  s.cfg.HTTP.IdleTimeout,
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	if s.cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.CustomRecovery(func(c *gin.Context, _ any) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}),
		otelgin.Middleware(s.cfg.Tracing.ServiceName),
		middleware.RequestLogger(s.log),
		middleware.Metrics(),
	)

	// CORS configuration
	origins := s.cfg.HTTP.CORSOrigins
	allowAll := len(origins) == 0 || (len(origins) == 1 && origins[0] == "*")
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := s.handler
	auth := middleware.Auth(s.svc)

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)

		// Public reads
		api.GET("/questions", h.Question.ListQuestions)
		api.GET("/questions/:id", h.Question.GetQuestion)
		api.GET("/questions/:id/comments", h.Comment.ListFor(vote.KindQuestion))
		api.GET("/answers", h.Answer.ListAnswers)
		api.GET("/answers/:id/replies", h.Reply.ListReplies)
		api.GET("/answers/:id/comments", h.Comment.ListFor(vote.KindAnswer))
		api.GET("/users/:id", h.User.GetUserProfile)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(auth)
		{
			protected.GET("/me", h.Auth.Me)

			protected.POST("/questions", h.Question.CreateQuestion)
			protected.PUT("/questions/:id", h.Question.UpdateQuestion)
			protected.DELETE("/questions/:id", h.Question.DeleteQuestion)
			protected.POST("/questions/:id/vote", h.Vote.For(vote.KindQuestion))

			protected.POST("/answers", h.Answer.CreateAnswer)
			protected.POST("/answers/:id/accept", h.Answer.AcceptAnswer)
			protected.POST("/answers/:id/vote", h.Vote.For(vote.KindAnswer))
			protected.POST("/answers/:id/replies", h.Reply.CreateReply)

			protected.POST("/replies/:id/vote", h.Vote.For(vote.KindReply))

			protected.POST("/comments", h.Comment.CreateComment)
			protected.POST("/comments/:id/vote", h.Vote.For(vote.KindComment))

			protected.PUT("/users/:id", h.User.UpdateUserProfile)

			protected.POST("/uploads/images", h.Upload.ImageUploadURL)
		}
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	status := s.svc.Health(c.Request.Context())
	code := http.StatusOK
	if status["status"] != "up" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
