package router

import (
	"net/http"
	"time"

	"github.com/academix/journey-backend/internal/config"
	"github.com/academix/journey-backend/internal/handler"
	"github.com/academix/journey-backend/internal/middleware"
	"github.com/academix/journey-backend/internal/model"
	"github.com/academix/journey-backend/internal/response"
	"github.com/academix/journey-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Admin    *handler.AdminHandler
	Student  *handler.StudentHandler
	Grade    *handler.GradeHandler
	Feedback *handler.FeedbackHandler
	Subject  *handler.SubjectHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	studentAccess middleware.StudentAccess,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
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
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
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

	requireAuth := middleware.RequireAuth(authService)
	ownershipGate := middleware.CanAccessStudentData(studentAccess, log)
	staffOnly := middleware.RequireRoles(model.RoleAdmin, model.RoleTeacher)

	api := router.Group("/api/v1")

	// ─── Auth ──────────────────────────────────────────────────────────
	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", requireAuth, handlers.Auth.Me)
	}

	// ─── Admin ─────────────────────────────────────────────────────────
	admin := api.Group("/admin", requireAuth, middleware.RequireAdmin())
	{
		admin.GET("/users", handlers.Admin.ListUsers)
	}

	// ─── Students ──────────────────────────────────────────────────────
	students := api.Group("/students", requireAuth)
	{
		students.GET("", handlers.Student.List)
		students.POST("", middleware.RequireAdmin(), handlers.Student.Create)
		students.PUT("/:id", middleware.RequireAdmin(), handlers.Student.Update)
		students.DELETE("/:id", middleware.RequireAdmin(), handlers.Student.Delete)
	}

	// ─── Grades ────────────────────────────────────────────────────────
	grades := api.Group("/grades", requireAuth)
	{
		grades.GET("/:student_id", ownershipGate, handlers.Grade.ListByStudent)
		grades.POST("", staffOnly, handlers.Grade.Create)
	}

	// ─── Feedback ──────────────────────────────────────────────────────
	feedback := api.Group("/feedback", requireAuth)
	{
		feedback.GET("/:student_id", ownershipGate, handlers.Feedback.ListByStudent)
		feedback.POST("", staffOnly, handlers.Feedback.Create)
	}

	// ─── Subjects ──────────────────────────────────────────────────────
	subjects := api.Group("/subjects", requireAuth)
	{
		subjects.GET("", handlers.Subject.List)
		subjects.POST("", middleware.RequireAdmin(), handlers.Subject.Create)
		subjects.PUT("/:id", middleware.RequireAdmin(), handlers.Subject.Update)
		subjects.DELETE("/:id", middleware.RequireAdmin(), handlers.Subject.Delete)
	}

	return router
}
