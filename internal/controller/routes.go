package controller

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"matelog-backend/internal/config"
	"matelog-backend/pkg/middleware"
	"matelog-backend/utilities"
)

// RegisterRoutes wires every HTTP endpoint under the configured base path.
func RegisterRoutes(r *gin.Engine, cfg *config.APIConfig,
	authController *AuthController,
	lessonController *LessonController,
	topicController *TopicController,
	trackingController *TrackingController,
	reportController *ReportController) {

	api := r.Group(cfg.Context.Path)

	loginLimiter := middleware.RateLimitMiddleware(
		rate.Limit(cfg.Authentication.LoginRatePerSec),
		cfg.Authentication.LoginBurst,
	)

	users := api.Group("/users")
	{
		users.POST("/register/", loginLimiter, authController.Register)
		users.POST("/login/", loginLimiter, authController.Login)
		users.POST("/refresh/", loginLimiter, authController.Refresh)
		users.GET("/choices/", authController.Choices)
	}

	// Screen activity can start before login, so these carry the optional
	// variant of the auth middleware.
	anonymous := api.Group("/tracking")
	anonymous.Use(utilities.OptionalAuthMiddleware())
	{
		anonymous.POST("/iniciar/", trackingController.StartActivity)
		anonymous.POST("/finalizar/", trackingController.EndActivity)
		anonymous.POST("/volver-contenido/", trackingController.RegisterReturn)
	}

	protected := api.Group("")
	protected.Use(utilities.AuthMiddleware())
	{
		protected.POST("/users/logout/", authController.Logout)
		protected.GET("/users/profile/", authController.Profile)

		protected.GET("/lecciones/", lessonController.GetLessons)
		protected.GET("/lecciones/:id/", lessonController.GetLesson)

		protected.GET("/temas/:id/", topicController.GetTopic)
		protected.POST("/temas/:id/finalizar/", topicController.FinalizeTopic)
		protected.POST("/temas/:id/reintentar/", topicController.RetryTopic)
		protected.POST("/temas/:id/volver/", topicController.ReturnToTopic)
		protected.GET("/temas/:id/intentos/", topicController.GetAttemptHistory)

		protected.POST("/ejercicios/validar/", topicController.ValidateAnswer)

		protected.POST("/tracking/sesion/iniciar/", trackingController.StartSession)
		protected.POST("/tracking/sesion/finalizar/", trackingController.EndSession)

		protected.GET("/reportes/progreso/", reportController.GetProgressReport)
	}
}
