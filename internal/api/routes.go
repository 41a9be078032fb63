package api

import (
	"alcyxob/workout-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler into the gin engine. The auth routes are
// public; everything else sits behind the JWT middleware.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
	progressService service.ProgressService,
	clientURL string,
) {
	authHandler := NewAuthHandler(authService, clientURL)
	exerciseHandler := NewExerciseHandler(exerciseService)
	workoutHandler := NewWorkoutHandler(workoutService)
	progressHandler := NewProgressHandler(progressService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/google", authHandler.GoogleLogin)
			authGroup.GET("/google/callback", authHandler.GoogleCallback)
		}
	}

	protected := api.Group("")
	protected.Use(authMiddleware)
	{
		authGroup := protected.Group("/auth")
		{
			authGroup.GET("/me", authHandler.GetMe)
			authGroup.PUT("/updatedetails", authHandler.UpdateDetails)
			authGroup.PUT("/updatepassword", authHandler.UpdatePassword)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.PUT("/:id", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:id/media", exerciseHandler.RequestMediaUpload)
			exerciseGroup.GET("/:id/media/:type", exerciseHandler.GetMediaDownloadURL)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
			workoutGroup.PUT("/:id/complete", workoutHandler.ToggleComplete)
		}

		progressGroup := protected.Group("/progress")
		{
			progressGroup.GET("", progressHandler.ListProgress)
			progressGroup.POST("", progressHandler.CreateProgress)
			// Registered before /:id so "stats" is never parsed as an entry ID.
			progressGroup.GET("/stats", progressHandler.GetStats)
			progressGroup.GET("/:id", progressHandler.GetProgress)
			progressGroup.PUT("/:id", progressHandler.UpdateProgress)
			progressGroup.DELETE("/:id", progressHandler.DeleteProgress)
		}
	}
}
