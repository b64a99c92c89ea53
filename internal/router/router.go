package router

import (
	"github.com/Barrelito/pannben-75/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the gin engine, session middleware and routes.
func SetupRouter(gdb *gorm.DB, sessionSecret, uploadDir, uploadURL string) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("pannben_session", store))

	// Serve progress photos.
	r.Static(uploadURL, uploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := handler.NewAPI(gdb, uploadDir, uploadURL)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", api.Register)
		auth.POST("/login", api.Login)
		auth.POST("/logout", api.Logout)
	}

	authed := r.Group("/api")
	authed.Use(handler.AuthRequired())
	{
		authed.GET("/challenge/bootstrap", api.Bootstrap)
		authed.POST("/challenge/reset", api.Reset)

		authed.GET("/targets", api.GetTargets)
		authed.PUT("/profile/difficulty", api.SetDifficulty)
		authed.PUT("/profile/diet", api.SelectDiet)

		authed.GET("/logs", api.ListLogs)
		authed.GET("/logs/:date", api.GetLog)
		authed.POST("/logs/:date/checkin", api.CheckIn)
		authed.POST("/logs/:date/rules", api.ToggleRule)
		authed.PUT("/logs/:date/water", api.UpdateWater)
		authed.PUT("/logs/:date/planning", api.UpdatePlanning)
		authed.PUT("/logs/:date/hard-workout", api.MarkHardWorkout)
		authed.POST("/logs/:date/complete", api.CompleteDay)
		authed.POST("/logs/:date/bonus-workout", api.BonusWorkout)
		authed.POST("/logs/:date/photo", api.UploadProgressPhoto)

		authed.GET("/diets", api.ListDietPlans)
		authed.GET("/diets/:slug", api.GetDietPlan)
	}

	return r
}
