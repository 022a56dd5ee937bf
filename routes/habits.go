package routes

import (
	"anima/controllers"
	"anima/middlewares"

	"github.com/gin-gonic/gin"
)

func GetHabitsRouteHandler(c *gin.Context)          { controllers.GetHabits(c) }
func CreateHabitRouteHandler(c *gin.Context)        { controllers.CreateHabit(c) }
func CompleteHabitRouteHandler(c *gin.Context)      { controllers.CompleteHabit(c) }
func ResetHabitRouteHandler(c *gin.Context)         { controllers.ResetHabit(c) }
func DeleteHabitRouteHandler(c *gin.Context)        { controllers.DeleteHabit(c) }
func GetHabitHistoryRouteHandler(c *gin.Context)    { controllers.GetHabitHistory(c) }
func GetRecommendationsRouteHandler(c *gin.Context) { controllers.GetRecommendations(c) }

// SetupHabitRoutes mounts /habits. Every habit route settles the daily
// rollover first.
func SetupHabitRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	habits.Use(middlewares.DailyResetMiddleware())
	{
		habits.GET("", GetHabitsRouteHandler)
		habits.POST("", CreateHabitRouteHandler)
		habits.GET("/history", GetHabitHistoryRouteHandler)
		habits.GET("/recommendations", GetRecommendationsRouteHandler)
		habits.POST("/:id/complete", CompleteHabitRouteHandler)
		habits.POST("/:id/reset", ResetHabitRouteHandler)
		habits.DELETE("/:id", DeleteHabitRouteHandler)
	}
}
