package routes

import (
	"anima/controllers"
	"anima/internal/ratelimit"
	"anima/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRouteHandler(c *gin.Context) { controllers.Register(c) }
func LoginRouteHandler(c *gin.Context)    { controllers.Login(c) }
func GetMeRouteHandler(c *gin.Context)    { controllers.GetMe(c) }

// SetupAuthRoutes mounts the public register and login endpoints behind the
// per-IP limiter, and /auth/me behind the JWT check.
func SetupAuthRoutes(router *gin.RouterGroup, limiter ratelimit.Limiter) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", middlewares.RateLimit(limiter), RegisterRouteHandler)
		auth.POST("/login", middlewares.RateLimit(limiter), LoginRouteHandler)
		auth.GET("/me", middlewares.AuthMiddleware(), GetMeRouteHandler)
	}
}
