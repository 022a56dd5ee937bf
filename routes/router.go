package routes

import (
	"net/http"

	"anima/internal/ratelimit"
	"anima/middlewares"
	"anima/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	AllowedOrigins []string
	Hub            *websocket.Hub
	AuthLimiter    ratelimit.Limiter
}

// SetupRouter builds the engine. Services must be initialised first.
func SetupRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestLogger())

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limiter := cfg.AuthLimiter
	if limiter == nil {
		limiter = ratelimit.NewMemoryLimiter(ratelimit.DefaultAuthConfig())
	}
	hub := cfg.Hub
	if hub == nil {
		hub = websocket.NewHub()
	}

	api := router.Group("/api")
	SetupAuthRoutes(api, limiter)
	api.GET("/ws", websocket.ProgressionWebSocketHandler(hub))

	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware())
	{
		SetupHabitRoutes(protected)
		SetupPetRoutes(protected)
		SetupShopRoutes(protected)
	}

	return router
}
