package http

import (
	"task_tracker/internal/config"
	"task_tracker/internal/http/handlers"
	"task_tracker/internal/http/middleware"
	"task_tracker/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps bundles what the router needs from main.
type Deps struct {
	Handler *handlers.Handler
	Health  *handlers.HealthHandler
	Hub     *ws.Hub
	Tokens  middleware.TokenParser
}

// NewRouter builds the engine with the global middleware chain and all routes.
func NewRouter(cfg *config.Config, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics(), middleware.CORS(cfg.CORSOrigins))
	RegisterRoutes(r, cfg, d)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, d Deps) {
	h := d.Handler

	r.GET("/", h.Root)

	// Health checks (no rate limiting)
	r.GET("/health", d.Health.Health)
	r.GET("/healthz", d.Health.Liveness)
	r.GET("/readyz", d.Health.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit("api", cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h, cfg, d.Tokens)

	// Legacy /api routes kept for older clients
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit("api", cfg.APIRateLimit, cfg.APIRateWindow))
	api.GET("/health", d.Health.Health)
	registerAPIRoutes(api, h, cfg, d.Tokens)

	// Live task events; upgrades are budgeted like sign-ins
	if d.Hub != nil {
		r.GET("/ws",
			middleware.RedisRateLimit("ws", cfg.AuthRateLimit, cfg.AuthRateWindow),
			ws.HandleWS(d.Hub, d.Tokens, cfg.CORSOrigins),
		)
	}
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config, tokens middleware.TokenParser) {
	authRL := middleware.RedisRateLimit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow)
	jwt := middleware.JWT(tokens)

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authRL, h.Signup)
		auth.POST("/signin", authRL, h.Signin)
		auth.POST("/logout", jwt, h.Logout)
	}

	// Current user
	api.GET("/me", jwt, h.Me)
	api.GET("/me/activity", jwt, h.Activity)

	// Tasks
	userRL := middleware.UserRateLimit(cfg.APIRateLimit, cfg.APIRateWindow)
	tasks := api.Group("/tasks")
	tasks.Use(jwt, userRL)
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("", h.ListTasks)
		tasks.GET("/stats", h.TaskStats)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.PATCH("/:id/complete", h.CompleteTask)
	}
}
