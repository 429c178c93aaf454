package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mkarpenko/callbridge/internal/auth"
	"github.com/mkarpenko/callbridge/internal/config"
	"github.com/mkarpenko/callbridge/internal/core"
)

// NewServer builds the HTTP server: health check, token endpoints and
// the signaling WebSocket. Static assets, CORS and TLS termination are
// left to the reverse proxy in front.
func NewServer(hub *core.Hub, authService *auth.Service, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger)))

	if authService != nil {
		handlers := NewAPIHandlers(authService, logger)
		api := router.Group("/api")
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
		api.POST("/guest", handlers.GuestLogin)
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
