package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"autojobber-backend/internal/applications"
	"autojobber-backend/internal/preferences"
	"autojobber-backend/internal/ratings"
	"autojobber-backend/internal/resumes"
	"autojobber-backend/internal/shared/config"
	"autojobber-backend/internal/shared/metrics"
	"autojobber-backend/internal/shared/server/middleware"
	"autojobber-backend/internal/shared/server/respond"
	"autojobber-backend/internal/users"
)

const uploadRateGroup = "UPLOAD"

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	Config              config.Config
	DB                  *sql.DB
	UsersHandler        *users.Handler
	ResumesHandler      *resumes.Handler
	PreferencesHandler  *preferences.Handler
	RatingsHandler      *ratings.Handler
	ApplicationsHandler *applications.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", healthHandler(deps.DB))
	api.GET("/metrics", metrics.Handler())

	authed := api.Group("")
	authed.Use(
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				uploadRateGroup: {Rate: 0.5, Burst: 10},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/resumes" {
					return uploadRateGroup
				}
				return ""
			},
		}),
	)

	deps.UsersHandler.RegisterRoutes(authed)
	deps.ResumesHandler.RegisterRoutes(authed)
	deps.PreferencesHandler.RegisterRoutes(authed)
	deps.RatingsHandler.RegisterRoutes(authed)
	deps.ApplicationsHandler.RegisterRoutes(authed)

	return r
}

func healthHandler(sqlDB *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := gin.H{"ok": true, "db": "disabled"}
		if sqlDB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := sqlDB.PingContext(ctx); err != nil {
				respond.JSON(c, http.StatusServiceUnavailable, gin.H{"ok": false, "db": "down"})
				return
			}
			payload["db"] = "up"
		}
		respond.OK(c, payload)
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
