package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "github.com/JOULifestyle/Contact-Management-App/internal/auth"
	"github.com/JOULifestyle/Contact-Management-App/internal/contacts"
	"github.com/JOULifestyle/Contact-Management-App/internal/importer"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/auth"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/config"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/metrics"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/server/middleware"
	"github.com/JOULifestyle/Contact-Management-App/internal/shared/server/respond"
	"github.com/JOULifestyle/Contact-Management-App/internal/users"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Config          config.Config
	Tokens          *auth.Tokens
	UsersHandler    *users.Handler
	ContactsHandler *contacts.Handler
	ImportHandler   *importer.Handler
	GoogleAuth      *googleauth.GoogleService
}

// authRateRule throttles credential endpoints per client IP.
var authRateRule = middleware.RateLimitRule{Rate: 1, Burst: 10}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Tokens),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	limited := api.Group("")
	limited.Use(middleware.RateLimit(middleware.NewRateLimiter(nil), authRateRule))
	deps.UsersHandler.RegisterRoutes(limited)

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	deps.ContactsHandler.RegisterRoutes(api)
	deps.ImportHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
