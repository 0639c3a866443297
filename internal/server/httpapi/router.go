// Package httpapi exposes the account service over JSON/HTTP using gin.
//
// Every response is wrapped in the same envelope:
//
//	{"success": bool, "message": "...", "data": {...}}
//
// This package is the only place where service errors are mapped to HTTP
// status codes.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

// AccountService is the subset of services.AccountService used by handlers.
type AccountService interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Logout(ctx context.Context, token string) error
	VerifySession(ctx context.Context, token string) (*models.User, error)
	GetProfile(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, patch models.ProfilePatch) (*models.User, error)
}

type Options struct {
	// AllowedOrigins lists the browser origins allowed by CORS. Empty
	// disables CORS handling.
	AllowedOrigins []string
	// Now is used for the health timestamp. Defaults to time.Now.
	Now func() time.Time
}

type Handler struct {
	accounts AccountService
	logger   logging.Logger
	now      func() time.Time
}

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(accounts AccountService, logger logging.Logger, opts Options) *gin.Engine {
	h := &Handler{
		accounts: accounts,
		logger:   logger.With("module", "http"),
		now:      opts.Now,
	}
	if h.now == nil {
		h.now = time.Now
	}

	r := gin.New()
	r.Use(requestLogger(h.logger), recovery(h.logger))

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, MsgEndpointNotFound)
	})

	api := r.Group("/api")
	api.GET("/health", h.health)

	a := api.Group("/auth")
	a.POST("/register", h.register)
	a.POST("/login", h.login)

	protected := a.Group("")
	protected.Use(requireBearer(h.logger))
	protected.POST("/logout", h.logout)
	protected.GET("/verify", h.verify)
	protected.GET("/profile", h.getProfile)
	protected.PUT("/profile", h.updateProfile)

	return r
}
