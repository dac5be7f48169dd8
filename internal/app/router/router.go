// Package router wires HTTP routes and middleware.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authhandler "contacts_backend/internal/feature/auth/transport/handler"
	contacthandler "contacts_backend/internal/feature/contacts/transport/handler"
	platformhandler "contacts_backend/internal/platform/http/handler"
	"contacts_backend/internal/platform/http/middleware"
	jwtmw "contacts_backend/internal/platform/jwt"
	"contacts_backend/internal/platform/metrics"
)

// NewRouter builds the gin engine. When m is nil, /metrics is not served.
// An empty corsOrigins allows every origin.
func NewRouter(
	log *zap.Logger,
	m *metrics.HTTPMetrics,
	corsOrigins []string,
	verifier jwtmw.Verifier,
	authHandler *authhandler.AuthHandler,
	contacts *contacthandler.ContactHandler,
) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log), middleware.CORS(corsOrigins))
	if m != nil {
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// Public routes
	r.GET("/", platformhandler.Root)
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)

	a := r.Group("/auth")
	{
		a.POST("/register", authHandler.Signup)
		a.POST("/login", authHandler.Login)
	}

	// Every contact route requires a valid bearer token.
	c := r.Group("/contacts")
	c.Use(jwtmw.AuthRequired(verifier, log))
	{
		c.GET("", contacts.List)
		c.POST("", contacts.Create)
		c.GET("/:id", contacts.Get)
		c.PUT("/:id", contacts.Update)
		c.DELETE("/:id", contacts.Delete)
	}

	return r
}
