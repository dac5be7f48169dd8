// Package handler provides HTTP handlers for platform level endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootMessage is the plain text body served on GET /.
const RootMessage = "Contacts API running"

// Root answers GET / with a plain text banner.
func Root(c *gin.Context) {
	c.String(http.StatusOK, RootMessage)
}

// Health handles /healthz. Responses are never cached.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
