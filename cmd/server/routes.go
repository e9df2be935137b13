package main

import (
	"dental-voice-agent/internal/httpapi"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// JSON API
	api := r.Group("/api")
	{
		api.POST("/calls", h.CreateCall)
		api.GET("/calls", h.ListCalls)
		api.GET("/calls/:call_id", h.GetCall)
	}

	// Server-rendered views
	r.GET("/", h.Index)
	r.GET("/calls", h.CallsPage)
	r.GET("/calls/:call_id", h.CallDetailsPage)
	r.POST("/create_call", h.CreateCallForm)
}
