package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scriptparse/script-mcp/internal/storage"
)

// NewRouter builds the HTTP binding of the script store.
func NewRouter(store *storage.Store, apiKey string, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(log), cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, response{Success: true, Data: gin.H{"status": "ok"}})
	})

	h := &Handler{store: store, log: log}
	scripts := r.Group("/api/scripts", APIKey(apiKey))
	scripts.POST("", h.createProject)
	scripts.GET("", h.listProjects)
	scripts.GET("/tag-types/list", h.listTagTypes)
	scripts.GET("/:id", h.getProject)
	scripts.POST("/:id/parse", h.parseContent)
	scripts.GET("/:id/tag/:tagType", h.getByTag)
	scripts.DELETE("/:id", h.deleteProject)

	return r
}
