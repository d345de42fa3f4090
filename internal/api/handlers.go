package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scriptparse/script-mcp/internal/errortypes"
	"github.com/scriptparse/script-mcp/internal/models"
	"github.com/scriptparse/script-mcp/internal/storage"
)

// Handler serves the /api/scripts routes.
type Handler struct {
	store *storage.Store
	log   zerolog.Logger
}

// response is the envelope shared by every route: {success, data?,
// message?, error?}.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type createProjectReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) createProject(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "invalid request body"})
		return
	}

	p, err := h.store.CreateProject(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.fail(c, err, "failed to create project")
		return
	}
	c.JSON(http.StatusOK, response{Success: true, Data: p})
}

func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.store.ListProjects(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to list projects")
		return
	}
	c.JSON(http.StatusOK, response{Success: true, Data: projects})
}

func (h *Handler) getProject(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	detail, err := h.store.GetProject(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "failed to get project")
		return
	}
	c.JSON(http.StatusOK, response{Success: true, Data: detail})
}

type parseContentReq struct {
	TagType string           `json:"tag_type"`
	Items   []models.NewItem `json:"items"`
}

func (h *Handler) parseContent(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	var req parseContentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "tag_type and a list of items are required"})
		return
	}
	if req.TagType == "" || req.Items == nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "tag_type and a list of items are required"})
		return
	}

	count, err := h.store.Classify(c.Request.Context(), id, req.TagType, req.Items)
	if err != nil {
		h.fail(c, err, "failed to store parsed content")
		return
	}
	c.JSON(http.StatusOK, response{
		Success: true,
		Message: fmt.Sprintf("added %d %s item(s)", count, req.TagType),
		Data: gin.H{
			"project_id": id,
			"tag_type":   req.TagType,
			"count":      count,
		},
	})
}

func (h *Handler) getByTag(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	tagType := c.Param("tagType")

	items, err := h.store.GetByTag(c.Request.Context(), id, tagType)
	if err != nil {
		h.fail(c, err, "failed to get tag data")
		return
	}
	c.JSON(http.StatusOK, response{Success: true, Data: models.TagData{
		ProjectID: id,
		TagType:   tagType,
		Items:     items,
	}})
}

func (h *Handler) listTagTypes(c *gin.Context) {
	tagTypes, err := h.store.ListTagTypes(c.Request.Context())
	if err != nil {
		h.fail(c, err, "failed to list tag types")
		return
	}
	c.JSON(http.StatusOK, response{Success: true, Data: tagTypes})
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteProject(c.Request.Context(), id); err != nil {
		h.fail(c, err, "failed to delete project")
		return
	}
	c.JSON(http.StatusOK, response{Success: true, Message: "project deleted"})
}

func (h *Handler) projectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response{Success: false, Message: "invalid project id"})
		return 0, false
	}
	return id, true
}

// fail translates the error taxonomy into HTTP status codes. Unexpected
// errors are logged server-side and surfaced with the fallback message.
func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch errortypes.KindOf(err) {
	case errortypes.KindValidation:
		c.JSON(http.StatusBadRequest, response{Success: false, Message: errortypes.Message(err)})
	case errortypes.KindNotFound:
		c.JSON(http.StatusNotFound, response{Success: false, Message: errortypes.Message(err)})
	default:
		h.log.Error().
			Str("request_id", c.GetString("request_id")).
			Err(err).
			Msg(fallback)
		c.JSON(http.StatusInternalServerError, response{Success: false, Message: fallback, Error: err.Error()})
	}
}
