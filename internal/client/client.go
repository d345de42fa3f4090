// Package client is a typed HTTP client for the script analysis backend.
// It decodes the backend's {success, data, message, error} envelope and
// translates HTTP failures into the shared error taxonomy.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/scriptparse/script-mcp/internal/errortypes"
	"github.com/scriptparse/script-mcp/internal/models"
)

// Client issues calls against the backend API. An optional API key is
// forwarded as X-API-Key on every request. No timeout is imposed here:
// callers cancel through the context.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	log     zerolog.Logger
}

// New creates a client for the backend at baseURL.
func New(baseURL, apiKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{},
		log:     log,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// do performs one backend call and unmarshals the envelope's data field
// into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errortypes.Operation(err, "encode request")
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	endpoint := c.baseURL + "/api/scripts" + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return errortypes.Operation(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	c.log.Debug().Str("method", method).Str("url", endpoint).Msg("backend call")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errortypes.Operation(err, "backend request failed")
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errortypes.Operation(err, fmt.Sprintf("malformed backend response (status %d)", resp.StatusCode))
	}

	if resp.StatusCode >= 400 || !env.Success {
		message := env.Message
		if message == "" {
			message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
		}
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return errortypes.Validation("%s", message)
		case http.StatusNotFound:
			return errortypes.NotFound("%s", message)
		default:
			return &errortypes.Error{Kind: errortypes.KindOperation, Message: message}
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errortypes.Operation(err, "decode backend response")
		}
	}
	return nil
}

// CreateProject creates a project and returns it.
func (c *Client) CreateProject(ctx context.Context, name, description string) (*models.Project, error) {
	var p models.Project
	err := c.do(ctx, http.MethodPost, "", map[string]string{
		"name":        name,
		"description": description,
	}, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProjects returns all projects with their aggregates.
func (c *Client) ListProjects(ctx context.Context) ([]models.ProjectSummary, error) {
	var projects []models.ProjectSummary
	if err := c.do(ctx, http.MethodGet, "", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns one project with its data grouped by tag type.
func (c *Client) GetProject(ctx context.Context, id int64) (*models.ProjectDetail, error) {
	var detail models.ProjectDetail
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/%d", id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ParseResult reports what a parse call stored.
type ParseResult struct {
	ProjectID int64  `json:"project_id"`
	TagType   string `json:"tag_type"`
	Count     int    `json:"count"`
}

// ParseContent stores classified items under a tag type.
func (c *Client) ParseContent(ctx context.Context, id int64, tagType string, items []models.NewItem) (*ParseResult, error) {
	var result ParseResult
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/%d/parse", id), map[string]any{
		"tag_type": tagType,
		"items":    items,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByTag returns a project's items for one tag type.
func (c *Client) GetByTag(ctx context.Context, id int64, tagType string) (*models.TagData, error) {
	var data models.TagData
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/%d/tag/%s", id, url.PathEscape(tagType)), nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ListTagTypes returns all tag types with usage counts.
func (c *Client) ListTagTypes(ctx context.Context) ([]models.TagTypeUsage, error) {
	var tagTypes []models.TagTypeUsage
	if err := c.do(ctx, http.MethodGet, "/tag-types/list", nil, &tagTypes); err != nil {
		return nil, err
	}
	return tagTypes, nil
}

// DeleteProject deletes a project and everything it owns.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/%d", id), nil, nil)
}
