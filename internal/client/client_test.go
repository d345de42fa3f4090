package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptparse/script-mcp/internal/errortypes"
	"github.com/scriptparse/script-mcp/internal/models"
)

func stubBackend(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, "", zerolog.Nop())
}

func TestCreateProjectDecodesData(t *testing.T) {
	c := stubBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/scripts", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hamlet", body["name"])

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"id": 7, "name": "Hamlet", "description": ""},
		})
	})

	p, err := c.CreateProject(context.Background(), "Hamlet", "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "Hamlet", p.Name)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		check   func(error) bool
	}{
		{"bad request", http.StatusBadRequest, "project name is required", errortypes.IsValidation},
		{"not found", http.StatusNotFound, "project 9 not found", errortypes.IsNotFound},
		{"server error", http.StatusInternalServerError, "failed to list projects", errortypes.IsOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := stubBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{"success": false, "message": tt.message})
			})

			_, err := c.ListProjects(context.Background())
			require.Error(t, err)
			assert.True(t, tt.check(err), "kind = %v", errortypes.KindOf(err))
			// The backend message crosses verbatim
			assert.Equal(t, tt.message, errortypes.Message(err))
		})
	}
}

func TestMalformedResponse(t *testing.T) {
	c := stubBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway timeout</html>"))
	})

	_, err := c.ListProjects(context.Background())
	require.Error(t, err)
	assert.True(t, errortypes.IsOperation(err))
}

func TestConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, "", zerolog.Nop())
	_, err := c.ListProjects(context.Background())
	require.Error(t, err)
	assert.True(t, errortypes.IsOperation(err))
}

func TestAPIKeyHeader(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "secret", zerolog.Nop())
	_, err := c.ListProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", gotKey)
}

func TestParseContentRequestShape(t *testing.T) {
	c := stubBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/scripts/3/parse", r.URL.Path)

		var body struct {
			TagType string           `json:"tag_type"`
			Items   []models.NewItem `json:"items"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "character", body.TagType)
		require.Len(t, body.Items, 1)
		assert.Equal(t, "Hamlet", body.Items[0].Content)
		assert.JSONEq(t, `{"a":1}`, string(body.Items[0].Metadata))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "added 1 character item(s)",
			"data":    map[string]any{"project_id": 3, "tag_type": "character", "count": 1},
		})
	})

	result, err := c.ParseContent(context.Background(), 3, "character", []models.NewItem{
		{Content: "Hamlet", Metadata: json.RawMessage(`{"a":1}`)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.ProjectID)
	assert.Equal(t, 1, result.Count)
}

func TestGetByTagEscapesTagName(t *testing.T) {
	c := stubBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/scripts/1/tag/stage%20direction", r.URL.EscapedPath())
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"project_id": 1, "tag_type": "stage direction", "items": []any{}},
		})
	})

	data, err := c.GetByTag(context.Background(), 1, "stage direction")
	require.NoError(t, err)
	assert.Equal(t, "stage direction", data.TagType)
	assert.Empty(t, data.Items)
}

func TestDeleteProjectNoData(t *testing.T) {
	c := stubBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "project deleted"})
	})

	require.NoError(t, c.DeleteProject(context.Background(), 4))
}
