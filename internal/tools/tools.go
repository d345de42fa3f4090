// Package tools implements the tool catalog of the script analysis
// adapter. Each handler validates its arguments, calls exactly one backend
// operation, and renders a caller-facing text summary. Failures of any
// kind become IsError results; nothing propagates past a handler.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scriptparse/script-mcp/internal/client"
	"github.com/scriptparse/script-mcp/internal/errortypes"
	"github.com/scriptparse/script-mcp/internal/models"
)

// ScriptTools holds the backend client used by all tool handlers.
type ScriptTools struct {
	Client *client.Client
}

// --- Input types ---

type CreateProjectInput struct {
	Name        string `json:"name" jsonschema:"Project name"`
	Description string `json:"description,omitempty" jsonschema:"Optional project description"`
}

type GetProjectInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"Project ID"`
}

type ParseContentInput struct {
	ProjectID int64       `json:"project_id" jsonschema:"Project ID"`
	TagType   string      `json:"tag_type" jsonschema:"Tag type to classify under (e.g. character, scene, prop, plot, dialogue, action)"`
	Items     []ItemInput `json:"items" jsonschema:"Extracted items to store"`
}

type ItemInput struct {
	Content  string         `json:"content" jsonschema:"Extracted source content"`
	Summary  string         `json:"summary,omitempty" jsonschema:"Optional short summary of the content"`
	Metadata map[string]any `json:"metadata,omitempty" jsonschema:"Optional metadata document, stored verbatim"`
}

type GetDataByTagInput struct {
	ProjectID int64  `json:"project_id" jsonschema:"Project ID"`
	TagType   string `json:"tag_type" jsonschema:"Tag type to fetch (e.g. character, scene, prop)"`
}

type DeleteProjectInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"ID of the project to delete"`
}

// --- Handlers ---

func (t *ScriptTools) CreateProject(ctx context.Context, _ *mcp.CallToolRequest, input CreateProjectInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return toolError("name is required"), nil, nil
	}

	p, err := t.Client.CreateProject(ctx, input.Name, input.Description)
	if err != nil {
		return toolFailure("create project", err), nil, nil
	}

	return toolText(fmt.Sprintf("Created script project %q (ID: %d)", p.Name, p.ID)), nil, nil
}

func (t *ScriptTools) ListProjects(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	projects, err := t.Client.ListProjects(ctx)
	if err != nil {
		return toolFailure("list projects", err), nil, nil
	}

	return toolText(formatProjectList(projects)), nil, nil
}

func (t *ScriptTools) GetProject(ctx context.Context, _ *mcp.CallToolRequest, input GetProjectInput) (*mcp.CallToolResult, any, error) {
	if input.ProjectID <= 0 {
		return toolError("project_id is required"), nil, nil
	}

	detail, err := t.Client.GetProject(ctx, input.ProjectID)
	if err != nil {
		return toolFailure("get project", err), nil, nil
	}

	return toolText(formatProjectDetail(detail)), nil, nil
}

func (t *ScriptTools) ParseContent(ctx context.Context, _ *mcp.CallToolRequest, input ParseContentInput) (*mcp.CallToolResult, any, error) {
	if input.ProjectID <= 0 {
		return toolError("project_id is required"), nil, nil
	}
	if input.TagType == "" {
		return toolError("tag_type is required"), nil, nil
	}
	if len(input.Items) == 0 {
		return toolError("items must be a non-empty list"), nil, nil
	}

	items := make([]models.NewItem, len(input.Items))
	for i, item := range input.Items {
		if item.Content == "" {
			return toolError("items[%d] is missing content", i), nil, nil
		}
		items[i] = models.NewItem{Content: item.Content, Summary: item.Summary}
		if item.Metadata != nil {
			metadata, err := json.Marshal(item.Metadata)
			if err != nil {
				return toolError("items[%d] metadata is not valid JSON: %v", i, err), nil, nil
			}
			items[i].Metadata = metadata
		}
	}

	result, err := t.Client.ParseContent(ctx, input.ProjectID, input.TagType, items)
	if err != nil {
		return toolFailure("store parsed content", err), nil, nil
	}

	return toolText(fmt.Sprintf("Stored %d %s item(s) in project %d.", result.Count, result.TagType, result.ProjectID)), nil, nil
}

func (t *ScriptTools) GetDataByTag(ctx context.Context, _ *mcp.CallToolRequest, input GetDataByTagInput) (*mcp.CallToolResult, any, error) {
	if input.ProjectID <= 0 {
		return toolError("project_id is required"), nil, nil
	}
	if input.TagType == "" {
		return toolError("tag_type is required"), nil, nil
	}

	data, err := t.Client.GetByTag(ctx, input.ProjectID, input.TagType)
	if err != nil {
		return toolFailure("get tag data", err), nil, nil
	}

	return toolText(formatTagData(data)), nil, nil
}

func (t *ScriptTools) ListTagTypes(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	tagTypes, err := t.Client.ListTagTypes(ctx)
	if err != nil {
		return toolFailure("list tag types", err), nil, nil
	}

	return toolText(formatTagTypes(tagTypes)), nil, nil
}

func (t *ScriptTools) DeleteProject(ctx context.Context, _ *mcp.CallToolRequest, input DeleteProjectInput) (*mcp.CallToolResult, any, error) {
	if input.ProjectID <= 0 {
		return toolError("project_id is required"), nil, nil
	}

	if err := t.Client.DeleteProject(ctx, input.ProjectID); err != nil {
		return toolFailure("delete project", err), nil, nil
	}

	return toolText(fmt.Sprintf("Deleted script project (ID: %d).", input.ProjectID)), nil, nil
}

// --- Helpers ---

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// toolFailure renders a backend error with its boundary-safe message.
func toolFailure(action string, err error) *mcp.CallToolResult {
	return toolError("Failed to %s: %s", action, errortypes.Message(err))
}
