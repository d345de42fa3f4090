package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scriptparse/script-mcp/internal/client"
	"github.com/scriptparse/script-mcp/internal/tools"
)

// New creates the MCP server with the full script analysis tool catalog
// registered. The SDK derives each tool's argument schema from its input
// type and rejects unknown tool names and schema violations before a
// handler runs.
func New(backend *client.Client) *mcp.Server {
	st := &tools.ScriptTools{Client: backend}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "script-mcp",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_script_project",
		Description: "Create a new script analysis project",
	}, st.CreateProject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_script_projects",
		Description: "List all script projects with item counts and tag types in use",
	}, st.ListProjects)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_script_project",
		Description: "Get one script project with its parsed data grouped by tag type",
	}, st.GetProject)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "parse_script_content",
		Description: "Store extracted script content items under a tag type (character, scene, prop, plot, dialogue, action, or a new tag)",
	}, st.ParseContent)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_script_data_by_tag",
		Description: "Get a project's parsed data for one tag type",
	}, st.GetDataByTag)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_tag_types",
		Description: "List all available tag types with usage counts",
	}, st.ListTagTypes)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_script_project",
		Description: "Delete a script project and all of its parsed data (irreversible)",
	}, st.DeleteProject)

	return srv
}
