package models

import "encoding/json"

// Project is a named container for one script's analysis results.
type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ProjectSummary is a project annotated with aggregates computed at query
// time: how many data items it owns and which tag types they use.
type ProjectSummary struct {
	Project
	DataCount int      `json:"data_count"`
	TagTypes  []string `json:"tag_types"`
}

// ProjectDetail is a project with all its data items grouped by tag type.
type ProjectDetail struct {
	Project
	DataByTag []TagGroup `json:"data_by_tag"`
}

// TagGroup holds the data items of one project that share a tag type.
type TagGroup struct {
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Items       []DataItem `json:"items"`
}

// TagType is a category label (character, scene, prop, ...) under which
// content items are classified. Name is the natural key.
type TagType struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// TagTypeUsage is a tag type annotated with the number of data items
// referencing it.
type TagTypeUsage struct {
	TagType
	UsageCount int `json:"usage_count"`
}

// DataItem is one piece of classified content. Metadata is an opaque JSON
// document: stored and returned verbatim, never interpreted.
type DataItem struct {
	ID        int64           `json:"id"`
	Content   string          `json:"content"`
	Summary   string          `json:"summary"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// NewItem is the caller-supplied shape for one item to classify.
type NewItem struct {
	Content  string          `json:"content"`
	Summary  string          `json:"summary,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// TagData is the result of fetching a project's items for one tag type.
type TagData struct {
	ProjectID int64      `json:"project_id"`
	TagType   string     `json:"tag_type"`
	Items     []DataItem `json:"items"`
}
