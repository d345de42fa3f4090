package tools

import (
	"fmt"
	"strings"

	"github.com/scriptparse/script-mcp/internal/models"
)

// Presentation limits for text summaries. Truncation is display-only; the
// stored data is never shortened.
const (
	sampleItemsPerGroup = 3
	shortContentLimit   = 50
	longContentLimit    = 100
)

func formatProjectList(projects []models.ProjectSummary) string {
	if len(projects) == 0 {
		return "No script projects yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d script project(s):\n", len(projects))
	for _, p := range projects {
		description := p.Description
		if description == "" {
			description = "none"
		}
		tagTypes := "none"
		if len(p.TagTypes) > 0 {
			tagTypes = strings.Join(p.TagTypes, ", ")
		}
		fmt.Fprintf(&b, "\n[ID: %d] %s\n  Description: %s\n  Items: %d\n  Tag types: %s\n",
			p.ID, p.Name, description, p.DataCount, tagTypes)
	}
	return b.String()
}

func formatProjectDetail(detail *models.ProjectDetail) string {
	var b strings.Builder
	description := detail.Description
	if description == "" {
		description = "none"
	}
	fmt.Fprintf(&b, "Project: %s\nDescription: %s\nCreated: %s\n\n", detail.Name, description, detail.CreatedAt)

	if len(detail.DataByTag) == 0 {
		b.WriteString("No parsed data yet.")
		return b.String()
	}

	b.WriteString("Parsed data by tag:\n")
	for _, group := range detail.DataByTag {
		fmt.Fprintf(&b, "\n%s (%d item(s)):\n", group.Type, len(group.Items))
		for i, item := range group.Items {
			if i == sampleItemsPerGroup {
				fmt.Fprintf(&b, "  ... and %d more\n", len(group.Items)-sampleItemsPerGroup)
				break
			}
			text := item.Summary
			if text == "" {
				text = truncate(item.Content, shortContentLimit)
			}
			fmt.Fprintf(&b, "  %d. %s\n", i+1, text)
		}
	}
	return b.String()
}

func formatTagData(data *models.TagData) string {
	if len(data.Items) == 0 {
		return fmt.Sprintf("Project %d has no %q data yet.", data.ProjectID, data.TagType)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s data (%d item(s)):\n", data.TagType, len(data.Items))
	for i, item := range data.Items {
		text := item.Summary
		if text == "" {
			text = item.Content
		}
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, text)
		if item.Summary != "" && item.Content != item.Summary {
			fmt.Fprintf(&b, "   Original: %s\n", truncate(item.Content, longContentLimit))
		}
		fmt.Fprintf(&b, "   Created: %s\n", item.CreatedAt)
	}
	return b.String()
}

func formatTagTypes(tagTypes []models.TagTypeUsage) string {
	var b strings.Builder
	b.WriteString("Available tag types:\n")
	for _, tt := range tagTypes {
		description := tt.Description
		if description == "" {
			description = "no description"
		}
		fmt.Fprintf(&b, "\n- %s: %s (used %d time(s))", tt.Name, description, tt.UsageCount)
	}
	return b.String()
}

// truncate shortens s for display, appending an ellipsis. Counts runes so
// multi-byte content is never split.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
