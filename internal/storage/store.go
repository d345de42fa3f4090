package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/scriptparse/script-mcp/internal/errortypes"
	"github.com/scriptparse/script-mcp/internal/models"
)

// Store is the relational gateway for projects, tag types, and script data.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dbPath, runs migrations, and
// seeds the default tag types.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	// _txlock=immediate: transactions take the write lock up front, so
	// concurrent classifies queue on busy_timeout instead of failing on
	// the read-to-write upgrade.
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_txlock=immediate&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	if _, err := db.Exec(SeedTagTypes); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed tag types: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateProject inserts a new project and returns it with generated id and
// timestamps.
func (s *Store) CreateProject(ctx context.Context, name, description string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errortypes.Validation("project name is required")
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO script_projects (name, description) VALUES (?, ?)`,
		name, description,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("project id: %w", err)
	}

	return s.getProjectRow(ctx, id)
}

// ListProjects returns all projects, newest first, each annotated with its
// data item count and the distinct tag type names in use.
func (s *Store) ListProjects(ctx context.Context) ([]models.ProjectSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sp.id, sp.name, sp.description, sp.created_at, sp.updated_at,
		       COUNT(sd.id), GROUP_CONCAT(DISTINCT tt.name)
		FROM script_projects sp
		LEFT JOIN script_data sd ON sd.project_id = sp.id
		LEFT JOIN tag_types tt ON tt.id = sd.tag_type_id
		GROUP BY sp.id
		ORDER BY sp.created_at DESC, sp.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.ProjectSummary{}
	for rows.Next() {
		var p models.ProjectSummary
		var tagNames sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt, &p.DataCount, &tagNames); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.TagTypes = []string{}
		if tagNames.Valid && tagNames.String != "" {
			p.TagTypes = strings.Split(tagNames.String, ",")
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject returns one project with its data items grouped by tag type.
// Groups are ordered by tag type name, items newest first within a group.
func (s *Store) GetProject(ctx context.Context, id int64) (*models.ProjectDetail, error) {
	proj, err := s.getProjectRow(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT sd.id, sd.content, sd.summary, sd.metadata, sd.created_at, sd.updated_at,
		       tt.name, tt.description
		FROM script_data sd
		JOIN tag_types tt ON tt.id = sd.tag_type_id
		WHERE sd.project_id = ?
		ORDER BY tt.name, sd.created_at DESC, sd.id DESC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query project data: %w", err)
	}
	defer rows.Close()

	detail := &models.ProjectDetail{Project: *proj, DataByTag: []models.TagGroup{}}
	for rows.Next() {
		var item models.DataItem
		var metadata, tagName, tagDescription string
		if err := rows.Scan(&item.ID, &item.Content, &item.Summary, &metadata, &item.CreatedAt, &item.UpdatedAt, &tagName, &tagDescription); err != nil {
			return nil, fmt.Errorf("scan data item: %w", err)
		}
		item.Metadata = json.RawMessage(metadata)

		n := len(detail.DataByTag)
		if n == 0 || detail.DataByTag[n-1].Type != tagName {
			detail.DataByTag = append(detail.DataByTag, models.TagGroup{
				Type:        tagName,
				Description: tagDescription,
				Items:       []models.DataItem{},
			})
			n++
		}
		detail.DataByTag[n-1].Items = append(detail.DataByTag[n-1].Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return detail, nil
}

// Classify resolves tagType to an id, creating the tag type row when it
// does not exist yet, and inserts all items in a single transaction. The
// insert is all-or-nothing: if any item fails, none are committed.
func (s *Store) Classify(ctx context.Context, projectID int64, tagType string, items []models.NewItem) (int, error) {
	if strings.TrimSpace(tagType) == "" {
		return 0, errortypes.Validation("tag_type is required")
	}
	if len(items) == 0 {
		return 0, errortypes.Validation("items must be a non-empty list")
	}
	for i, item := range items {
		if item.Content == "" {
			return 0, errortypes.Validation("items[%d] is missing content", i)
		}
		if len(item.Metadata) > 0 && !json.Valid(item.Metadata) {
			return 0, errortypes.Validation("items[%d] metadata is not valid JSON", i)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM script_projects WHERE id = ?`, projectID).Scan(&exists)
	if err == sql.ErrNoRows {
		return 0, errortypes.NotFound("project %d not found", projectID)
	}
	if err != nil {
		return 0, fmt.Errorf("lookup project: %w", err)
	}

	// Race-safe get-or-create: the unique constraint absorbs concurrent
	// first use of the same name, the select picks up whichever row won.
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO tag_types (name) VALUES (?)`, tagType); err != nil {
		return 0, fmt.Errorf("create tag type: %w", err)
	}
	var tagTypeID int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM tag_types WHERE name = ?`, tagType).Scan(&tagTypeID); err != nil {
		return 0, fmt.Errorf("lookup tag type: %w", err)
	}

	for _, item := range items {
		metadata := "{}"
		if len(item.Metadata) > 0 {
			metadata = string(item.Metadata)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO script_data (project_id, tag_type_id, content, summary, metadata) VALUES (?, ?, ?, ?, ?)`,
			projectID, tagTypeID, item.Content, item.Summary, metadata,
		)
		if err != nil {
			return 0, fmt.Errorf("insert data item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(items), nil
}

// GetByTag returns the project's items for one tag type, newest first. A
// combination with no matching rows yields an empty slice, not an error;
// an unknown tag name is indistinguishable from a tag with no items.
func (s *Store) GetByTag(ctx context.Context, projectID int64, tagType string) ([]models.DataItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sd.id, sd.content, sd.summary, sd.metadata, sd.created_at, sd.updated_at
		FROM script_data sd
		JOIN tag_types tt ON tt.id = sd.tag_type_id
		WHERE sd.project_id = ? AND tt.name = ?
		ORDER BY sd.created_at DESC, sd.id DESC`,
		projectID, tagType,
	)
	if err != nil {
		return nil, fmt.Errorf("query tag data: %w", err)
	}
	defer rows.Close()

	items := []models.DataItem{}
	for rows.Next() {
		var item models.DataItem
		var metadata string
		if err := rows.Scan(&item.ID, &item.Content, &item.Summary, &metadata, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan data item: %w", err)
		}
		item.Metadata = json.RawMessage(metadata)
		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteProject removes a project; the cascade removes its data items.
// Deleting an id that no longer exists is a NotFound, not a no-op.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM script_projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return errortypes.NotFound("project %d not found", id)
	}
	return nil
}

// ListTagTypes returns all tag types ordered by name, each annotated with
// the number of data items referencing it.
func (s *Store) ListTagTypes(ctx context.Context) ([]models.TagTypeUsage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tt.id, tt.name, tt.description, tt.created_at, COUNT(sd.id)
		FROM tag_types tt
		LEFT JOIN script_data sd ON sd.tag_type_id = tt.id
		GROUP BY tt.id
		ORDER BY tt.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list tag types: %w", err)
	}
	defer rows.Close()

	tagTypes := []models.TagTypeUsage{}
	for rows.Next() {
		var t models.TagTypeUsage
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UsageCount); err != nil {
			return nil, fmt.Errorf("scan tag type: %w", err)
		}
		tagTypes = append(tagTypes, t)
	}
	return tagTypes, rows.Err()
}

func (s *Store) getProjectRow(ctx context.Context, id int64) (*models.Project, error) {
	var p models.Project
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM script_projects WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errortypes.NotFound("project %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &p, nil
}
