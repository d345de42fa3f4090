package storage

// Schema is the SQL schema for the script analysis database. Deleting a
// project or a tag type cascades to the data items referencing it.
const Schema = `
CREATE TABLE IF NOT EXISTS script_projects (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at  TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS tag_types (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    created_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS script_data (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id  INTEGER NOT NULL REFERENCES script_projects(id) ON DELETE CASCADE,
    tag_type_id INTEGER NOT NULL REFERENCES tag_types(id) ON DELETE CASCADE,
    content     TEXT NOT NULL,
    summary     TEXT NOT NULL DEFAULT '',
    metadata    TEXT NOT NULL DEFAULT '{}',
    created_at  TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_script_data_project ON script_data(project_id);
CREATE INDEX IF NOT EXISTS idx_script_data_tag_type ON script_data(tag_type_id);
`

// SeedTagTypes inserts the six default tag types. INSERT OR IGNORE keeps
// re-runs idempotent against the unique name constraint.
const SeedTagTypes = `
INSERT OR IGNORE INTO tag_types (name, description) VALUES
    ('character', 'Characters and roles in the script'),
    ('scene', 'Scenes and locations in the script'),
    ('prop', 'Props and objects in the script'),
    ('plot', 'Key plot points in the script'),
    ('dialogue', 'Notable dialogue fragments in the script'),
    ('action', 'Action descriptions in the script');
`
