package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS profile (
	id                       INTEGER PRIMARY KEY CHECK(id = 1),
	user_id                  TEXT NOT NULL DEFAULT '',
	email                    TEXT NOT NULL DEFAULT '',
	full_name                TEXT NOT NULL DEFAULT '',
	timezone                 TEXT NOT NULL DEFAULT '',
	primary_goal             TEXT NOT NULL DEFAULT '',
	secondary_goals          TEXT NOT NULL DEFAULT '',
	industry                 TEXT NOT NULL DEFAULT '',
	skills_focus             TEXT NOT NULL DEFAULT '',
	default_learning_minutes INTEGER,
	updated_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS availability (
	id                INTEGER PRIMARY KEY CHECK(id = 1),
	day               TEXT NOT NULL,
	minutes_available INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id                TEXT PRIMARY KEY,
	position          INTEGER NOT NULL,
	title             TEXT NOT NULL,
	notes             TEXT NOT NULL DEFAULT '',
	scheduled_date    TEXT NOT NULL,
	estimated_minutes INTEGER,
	status            TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'complete', 'deferred')),
	source            TEXT NOT NULL DEFAULT 'manual' CHECK(source IN ('manual', 'pdf')),
	pdf_ingestion_id  TEXT,
	confirmed         INTEGER NOT NULL DEFAULT 0 CHECK(confirmed IN (0, 1))
);

CREATE TABLE IF NOT EXISTS chat_messages (
	id         TEXT PRIMARY KEY,
	position   INTEGER NOT NULL,
	role       TEXT NOT NULL CHECK(role IN ('user', 'assistant')),
	content    TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS recommendation_sets (
	id             INTEGER PRIMARY KEY CHECK(id = 1),
	scheduled_date TEXT NOT NULL,
	goal_statement TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS recommendation_todos (
	position          INTEGER PRIMARY KEY,
	title             TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	category          TEXT NOT NULL DEFAULT '',
	estimated_minutes INTEGER NOT NULL DEFAULT 0,
	resource_url      TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position);
CREATE INDEX IF NOT EXISTS idx_chat_messages_position ON chat_messages(position);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_tasks_scheduled_date ON tasks(scheduled_date);

CREATE TABLE IF NOT EXISTS imported_attachments (
	message_id  TEXT NOT NULL,
	filename    TEXT NOT NULL,
	imported_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (message_id, filename)
);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
