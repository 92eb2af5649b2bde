package store

// Schema DDL for all tables. Executed only when no persisted database image
// exists; a restored image already carries the schema.
const (
	createUsers = `CREATE TABLE users (
    id TEXT PRIMARY KEY,
    username TEXT UNIQUE NOT NULL,
    password TEXT NOT NULL,
    name TEXT,
    email TEXT,
    avatar TEXT,
    theme TEXT NOT NULL DEFAULT 'dark-gold',
    created_at TEXT NOT NULL,
    last_login TEXT,
    sync_id TEXT UNIQUE
);`

	createTasks = `CREATE TABLE tasks (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    title TEXT NOT NULL,
    time TEXT,
    priority TEXT NOT NULL DEFAULT 'medium',
    date TEXT NOT NULL,
    completed INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    sync_id TEXT UNIQUE,
    sync_status TEXT NOT NULL DEFAULT 'local',
    FOREIGN KEY (user_id) REFERENCES users (id)
);`

	createMedia = `CREATE TABLE media (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    url TEXT NOT NULL,
    type TEXT NOT NULL,
    size INTEGER NOT NULL DEFAULT 0,
    source TEXT NOT NULL DEFAULT 'camera',
    created_at TEXT NOT NULL,
    sync_id TEXT UNIQUE,
    sync_status TEXT NOT NULL DEFAULT 'local',
    FOREIGN KEY (user_id) REFERENCES users (id)
);`

	createNotes = `CREATE TABLE notes (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    sync_id TEXT UNIQUE,
    sync_status TEXT NOT NULL DEFAULT 'local',
    FOREIGN KEY (user_id) REFERENCES users (id)
);`

	createSettings = `CREATE TABLE settings (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users (id),
    UNIQUE (user_id, key)
);`

	createSyncInfo = `CREATE TABLE sync_info (
    user_id TEXT PRIMARY KEY,
    last_sync TEXT NOT NULL,
    sync_token TEXT,
    FOREIGN KEY (user_id) REFERENCES users (id)
);`
)

// Index DDL for common queries.
const (
	idxTasksUser       = `CREATE INDEX idx_tasks_user_id ON tasks(user_id);`
	idxTasksUserDate   = `CREATE INDEX idx_tasks_user_date ON tasks(user_id, date);`
	idxTasksSyncStatus = `CREATE INDEX idx_tasks_sync_status ON tasks(user_id, sync_status);`
	idxMediaUser       = `CREATE INDEX idx_media_user_id ON media(user_id);`
	idxMediaSyncStatus = `CREATE INDEX idx_media_sync_status ON media(user_id, sync_status);`
	idxNotesUser       = `CREATE INDEX idx_notes_user_id ON notes(user_id);`
	idxNotesSyncStatus = `CREATE INDEX idx_notes_sync_status ON notes(user_id, sync_status);`
	idxSettingsUserKey = `CREATE INDEX idx_settings_user_key ON settings(user_id, key);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createUsers,
	createTasks,
	createMedia,
	createNotes,
	createSettings,
	createSyncInfo,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTasksUser,
	idxTasksUserDate,
	idxTasksSyncStatus,
	idxMediaUser,
	idxMediaSyncStatus,
	idxNotesUser,
	idxNotesSyncStatus,
	idxSettingsUserKey,
}
