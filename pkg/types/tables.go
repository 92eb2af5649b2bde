package types

// Table names used by the relational engine.
const (
	UsersTable    = "users"
	TasksTable    = "tasks"
	MediaTable    = "media"
	NotesTable    = "notes"
	SettingsTable = "settings"
	SyncInfoTable = "sync_info"
)

// SyncableTables lists the tables that carry per-row sync bookkeeping
// (sync_id and sync_status columns).
var SyncableTables = []string{
	TasksTable,
	MediaTable,
	NotesTable,
}
