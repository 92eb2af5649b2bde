// End-to-end lifecycle tests: session, planner entities, and sync.
package integration

import (
	"strings"
	"testing"
)

// login authenticates one of the seeded accounts and returns the user.
func login(t *testing.T, env *TestEnv, username, password string) User {
	t.Helper()
	result := env.MustRunSatchel("--json", "login", username, password)
	return ParseJSON[User](t, result.Stdout)
}

func TestLoginLogout(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunSatchel("init")

	user := login(t, env, "KARTHIK", "7013178749")
	if user.Name != "Karthik" {
		t.Errorf("user name = %q, want Karthik", user.Name)
	}

	whoami := env.MustRunSatchel("whoami")
	if !strings.Contains(whoami.Stdout, "KARTHIK") {
		t.Errorf("whoami = %q, want it to mention KARTHIK", whoami.Stdout)
	}

	env.MustRunSatchel("logout")
	result := env.RunSatchel("whoami")
	if result.ExitCode == 0 {
		t.Error("whoami should fail after logout")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunSatchel("init")

	result := env.RunSatchel("login", "KARTHIK", "wrong")
	if result.ExitCode == 0 {
		t.Error("expected non-zero exit for bad password")
	}
	if !strings.Contains(result.Stderr, "invalid username or password") {
		t.Errorf("stderr = %q, want credential error", result.Stderr)
	}
}

func TestTaskLifecycle(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunSatchel("init")
	login(t, env, "KARTHIK", "7013178749")

	const day = "2026-09-01"

	add := env.MustRunSatchel("--json", "task", "add", "Morning run", "--date", day, "--time", "07:00", "--priority", "high")
	task := ParseJSON[Task](t, add.Stdout)
	if task.ID == "" {
		t.Fatal("task ID not generated")
	}
	if task.Priority != "high" {
		t.Errorf("priority = %q, want high", task.Priority)
	}
	if task.SyncStatus != "local" {
		t.Errorf("sync status = %q, want local", task.SyncStatus)
	}

	listResult := env.MustRunSatchel("--json", "task", "list", "--date", day)
	tasks := ParseJSON[[]Task](t, listResult.Stdout)
	if len(tasks) != 1 {
		t.Fatalf("task count = %d, want 1", len(tasks))
	}

	env.MustRunSatchel("task", "done", task.ID)
	listResult = env.MustRunSatchel("--json", "task", "list", "--date", day)
	tasks = ParseJSON[[]Task](t, listResult.Stdout)
	if !tasks[0].Completed {
		t.Error("task not marked completed")
	}

	env.MustRunSatchel("task", "rm", task.ID)
	listResult = env.MustRunSatchel("--json", "task", "list", "--date", day)
	tasks = ParseJSON[[]Task](t, listResult.Stdout)
	if len(tasks) != 0 {
		t.Errorf("task count after delete = %d, want 0", len(tasks))
	}
}

func TestTasksSortedByTime(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunSatchel("init")
	login(t, env, "KARTHIK", "7013178749")

	const day = "2026-09-02"
	env.MustRunSatchel("task", "add", "Afternoon", "--date", day, "--time", "14:30")
	env.MustRunSatchel("task", "add", "Anytime", "--date", day)
	env.MustRunSatchel("task", "add", "Morning", "--date", day, "--time", "09:00")

	listResult := env.MustRunSatchel("--json", "task", "list", "--date", day)
	tasks := ParseJSON[[]Task](t, listResult.Stdout)
	if len(tasks) != 3 {
		t.Fatalf("task count = %d, want 3", len(tasks))
	}

	// Tasks without a time come first, the rest in time order.
	want := []string{"", "09:00", "14:30"}
	for i, w := range want {
		if tasks[i].Time != w {
			t.Errorf("tasks[%d].Time = %q, want %q", i, tasks[i].Time, w)
		}
	}
}

func TestNoteAndMediaLifecycle(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunSatchel("init")
	login(t, env, "KARTHIK", "7013178749")

	noteResult := env.MustRunSatchel("--json", "note", "add", "Groceries", "--content", "milk, eggs")
	note := ParseJSON[Note](t, noteResult.Stdout)
	if note.ID == "" {
		t.Fatal("note ID not generated")
	}

	mediaResult := env.MustRunSatchel("--json", "media", "add", "holiday.jpg",
		"--url", "blob://holiday", "--type", "image", "--source", "imported")
	item := ParseJSON[Media](t, mediaResult.Stdout)
	if item.Source != "imported" {
		t.Errorf("media source = %q, want imported", item.Source)
	}

	listResult := env.MustRunSatchel("--json", "media", "list", "--type", "video")
	videos := ParseJSON[[]Media](t, listResult.Stdout)
	if len(videos) != 0 {
		t.Errorf("video count = %d, want 0", len(videos))
	}

	env.MustRunSatchel("note", "rm", note.ID)
	env.MustRunSatchel("media", "rm", item.ID)
}

func TestSettingsRoundTrip(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunSatchel("init")
	login(t, env, "KARTHIK", "7013178749")

	env.MustRunSatchel("setting", "set", "notifications", "on")
	env.MustRunSatchel("setting", "set", "notifications", "off")

	result := env.MustRunSatchel("setting", "get", "notifications")
	if got := strings.TrimSpace(result.Stdout); got != "off" {
		t.Errorf("setting value = %q, want off", got)
	}
}

func TestSyncPass(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunSatchel("init")
	login(t, env, "KARTHIK", "7013178749")

	env.MustRunSatchel("task", "add", "Dirty one", "--date", "2026-09-03")
	env.MustRunSatchel("task", "add", "Dirty two", "--date", "2026-09-03")
	env.MustRunSatchel("note", "add", "Dirty note")

	syncResult := env.MustRunSatchel("--json", "sync", "now")
	result := ParseJSON[SyncResult](t, syncResult.Stdout)
	if !result.Success {
		t.Fatal("sync pass did not succeed")
	}
	if result.SyncedItems.Tasks != 2 || result.SyncedItems.Notes != 1 || result.SyncedItems.Media != 0 {
		t.Errorf("synced counts = %+v, want 2 tasks, 1 note, 0 media", result.SyncedItems)
	}
	if result.Token == "" {
		t.Error("sync token not issued")
	}

	// A second pass has nothing left to reconcile.
	syncResult = env.MustRunSatchel("--json", "sync", "now")
	result = ParseJSON[SyncResult](t, syncResult.Stdout)
	if result.SyncedItems.Tasks != 0 || result.SyncedItems.Notes != 0 {
		t.Errorf("second pass counts = %+v, want all zero", result.SyncedItems)
	}
}

func TestSyncEnableDisable(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunSatchel("init")
	login(t, env, "KARTHIK", "7013178749")

	status := env.MustRunSatchel("sync", "status")
	if !strings.Contains(status.Stdout, "Enabled:      false") {
		t.Errorf("status = %q, want sync disabled by default", status.Stdout)
	}

	env.MustRunSatchel("sync", "on")
	status = env.MustRunSatchel("sync", "status")
	if !strings.Contains(status.Stdout, "Enabled:      true") {
		t.Errorf("status = %q, want sync enabled", status.Stdout)
	}

	env.MustRunSatchel("sync", "off")
	status = env.MustRunSatchel("sync", "status")
	if !strings.Contains(status.Stdout, "Enabled:      false") {
		t.Errorf("status = %q, want sync disabled", status.Stdout)
	}
}

func TestDataSurvivesRestart(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRunSatchel("init")
	login(t, env, "KARTHIK", "7013178749")

	env.MustRunSatchel("task", "add", "Persistent", "--date", "2026-09-04")

	// Every invocation restores the database from the persisted image, so a
	// fresh process listing the same day sees the row.
	listResult := env.MustRunSatchel("--json", "task", "list", "--date", "2026-09-04")
	tasks := ParseJSON[[]Task](t, listResult.Stdout)
	if len(tasks) != 1 || tasks[0].Title != "Persistent" {
		t.Errorf("tasks after restart = %+v, want the Persistent task", tasks)
	}
}
