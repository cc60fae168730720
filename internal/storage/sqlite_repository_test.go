package storage

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sandeepkv93/taskjar/internal/model"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	return setupRepoWithDriver(t, DriverCGO)
}

func setupRepoWithDriver(t *testing.T, driver string) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "taskjar-test.db")
	repo, err := OpenSQLite(driver, dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleState() State {
	reminder := 30
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	last := model.Date{Year: 2026, Month: time.February, Day: 9}
	shown := time.Date(2026, 2, 9, 11, 30, 0, 0, time.UTC)
	st := DefaultState()
	st.Tasks = []model.Task{
		{
			ID: "task-1", Title: "Write schema", Description: "Design **storage** layout",
			Date: last, Time: model.Clock{Hour: 9, Minute: 15}, Priority: model.PriorityHigh,
			Effort: 80, EnergyLevel: 20, Reminder: &reminder, Place: "desk", Why: "ship it",
			Bucket: model.BucketGrowth, TaskType: model.TaskTypeLong, NightOnly: false,
			Emoji: "🧠", Image: "data:image/png;base64,AAAA", Completed: true, CreatedAt: created,
		},
		{
			ID: "task-2", Title: "Call mom", Date: last.AddDays(1), Time: model.Clock{Hour: 19},
			Priority: model.PriorityLow, Effort: 10, EnergyLevel: 90, NightOnly: true,
			Bucket: model.BucketFamily, CreatedAt: created.Add(time.Minute),
		},
	}
	st.User = User{Name: "Asha"}
	st.RewardPoints = 3
	st.StreakCount = 4
	st.LastCompletedDate = &last
	st.LastRewardDate = &last
	st.AdDisplayCount = 2
	st.LastAdShown = &shown
	st.LastAdDate = &last
	st.UserBehavior = Behavior{Productivity: 1, Study: 2, Finance: 3}
	return st
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	for _, driver := range []string{DriverCGO, DriverPureGo} {
		t.Run(driver, func(t *testing.T) {
			repo := setupRepoWithDriver(t, driver)
			want := sampleState()
			if err := repo.Save(t.Context(), want); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := repo.Load(t.Context())
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !reflect.DeepEqual(want, got) {
				t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
			}
		})
	}
}

func TestSQLiteLoadEmpty(t *testing.T) {
	repo := setupRepo(t)
	got, err := repo.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, DefaultState()) {
		t.Fatalf("expected default state, got %+v", got)
	}
}

func TestSQLiteSaveRemovesAbsentKeys(t *testing.T) {
	repo := setupRepo(t)
	st := sampleState()
	if err := repo.Save(t.Context(), st); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := repo.Value(t.Context(), KeyLastAdShown); err != nil {
		t.Fatalf("expected lastAdShown stored: %v", err)
	}

	st.LastAdShown = nil
	if err := repo.Save(t.Context(), st); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := repo.Value(t.Context(), KeyLastAdShown); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after removal, got %v", err)
	}
	if err := repo.Delete(t.Context(), KeyLastAdShown); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound deleting absent key, got %v", err)
	}
}

func TestSQLiteCorruptKeyFallsBack(t *testing.T) {
	repo := setupRepo(t)
	if err := repo.Save(t.Context(), sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := repo.db.ExecContext(t.Context(), `UPDATE kv SET value = '{not json' WHERE key = ?`, KeyTasks); err != nil {
		t.Fatalf("corrupt tasks: %v", err)
	}

	got, err := repo.Load(t.Context())
	if err == nil {
		t.Fatal("expected decode error for corrupt key")
	}
	if len(got.Tasks) != 0 {
		t.Fatalf("expected corrupt tasks to fall back to empty, got %d", len(got.Tasks))
	}
	if got.RewardPoints != 3 || got.User.Name != "Asha" {
		t.Fatalf("expected other keys to survive, got %+v", got)
	}
}

func TestSQLiteEntries(t *testing.T) {
	repo := setupRepo(t)
	fixed := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	if err := repo.Save(t.Context(), DefaultState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := repo.Entries(t.Context())
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 8 {
		t.Fatalf("expected 8 present keys, got %d", len(entries))
	}
	if entries[0].Key != KeyAdDisplayCount || !entries[0].UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	value, err := repo.Value(t.Context(), KeyCurrentUser)
	if err != nil || value != `{"name":"User"}` {
		t.Fatalf("unexpected currentUser value %q (%v)", value, err)
	}
}

func TestNewSQLiteRepositoryRejectsNil(t *testing.T) {
	var db *sqlx.DB
	if _, err := NewSQLiteRepository(db); err == nil {
		t.Fatal("expected error for nil db")
	}
}

func TestSQLiteBackupCopiesRows(t *testing.T) {
	repo := setupRepo(t)
	ctx := t.Context()

	where, err := repo.Backup(ctx)
	if err != nil || where != "" {
		t.Fatalf("backup of empty kv: where=%q err=%v", where, err)
	}

	if err := repo.Save(ctx, sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	want, err := repo.Value(ctx, KeyTasks)
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	where, err = repo.Backup(ctx)
	if err != nil || where == "" {
		t.Fatalf("backup: where=%q err=%v", where, err)
	}
	if err := repo.Save(ctx, DefaultState()); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	entries, err := repo.BackupEntries(ctx, strings.TrimPrefix(where, "kv_backup@"))
	if err != nil {
		t.Fatalf("backup entries: %v", err)
	}
	found := false
	for _, e := range entries {
		if e.Key == KeyTasks {
			found = true
			if e.Value != want {
				t.Fatalf("backed up tasks differ:\n got %s\nwant %s", e.Value, want)
			}
		}
	}
	if !found {
		t.Fatalf("tasks key missing from backup %v", entries)
	}
}
