package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFileRepositoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	repo := NewFileRepository(path)

	got, err := repo.Load(t.Context())
	if err != nil {
		t.Fatalf("load missing file: %v", err)
	}
	if !reflect.DeepEqual(got, DefaultState()) {
		t.Fatalf("expected default state for missing file, got %+v", got)
	}

	want := sampleState()
	if err := repo.Save(t.Context(), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, got %v", err)
	}
	got, err = repo.Load(t.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(raw), `"premiumExpiry"`) {
		t.Fatal("expected absent optional key to be omitted")
	}
}

func TestFileRepositoryCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := NewFileRepository(path).Load(t.Context())
	if err == nil {
		t.Fatal("expected parse error")
	}
	if len(got.Tasks) != 0 || got.User.Name != DefaultUserName {
		t.Fatalf("expected default state on corrupt file, got %+v", got)
	}

	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileRepository(path).Load(t.Context()); err != nil {
		t.Fatalf("expected empty file to load as default, got %v", err)
	}
}

func TestDecodeSkipsDuplicateIDs(t *testing.T) {
	task := `{"id":"x","title":"a","date":"2026-01-01","time":"09:00","priority":"low","createdAt":"2026-01-01T00:00:00Z"}`
	st, err := decodeState(map[string][]byte{
		KeyTasks:         []byte("[" + task + "," + task + "]"),
		KeyStreakCount:   []byte("2"),
		KeyPremiumAccess: []byte(`"yes"`),
	})
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
	if len(st.Tasks) != 1 || st.Tasks[0].ID != "x" || st.StreakCount != 2 || st.PremiumAccess {
		t.Fatalf("unexpected fallback state %+v", st)
	}
	if !strings.Contains(err.Error(), "duplicate task id") || !strings.Contains(err.Error(), KeyPremiumAccess) {
		t.Fatalf("expected both failures reported, got %v", err)
	}
}

func TestDecodeKeepsValidTaskRecords(t *testing.T) {
	good := `{"id":"%s","title":"ok","date":"2026-01-01","time":"09:00","priority":"low","createdAt":"2026-01-01T00:00:00Z"}`
	bad := `{"id":"bad","title":"too much","date":"2026-01-01","time":"09:00","priority":"low","effort":101,"createdAt":"2026-01-01T00:00:00Z"}`
	raw := "[" + fmt.Sprintf(good, "a") + "," + bad + "," + fmt.Sprintf(good, "b") + "]"

	st, err := decodeState(map[string][]byte{KeyTasks: []byte(raw)})
	if err == nil {
		t.Fatal("expected the rejected record to be reported")
	}
	if !strings.Contains(err.Error(), "tasks[1]") {
		t.Fatalf("expected record index in error, got %v", err)
	}
	if len(st.Tasks) != 2 || st.Tasks[0].ID != "a" || st.Tasks[1].ID != "b" {
		t.Fatalf("expected both valid records kept, got %+v", st.Tasks)
	}
}

func TestFileRepositoryBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	repo := NewFileRepository(path)

	where, err := repo.Backup(t.Context())
	if err != nil || where != "" {
		t.Fatalf("backup of missing file: where=%q err=%v", where, err)
	}

	original := []byte(`{"tasks":[{"id":"x","effort":101}]}`)
	if err := os.WriteFile(path, original, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	where, err = repo.Backup(t.Context())
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if !strings.HasPrefix(where, path+".") || !strings.HasSuffix(where, ".bak") {
		t.Fatalf("unexpected backup path %q", where)
	}
	got, err := os.ReadFile(where)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(got) != string(original) {
		t.Fatalf("backup content %q, want %q", got, original)
	}
}
