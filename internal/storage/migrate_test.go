package storage

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sqlx.Open(DriverCGO, dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db.DB); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(db.DB); err != nil {
		t.Fatalf("repeated migrate up failed: %v", err)
	}
	if err := MigrateDown(db.DB); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(db.DB); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	st := DefaultState()
	st.RewardPoints = 7
	if err := repo.Save(t.Context(), st); err != nil {
		t.Fatalf("save after roundtrip failed: %v", err)
	}
	got, err := repo.Load(t.Context())
	if err != nil {
		t.Fatalf("load after roundtrip failed: %v", err)
	}
	if got.RewardPoints != 7 {
		t.Fatalf("unexpected reward points after roundtrip: %d", got.RewardPoints)
	}
}
