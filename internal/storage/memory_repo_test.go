package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

// newTestDB opens a migrated database in a temp directory and reports
// whether the build carries FTS5 support.
func newTestDB(t *testing.T) (*sql.DB, bool) {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	fts, err := Migrate(db)
	if err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db, fts
}

func insertTestMemory(t *testing.T, repo *MemoryRepo, memory *Memory) {
	t.Helper()
	if memory.CreatedAt.IsZero() {
		memory.CreatedAt = time.Now().UTC()
	}
	if memory.UpdatedAt.IsZero() {
		memory.UpdatedAt = memory.CreatedAt
	}
	if err := repo.Insert(context.Background(), memory); err != nil {
		t.Fatalf("Insert(%s) error = %v", memory.ID, err)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db, _ := newTestDB(t)
	if _, err := Migrate(db); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
}

func TestInsertAndGetByIDs(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewMemoryRepo(db)

	insertTestMemory(t, repo, &Memory{
		ID: "mem-1", Namespace: "conversations", SourceID: "sess-1",
		Content:  "talked about the dog park",
		Metadata: map[string]any{"speaker": "user"},
	})
	insertTestMemory(t, repo, &Memory{
		ID: "mem-2", Namespace: "notes", SourceID: "note-1",
		Content: "grocery list for the weekend",
	})

	// Requested order must be preserved, unknown IDs skipped.
	got, err := repo.GetByIDs(context.Background(), []string{"mem-2", "missing", "mem-1"})
	if err != nil {
		t.Fatalf("GetByIDs() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetByIDs() returned %d memories, want 2", len(got))
	}
	if got[0].ID != "mem-2" || got[1].ID != "mem-1" {
		t.Errorf("GetByIDs() order = [%s, %s], want [mem-2, mem-1]", got[0].ID, got[1].ID)
	}
	if speaker, _ := got[1].Metadata["speaker"].(string); speaker != "user" {
		t.Errorf("metadata round trip failed: %v", got[1].Metadata)
	}
}

func TestGetByIDsEmpty(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewMemoryRepo(db)

	got, err := repo.GetByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetByIDs(nil) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("GetByIDs(nil) returned %d memories, want 0", len(got))
	}
}

func TestSearchLikeFieldPriority(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewMemoryRepo(db)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	insertTestMemory(t, repo, &Memory{
		ID: "content-match", Namespace: "notes", SourceID: "n1",
		Content:   "we adopted a puppy last spring",
		CreatedAt: base, UpdatedAt: base,
	})
	insertTestMemory(t, repo, &Memory{
		ID: "entity-match", Namespace: "conversations", SourceID: "s1",
		Content:       "she was very energetic at the park",
		NamedEntities: "Puppy\nRiverside Park",
		CreatedAt:     base, UpdatedAt: base,
	})
	insertTestMemory(t, repo, &Memory{
		ID: "summary-match", Namespace: "notes", SourceID: "n2",
		Content:        "long unrelated body text",
		SummaryContent: "notes about puppy training",
		CreatedAt:      base, UpdatedAt: base,
	})

	got, err := repo.SearchLike(context.Background(), []string{"puppy"}, 10)
	if err != nil {
		t.Fatalf("SearchLike() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("SearchLike() returned %d memories, want 3", len(got))
	}
	wantOrder := []string{"entity-match", "summary-match", "content-match"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("SearchLike() rank %d = %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestSearchLikeTieBreakByUpdatedAt(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewMemoryRepo(db)

	older := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	insertTestMemory(t, repo, &Memory{
		ID: "old", Namespace: "notes", SourceID: "n1",
		Content: "dentist appointment notes", CreatedAt: older, UpdatedAt: older,
	})
	insertTestMemory(t, repo, &Memory{
		ID: "new", Namespace: "notes", SourceID: "n2",
		Content: "dentist follow up", CreatedAt: newer, UpdatedAt: newer,
	})

	got, err := repo.SearchLike(context.Background(), []string{"dentist"}, 10)
	if err != nil {
		t.Fatalf("SearchLike() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "new" || got[1].ID != "old" {
		t.Errorf("SearchLike() tie break wrong, got %v", idsOf(got))
	}
}

func TestSearchLikeMultipleTermsOrSemantics(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewMemoryRepo(db)

	insertTestMemory(t, repo, &Memory{
		ID: "a", Namespace: "notes", SourceID: "n1", Content: "booked flights to Lisbon",
	})
	insertTestMemory(t, repo, &Memory{
		ID: "b", Namespace: "notes", SourceID: "n2", Content: "birthday dinner reservation",
	})
	insertTestMemory(t, repo, &Memory{
		ID: "c", Namespace: "notes", SourceID: "n3", Content: "nothing relevant here",
	})

	got, err := repo.SearchLike(context.Background(), []string{"lisbon", "birthday"}, 10)
	if err != nil {
		t.Fatalf("SearchLike() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("SearchLike() returned %v, want ids a and b", idsOf(got))
	}
}

func TestSearchLikeLimitAndWildcards(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewMemoryRepo(db)

	insertTestMemory(t, repo, &Memory{
		ID: "a", Namespace: "notes", SourceID: "n1", Content: "alpha dog beta",
	})
	insertTestMemory(t, repo, &Memory{
		ID: "b", Namespace: "notes", SourceID: "n2", Content: "gamma dog delta",
	})

	got, err := repo.SearchLike(context.Background(), []string{"dog"}, 1)
	if err != nil {
		t.Fatalf("SearchLike() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("SearchLike() limit not applied, got %d rows", len(got))
	}

	// A bare wildcard term must not match everything.
	got, err = repo.SearchLike(context.Background(), []string{"%"}, 10)
	if err != nil {
		t.Fatalf("SearchLike(%%) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("SearchLike(%%) matched %d rows, want 0", len(got))
	}
}

func TestSearchFTS(t *testing.T) {
	db, fts := newTestDB(t)
	if !fts {
		t.Skip("sqlite build lacks fts5")
	}
	repo := NewMemoryRepo(db)

	insertTestMemory(t, repo, &Memory{
		ID: "a", Namespace: "conversations", SourceID: "s1",
		Content: "we talked about hiking the coastal trail",
	})
	insertTestMemory(t, repo, &Memory{
		ID: "b", Namespace: "notes", SourceID: "n1",
		Content: "recipe for lentil soup",
	})

	got, err := repo.SearchFTS(context.Background(), []string{"hiking", "soup"}, 10)
	if err != nil {
		t.Fatalf("SearchFTS() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("SearchFTS() returned %v, want both rows", idsOf(got))
	}
}

func TestSearchFTSWithoutIndexFails(t *testing.T) {
	db, fts := newTestDB(t)
	if fts {
		t.Skip("fts5 available; absence path not reachable")
	}
	repo := NewMemoryRepo(db)

	if _, err := repo.SearchFTS(context.Background(), []string{"anything"}, 10); err == nil {
		t.Fatal("SearchFTS() should fail when the fts index is absent")
	}
}

func TestCount(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewMemoryRepo(db)

	for _, id := range []string{"a", "b", "c"} {
		insertTestMemory(t, repo, &Memory{ID: id, Namespace: "notes", SourceID: id, Content: id})
	}

	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}
}

func idsOf(memories []*Memory) []string {
	ids := make([]string, len(memories))
	for i, m := range memories {
		ids[i] = m.ID
	}
	return ids
}
