package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/ledsnake/internal/machine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func run(apples int, endedAfter time.Duration) Run {
	return Run{
		Seed:      12345,
		Apples:    apples,
		Length:    apples + 1,
		Ticks:     uint64(apples*10 + 12),
		Reason:    "wall",
		StartedAt: epoch,
		EndedAt:   epoch.Add(endedAfter),
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(run(3, time.Minute))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated id %q is not a uuid: %v", id, err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("run not found")
	}
	if got.GameID != GameID || got.Seed != 12345 || got.Apples != 3 || got.Length != 4 || got.Ticks != 42 || got.Reason != "wall" {
		t.Errorf("stored run = %+v", got)
	}
	if !got.StartedAt.Equal(epoch) || got.Duration() != time.Minute {
		t.Errorf("timestamps %v..%v", got.StartedAt, got.EndedAt)
	}

	missing, err := store.RunByID("nope")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %v, %v", missing, err)
	}
}

func TestStoreSeedRoundTripsFullRange(t *testing.T) {
	store := openTestStore(t)

	r := run(0, time.Second)
	r.Seed = 0xFFFFFFFF
	id, err := store.SaveRun(r)
	if err != nil {
		t.Fatal(err)
	}
	got, err := store.RunByID(id)
	if err != nil || got == nil {
		t.Fatalf("RunByID: %v", err)
	}
	if got.Seed != 0xFFFFFFFF {
		t.Errorf("seed = %#x", got.Seed)
	}
}

func TestStoreTopRuns(t *testing.T) {
	store := openTestStore(t)

	for i, apples := range []int{1, 5, 2, 5, 4} {
		if _, err := store.SaveRun(run(apples, time.Duration(i)*time.Second)); err != nil {
			t.Fatal(err)
		}
	}

	top, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(top))
	}

	want := []int{5, 5, 4}
	for i, r := range top {
		if r.Apples != want[i] {
			t.Errorf("top[%d].Apples = %d, want %d", i, r.Apples, want[i])
		}
	}
	// Equal scores: earlier finish first.
	if !top[0].EndedAt.Before(top[1].EndedAt) {
		t.Errorf("tie not broken by finish time: %v, %v", top[0].EndedAt, top[1].EndedAt)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(run(i, time.Duration(i)*time.Minute)); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Apples != 4 || recent[1].Apples != 3 {
		t.Errorf("recent = %+v", recent)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 with no runs, got %d", high)
	}

	for _, apples := range []int{1, 7, 3} {
		store.SaveRun(run(apples, 0))
	}

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 7 {
		t.Errorf("Expected high score of 7, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(run(1, 0))
	store.SaveRun(run(2, 0))

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
}

func TestStoreDuplicateIDRejected(t *testing.T) {
	store := openTestStore(t)

	r := run(1, 0)
	r.ID = uuid.NewString()
	if _, err := store.SaveRun(r); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(r); err == nil {
		t.Error("expected error saving the same run twice")
	}
}

func TestStoreRecordRun(t *testing.T) {
	store := openTestStore(t)

	sum := machine.RunSummary{
		ID:        uuid.New(),
		Seed:      99,
		Apples:    2,
		Length:    3,
		Ticks:     40,
		Reason:    "self",
		StartedAt: epoch,
		EndedAt:   epoch.Add(2 * time.Second),
	}
	if err := store.RecordRun(sum); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	got, err := store.RunByID(sum.ID.String())
	if err != nil || got == nil {
		t.Fatalf("RunByID: %v", err)
	}
	if got.Seed != 99 || got.Apples != 2 || got.Reason != "self" || got.Ticks != 40 {
		t.Errorf("recorded run = %+v", got)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	a := run(2, time.Second)
	b := run(4, time.Hour)
	b.Reason = "self"
	store.SaveRun(a)
	store.SaveRun(b)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.HighScore != 4 || stats.AvgApples != 3 || stats.TotalApples != 6 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalTicks != int64(a.Ticks+b.Ticks) {
		t.Errorf("total ticks = %d", stats.TotalTicks)
	}
	if stats.ByReason["wall"] != 1 || stats.ByReason["self"] != 1 {
		t.Errorf("by reason = %v", stats.ByReason)
	}
	if !stats.LastPlayed.Equal(epoch.Add(time.Hour)) {
		t.Errorf("last played = %v", stats.LastPlayed)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
