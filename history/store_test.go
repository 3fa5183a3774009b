package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/signalnine/biscuits/simulation"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"), WithSaveRetry(2, time.Millisecond))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSummaries(rules string, seed uint64) []simulation.Summary {
	base := simulation.Summary{Rules: rules, Trials: 1000, Seed: seed, Ceiling: 87, LowScoreWins: true}
	a, b := base, base
	a.Strategy, a.Avg, a.StdDev, a.Min, a.Max, a.Gravies, a.Stops = "all-zero-big-min", 71.5, 5.25, 50, 87, 12, 988
	a.AvgTurns, a.Elapsed = 9.75, 40*time.Millisecond
	b.Strategy, b.Avg, b.Min, b.Max, b.Stops, b.Suspect = "one-min", 60, 31, 80, 1000, 2
	b.AvgTurns, b.Elapsed = 15, 55*time.Millisecond
	return []simulation.Summary{a, b}
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// high bit set: stored as text, not INTEGER
	run := NewRun(testSummaries("biscuits", 1<<63+5))
	if err := s.Save(ctx, run); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Rules != "biscuits" || got.Seed != 1<<63+5 || got.Trials != 1000 || !got.LowScoreWins {
		t.Errorf("Get() = %+v", got)
	}
	if !got.CreatedAt.Equal(run.CreatedAt.Truncate(time.Millisecond)) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, run.CreatedAt)
	}
	if len(got.Summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got.Summaries))
	}
	for i, want := range run.Summaries {
		if got.Summaries[i] != want {
			t.Errorf("summary %d = %+v, want %+v", i, got.Summaries[i], want)
		}
	}
}

func TestSaveAssignsID(t *testing.T) {
	s := openTestStore(t)
	run := &Run{Rules: "pig", Summaries: testSummaries("pig", 1)}
	if err := s.Save(context.Background(), run); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if run.ID == "" || run.CreatedAt.IsZero() {
		t.Errorf("Save left ID %q, CreatedAt %v", run.ID, run.CreatedAt)
	}
}

func TestSaveDuplicate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run := NewRun(testSummaries("pig", 1))

	if err := s.Save(ctx, run); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, run); !errors.Is(err, ErrRunExists) {
		t.Errorf("second Save() error = %v, want ErrRunExists", err)
	}
}

func TestSaveInvalid(t *testing.T) {
	s := openTestStore(t)
	for _, run := range []*Run{nil, {ID: "x"}} {
		if err := s.Save(context.Background(), run); !errors.Is(err, ErrInvalidRun) {
			t.Errorf("Save(%v) error = %v, want ErrInvalidRun", run, err)
		}
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Get() error = %v, want ErrRunNotFound", err)
	}
	if _, err := s.Get(context.Background(), ""); !errors.Is(err, ErrInvalidRun) {
		t.Errorf("Get(\"\") error = %v, want ErrInvalidRun", err)
	}
}

func TestList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, rules := range []string{"pig", "biscuits", "pig", "zero-run"} {
		run := NewRun(testSummaries(rules, uint64(i)))
		run.CreatedAt = start.Add(time.Duration(i) * time.Minute)
		if err := s.Save(ctx, run); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("List() returned %d runs, want 4", len(all))
	}
	if all[0].Rules != "zero-run" || all[3].Seed != 0 {
		t.Errorf("List() not newest first: %s ... seed %d", all[0].Rules, all[3].Seed)
	}
	if len(all[0].Summaries) != 2 {
		t.Errorf("List() summaries = %d, want 2", len(all[0].Summaries))
	}

	pig, err := s.List(ctx, ListOptions{Rules: "pig", Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(pig) != 1 || pig[0].Seed != 2 {
		t.Errorf("List(pig, 1) = %+v", pig)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	run := NewRun(testSummaries("pig", 3))
	if err := s.Save(ctx, run); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(ctx, run.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Get after Delete error = %v", err)
	}
	if err := s.Delete(ctx, run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("second Delete() error = %v, want ErrRunNotFound", err)
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM summaries`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("%d orphaned summaries", n)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	run := NewRun(testSummaries("pig", 9))
	if err := s.Save(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.Get(context.Background(), run.ID); err != nil {
		t.Errorf("Get after reopen: %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("Open with blank path succeeded")
	}
}

func TestCancelledContext(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Save(ctx, NewRun(testSummaries("pig", 1))); !errors.Is(err, context.Canceled) {
		t.Errorf("Save() error = %v, want context.Canceled", err)
	}
}
