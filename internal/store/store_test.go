package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testRepo returns a repo whose clock advances one minute per event.
func testRepo(t *testing.T, s *Store, start time.Time) *eventRepo {
	t.Helper()
	r := newEventRepo(s.db, s.seq)
	tick := start
	r.now = func() time.Time {
		cur := tick
		tick = tick.Add(time.Minute)
		return cur
	}
	return r
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{assessmentTable, llmTable, "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendAssessment(ctx, AssessmentEventData{
		AssessmentID: "a-1", Career: "researcher", Scores: map[string]int{"researcher": 3},
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	recs, err := s.EventRepo().QueryAssessments(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}

	// The sequence continues after reopening.
	if err := s.EventRepo().AppendAssessment(ctx, AssessmentEventData{
		AssessmentID: "a-2", Career: "researcher", Scores: map[string]int{},
	}); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	recs, _ = s.EventRepo().QueryAssessments(ctx, QueryOpts{})
	if recs[0].Sequence != 2 {
		t.Errorf("sequence after reopen = %d, want 2", recs[0].Sequence)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	in := time.Date(2026, 5, 4, 3, 2, 1, 500, time.FixedZone("X", 3600))
	got, err := parseTime(formatTime(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.Equal(in) {
		t.Errorf("round trip = %v, want %v", got, in)
	}
	if len(formatTime(in)) != len(formatTime(in.Add(-500))) {
		t.Error("formatted timestamps must be fixed width")
	}
}
