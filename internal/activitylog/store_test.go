package activitylog

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2026, time.October, 17, 14, 5, 9, 0, time.Local)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "Log"),
		WithClock(func() time.Time { return testNow }),
		WithLogger(zaptest.NewLogger(t)),
	)
}

func mkPartition(t *testing.T, s *Store, name string) {
	t.Helper()
	dir := filepath.Join(s.Root(), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Live.txt"), []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func daysAgo(n int) string {
	return PartitionName(testNow.AddDate(0, 0, -n))
}

func TestAppend(t *testing.T) {
	s := newTestStore(t)

	s.Append(DefaultLabel, "first")
	s.Append(DefaultLabel, "second")

	data, err := os.ReadFile(filepath.Join(s.Root(), "17-10-2026", "Live.txt"))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	want := "17/10/2026 14:05:09 first\n17/10/2026 14:05:09 second\n"
	if string(data) != want {
		t.Errorf("log content = %q, want %q", string(data), want)
	}
}

func TestAppendFailureDoesNotPanic(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "Log")
	// A regular file where the root directory should be makes every write fail.
	if err := os.WriteFile(root, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(root, WithClock(func() time.Time { return testNow }), WithLogger(zaptest.NewLogger(t)))
	s.Append(DefaultLabel, "lost")
}

func TestPrune(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{daysAgo(0), daysAgo(4), daysAgo(5), daysAgo(6), daysAgo(30), "not-a-date", "32-13-2026"} {
		mkPartition(t, s, name)
	}
	if err := os.WriteFile(filepath.Join(s.Root(), "stray.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	removed, err := s.Prune(RetentionDays)
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	sort.Strings(removed)
	want := []string{daysAgo(30), daysAgo(5), daysAgo(6), "32-13-2026", "not-a-date", "stray.txt"}
	sort.Strings(want)
	if len(removed) != len(want) {
		t.Fatalf("Prune() removed %v, want %v", removed, want)
	}
	for i := range want {
		if removed[i] != want[i] {
			t.Errorf("Prune() removed %v, want %v", removed, want)
			break
		}
	}

	for _, kept := range []string{daysAgo(0), daysAgo(4)} {
		if _, err := os.Stat(filepath.Join(s.Root(), kept)); err != nil {
			t.Errorf("partition %s was removed: %v", kept, err)
		}
	}

	again, err := s.Prune(RetentionDays)
	if err != nil || len(again) != 0 {
		t.Errorf("second Prune() = %v, %v, want no-op", again, err)
	}
}

func TestPruneMissingRoot(t *testing.T) {
	s := newTestStore(t)
	removed, err := s.Prune(RetentionDays)
	if err != nil || removed != nil {
		t.Errorf("Prune() on missing root = %v, %v", removed, err)
	}
}

func TestPartitionsAndReadDay(t *testing.T) {
	s := newTestStore(t)
	mkPartition(t, s, daysAgo(2))
	mkPartition(t, s, "junk")
	s.Append(DefaultLabel, "hello")

	parts, err := s.Partitions()
	if err != nil {
		t.Fatalf("Partitions() error: %v", err)
	}
	if len(parts) != 2 || parts[0] != s.Today() || parts[1] != daysAgo(2) {
		t.Errorf("Partitions() = %v, want [%s %s]", parts, s.Today(), daysAgo(2))
	}

	lines, err := s.ReadDay(s.Today(), DefaultLabel)
	if err != nil {
		t.Fatalf("ReadDay() error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "17/10/2026 14:05:09 hello" {
		t.Errorf("ReadDay() = %q", lines)
	}

	if lines, err := s.ReadDay(s.Today(), "Other"); err != nil || lines != nil {
		t.Errorf("ReadDay(missing label) = %q, %v", lines, err)
	}
	if _, err := s.ReadDay("2026-10-17", DefaultLabel); err == nil {
		t.Error("ReadDay(bad partition) expected error")
	}
}
