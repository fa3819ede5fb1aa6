// Package activitylog keeps the agent's day-partitioned activity log:
// <root>/<DD-MM-YYYY>/<label>.txt, one timestamped line per event.
package activitylog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
)

const (
	// RetentionDays is how many days a partition is kept.
	RetentionDays = 5

	// DefaultLabel is the file name (without .txt) the monitor writes to.
	DefaultLabel = "Live"

	partitionLayout = "02-01-2006"
	lineLayout      = "02/01/2006 15:04:05"
)

// Store appends to and prunes a log tree rooted at a directory.
type Store struct {
	root   string
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the fallback channel for write failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a store rooted at root. Nothing is created on disk until
// the first Append.
func NewStore(root string, opts ...Option) *Store {
	s := &Store{
		root:   root,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the log tree's root directory.
func (s *Store) Root() string {
	return s.root
}

// PartitionName returns the partition key for t.
func PartitionName(t time.Time) string {
	return t.Format(partitionLayout)
}

// FormatLine renders a log line without the trailing newline.
func FormatLine(t time.Time, message string) string {
	return t.Format(lineLayout) + " " + message
}

// Append writes message to today's <label>.txt. Failures go to the
// diagnostic logger and are never returned.
func (s *Store) Append(label, message string) {
	if err := s.append(label, message); err != nil {
		s.logger.Error("activity log write failed",
			zap.String("label", label),
			zap.String("message", message),
			zap.Error(err),
		)
	}
}

func (s *Store) append(label, message string) error {
	now := s.now()
	dir := filepath.Join(s.root, PartitionName(now))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating partition %s: %w", dir, err)
	}

	path := filepath.Join(dir, label+".txt")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	if _, err := fmt.Fprintln(f, FormatLine(now, message)); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Prune deletes every partition dated on or before today minus
// retentionDays, and every entry whose name is not a date. It returns the
// removed names. A missing root is not an error.
func (s *Store) Prune(retentionDays int) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", s.root, err)
	}

	now := s.now()
	cutoff := startOfDay(now).AddDate(0, 0, -retentionDays)

	var removed []string
	var errs []error
	for _, e := range entries {
		day, err := time.ParseInLocation(partitionLayout, e.Name(), now.Location())
		if err == nil && day.After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.root, e.Name())); err != nil {
			errs = append(errs, fmt.Errorf("removing partition %s: %w", e.Name(), err))
			continue
		}
		removed = append(removed, e.Name())
	}
	return removed, errors.Join(errs...)
}

// Partitions lists the valid partition names, newest first.
func (s *Store) Partitions() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	type partition struct {
		name string
		day  time.Time
	}
	var parts []partition
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		day, err := time.Parse(partitionLayout, e.Name())
		if err != nil {
			continue
		}
		parts = append(parts, partition{name: e.Name(), day: day})
	}

	sort.Slice(parts, func(i, j int) bool {
		return parts[i].day.After(parts[j].day)
	})

	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = p.name
	}
	return names, nil
}

// Today returns today's partition name.
func (s *Store) Today() string {
	return PartitionName(s.now())
}

// ReadDay returns the lines of <partition>/<label>.txt. A missing file
// returns no lines.
func (s *Store) ReadDay(partition, label string) ([]string, error) {
	if _, err := time.Parse(partitionLayout, partition); err != nil {
		return nil, fmt.Errorf("invalid partition %q: want DD-MM-YYYY", partition)
	}

	f, err := os.Open(filepath.Join(s.root, partition, label+".txt"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
