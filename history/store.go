// Package history persists simulator runs in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/signalnine/biscuits/simulation"
)

// Errors
var (
	ErrMigrationFailed = errors.New("history: migration failed")
	ErrRunNotFound     = errors.New("history: run not found")
	ErrRunExists       = errors.New("history: run already exists")
	ErrInvalidRun      = errors.New("history: invalid run")
)

// Run is one recorded simulator invocation.
type Run struct {
	ID           string
	CreatedAt    time.Time
	Rules        string
	Seed         uint64
	Trials       int64
	Ceiling      int
	LowScoreWins bool
	// Summaries are stored in rank order.
	Summaries []simulation.Summary
}

// NewRun builds a run record with a fresh ID from ranked summaries.
func NewRun(summaries []simulation.Summary) *Run {
	r := &Run{ID: NewRunID(), CreatedAt: time.Now().UTC(), Summaries: summaries}
	if len(summaries) > 0 {
		r.Rules = summaries[0].Rules
		r.Seed = summaries[0].Seed
		r.Trials = summaries[0].Trials
		r.Ceiling = summaries[0].Ceiling
		r.LowScoreWins = summaries[0].LowScoreWins
	}
	return r
}

// NewRunID returns a random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Config configures the store.
type Config struct {
	// BusyTimeout is how long SQLite waits on a locked database before failing.
	BusyTimeout time.Duration
	// SaveAttempts bounds retries of a failed Save.
	SaveAttempts int
	// RetryDelay is the first backoff between Save attempts.
	RetryDelay time.Duration
}

// Option configures the store.
type Option func(*Config)

// WithBusyTimeout sets the SQLite busy timeout.
func WithBusyTimeout(d time.Duration) Option {
	return func(c *Config) { c.BusyTimeout = d }
}

// WithSaveRetry sets how often Save is attempted and the initial backoff.
func WithSaveRetry(attempts int, delay time.Duration) Option {
	return func(c *Config) {
		c.SaveAttempts = attempts
		c.RetryDelay = delay
	}
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		BusyTimeout:  5 * time.Second,
		SaveAttempts: 4,
		RetryDelay:   50 * time.Millisecond,
	}
}

// Store persists runs in SQLite.
type Store struct {
	db    *sql.DB
	retry retry.Retry[struct{}]
}

// Open opens (creating if needed) the history database at path.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history path is required")
	}
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		filepath.Clean(path), cfg.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	s := &Store{
		db: db,
		retry: retry.New[struct{}](retry.Config{
			MaxAttempts:   max(1, cfg.SaveAttempts),
			InitialDelay:  cfg.RetryDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    2.0,
			// Only lock contention is worth retrying.
			NonRetryableErrors: []error{ErrRunExists, ErrInvalidRun, context.Canceled, context.DeadlineExceeded},
		}),
	}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// migrate creates the tables if they don't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			rules TEXT NOT NULL,
			seed TEXT NOT NULL,
			trials INTEGER NOT NULL,
			ceiling INTEGER NOT NULL,
			low_score_wins INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
		CREATE INDEX IF NOT EXISTS idx_runs_rules ON runs(rules);

		CREATE TABLE IF NOT EXISTS summaries (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			rank INTEGER NOT NULL,
			strategy TEXT NOT NULL,
			trials INTEGER NOT NULL,
			avg REAL NOT NULL,
			stddev REAL NOT NULL,
			min INTEGER NOT NULL,
			max INTEGER NOT NULL,
			gravies INTEGER NOT NULL,
			busts INTEGER NOT NULL,
			stops INTEGER NOT NULL,
			suspect INTEGER NOT NULL,
			avg_turns REAL NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			PRIMARY KEY (run_id, rank)
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return errors.Join(ErrMigrationFailed, err)
	}
	return nil
}

// Save persists a run and its summaries in one transaction. A missing ID is
// filled in. Failures from a locked database are retried with backoff.
func (s *Store) Save(ctx context.Context, r *Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r == nil || len(r.Summaries) == 0 {
		return fmt.Errorf("%w: no summaries", ErrInvalidRun)
	}
	if r.ID == "" {
		r.ID = NewRunID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	var last error
	_, err := s.retry.Do(ctx, func(ctx context.Context) (struct{}, error) {
		last = s.save(ctx, r)
		return struct{}{}, last
	})
	if err != nil && last != nil {
		return last
	}
	return err
}

func (s *Store) save(ctx context.Context, r *Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, rules, seed, trials, ceiling, low_score_wins)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UnixMilli(), r.Rules, strconv.FormatUint(r.Seed, 10),
		r.Trials, r.Ceiling, r.LowScoreWins,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrRunExists
		}
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO summaries (run_id, rank, strategy, trials, avg, stddev, min, max,
		   gravies, busts, stops, suspect, avg_turns, elapsed_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare summaries: %w", err)
	}
	defer stmt.Close()

	for rank, sum := range r.Summaries {
		if _, err := stmt.ExecContext(ctx,
			r.ID, rank, sum.Strategy, sum.Trials, sum.Avg, sum.StdDev, sum.Min, sum.Max,
			sum.Gravies, sum.Busts, sum.Stops, sum.Suspect, sum.AvgTurns, int64(sum.Elapsed),
		); err != nil {
			return fmt.Errorf("insert summary %s: %w", sum.Strategy, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidRun)
	}

	r, err := scanRun(s.db.QueryRowContext(ctx,
		`SELECT id, created_at, rules, seed, trials, ceiling, low_score_wins FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadSummaries(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListOptions filters List.
type ListOptions struct {
	// Rules restricts the listing to one rule set; empty lists all.
	Rules string
	// Limit caps the number of runs; values below 1 mean 20.
	Limit int
}

// List returns runs newest first, each with its summaries.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]*Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := opts.Limit
	if limit < 1 {
		limit = 20
	}

	query := `SELECT id, created_at, rules, seed, trials, ceiling, low_score_wins FROM runs`
	args := []any{}
	if opts.Rules != "" {
		query += ` WHERE rules = ?`
		args = append(args, opts.Rules)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, r := range runs {
		if err := s.loadSummaries(ctx, r); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// Delete removes a run and its summaries.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		r         Run
		createdAt int64
		seed      string
	)
	if err := row.Scan(&r.ID, &createdAt, &r.Rules, &seed, &r.Trials, &r.Ceiling, &r.LowScoreWins); err != nil {
		return nil, err
	}
	parsed, err := strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("run %s: bad seed %q: %w", r.ID, seed, err)
	}
	r.Seed = parsed
	r.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &r, nil
}

func (s *Store) loadSummaries(ctx context.Context, r *Run) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT strategy, trials, avg, stddev, min, max, gravies, busts, stops, suspect, avg_turns, elapsed_ns
		 FROM summaries WHERE run_id = ? ORDER BY rank`, r.ID)
	if err != nil {
		return fmt.Errorf("load summaries: %w", err)
	}
	defer rows.Close()

	r.Summaries = r.Summaries[:0]
	for rows.Next() {
		sum := simulation.Summary{
			Rules:        r.Rules,
			Seed:         r.Seed,
			Ceiling:      r.Ceiling,
			LowScoreWins: r.LowScoreWins,
		}
		var elapsed int64
		if err := rows.Scan(&sum.Strategy, &sum.Trials, &sum.Avg, &sum.StdDev, &sum.Min, &sum.Max,
			&sum.Gravies, &sum.Busts, &sum.Stops, &sum.Suspect, &sum.AvgTurns, &elapsed); err != nil {
			return err
		}
		sum.Elapsed = time.Duration(elapsed)
		r.Summaries = append(r.Summaries, sum)
	}
	return rows.Err()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
