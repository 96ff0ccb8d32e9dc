package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

//go:embed migrations.sql
var migrationsFS embed.FS

// Config configures the history database.
type Config struct {
	Path        string
	BusyTimeout time.Duration // 0 means driver default
}

type sqliteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open initializes the history database, creating the file and schema on
// first use. The store must survive process restarts; re-runs dedup against
// whatever it already holds.
func Open(cfg Config, log zerolog.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("history db path is required")
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if cfg.BusyTimeout > 0 {
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	st := &sqliteStore{db: db, log: log}
	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) FindAll(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT email, subject FROM history ORDER BY email, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var email, subject string
		if err := rows.Scan(&email, &subject); err != nil {
			return nil, err
		}
		if n := len(records); n > 0 && records[n-1].Email == email {
			records[n-1].Subjects = append(records[n-1].Subjects, subject)
			continue
		}
		records = append(records, Record{Email: email, Subjects: []string{subject}})
	}
	return records, rows.Err()
}

func (s *sqliteStore) FindByEmail(ctx context.Context, email string) (*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject FROM history WHERE email = ? ORDER BY rowid`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var subject string
		if err := rows.Scan(&subject); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		return nil, nil
	}
	return &Record{Email: email, Subjects: subjects}, nil
}

func (s *sqliteStore) AddSubject(ctx context.Context, email, subject string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history(email, subject, sent_at) VALUES(?,?,?)
		 ON CONFLICT(email, subject) DO NOTHING`,
		email, subject, time.Now().Format(time.RFC3339Nano),
	)
	return err
}

func (s *sqliteStore) AppendFailure(ctx context.Context, email string, at time.Time) error {
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO failures(email, at) VALUES(?,?)`,
		email, at.Format(time.RFC3339Nano),
	)
	return err
}

func (s *sqliteStore) Failures(ctx context.Context, email string) ([]Failure, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT email, at FROM failures WHERE email = ? ORDER BY id`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Failure
	for rows.Next() {
		var f Failure
		var at string
		if err := rows.Scan(&f.Email, &at); err != nil {
			return nil, err
		}
		if t, perr := time.Parse(time.RFC3339Nano, at); perr == nil {
			f.At = t
		} else {
			s.log.Warn().Str("email", f.Email).Str("at", at).Msg("unparseable failure timestamp")
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
