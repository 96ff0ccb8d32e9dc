package loader

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// SQLLoader pulls addresses from a relational accounts table. Row order is
// unspecified; DISTINCT keeps the per-run list unique at the source.
type SQLLoader struct {
	dsn string
}

func NewSQL(dsn string) *SQLLoader { return &SQLLoader{dsn: dsn} }

func (l *SQLLoader) Load(ctx context.Context) ([]string, error) {
	db, err := sql.Open("postgres", l.dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT DISTINCT email FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		if email != "" {
			emails = append(emails, email)
		}
	}
	return emails, rows.Err()
}
