// Package config binds the campaign configuration once at startup. The
// loaded Config is immutable for the lifetime of the run.
package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	// DBPath is the history database file. Created on first run.
	DBPath string `json:"db_path"`

	Loader LoaderConfig `json:"loader"`

	// Limit caps successful sends per run. -1 means unlimited. 0 is invalid
	// and rejected by the engine before any send.
	Limit int `json:"limit"`

	// CheckSubjects skips recipients the history store has already seen for
	// this subject.
	CheckSubjects bool `json:"check_subjects"`

	// Shuffle randomizes the dispatch order once per run.
	Shuffle bool `json:"shuffle"`

	// RatePerSec throttles send attempts. 0 disables throttling.
	RatePerSec int `json:"rate_per_sec,omitempty"`

	SMTP   SMTPConfig   `json:"smtp"`
	Sender SenderConfig `json:"sender"`

	Subject  string `json:"subject"`
	BodyFile string `json:"body_file"`

	Logging LoggingConfig `json:"logging,omitempty"`
	Colors  ColorConfig   `json:"colors,omitempty"`
}

type LoaderConfig struct {
	// Type selects the recipient source: "txt", "csv" or "sql".
	Type    string `json:"type"`
	TxtPath string `json:"txt_path,omitempty"`
	CsvPath string `json:"csv_path,omitempty"`
	// SQLConn is a Postgres DSN. Overridable via SENDER_SQL_CONN.
	SQLConn string `json:"sql_conn,omitempty"`
}

type SMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	// Password is overridable via SENDER_SMTP_PASSWORD so it can stay out of
	// the config file.
	Password string `json:"password,omitempty"`
	// Timeout is a Go duration string bounding connect and each send.
	Timeout string `json:"timeout,omitempty"`
}

type SenderConfig struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type LoggingConfig struct {
	Level string `json:"level,omitempty"`
	// ErrorFile receives error-level entries in addition to the console.
	ErrorFile string `json:"error_file,omitempty"`
}

// ColorConfig themes the console output. Cosmetic only.
type ColorConfig struct {
	Message string `json:"message,omitempty"`
	Value   string `json:"value,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SMTPTimeout parses the configured timeout, falling back to def when unset.
func (c SMTPConfig) SMTPTimeout(def time.Duration) (time.Duration, error) {
	return ParseDurationOrDefault("smtp.timeout", c.Timeout, def)
}

// Validate checks the structural configuration surface. Campaign semantics
// (limit, subject, body) stay with the engine's pre-flight so they are
// enforced in one place.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db_path is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.Loader.Type)) {
	case "txt":
		if strings.TrimSpace(c.Loader.TxtPath) == "" {
			return fmt.Errorf("loader.txt_path is required for loader type txt")
		}
	case "csv":
		if strings.TrimSpace(c.Loader.CsvPath) == "" {
			return fmt.Errorf("loader.csv_path is required for loader type csv")
		}
	case "sql":
		if strings.TrimSpace(c.Loader.SQLConn) == "" {
			return fmt.Errorf("loader.sql_conn is required for loader type sql")
		}
	default:
		return fmt.Errorf("unknown loader type %q", c.Loader.Type)
	}
	if strings.TrimSpace(c.SMTP.Host) == "" {
		return fmt.Errorf("smtp.host is required")
	}
	if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
		return fmt.Errorf("smtp.port %d is out of range", c.SMTP.Port)
	}
	if strings.TrimSpace(c.Sender.Address) == "" {
		return fmt.Errorf("sender.address is required")
	}
	if strings.TrimSpace(c.BodyFile) == "" {
		return fmt.Errorf("body_file is required")
	}
	if c.RatePerSec < 0 {
		return fmt.Errorf("rate_per_sec must be >= 0")
	}
	if _, err := ParseDurationField("smtp.timeout", c.SMTP.Timeout); err != nil {
		return err
	}
	return nil
}
