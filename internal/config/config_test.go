package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validYAML = `
db_path: ./history.db
loader:
  type: txt
  txt_path: ./emails.txt
limit: -1
check_subjects: true
shuffle: false
smtp:
  host: smtp.example.com
  port: 587
  username: mailer
  password: hunter2
  timeout: 45s
sender:
  name: Campaign
  address: campaign@example.com
subject: "August promo"
body_file: ./body.html
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Loader.Type != "txt" || cfg.Loader.TxtPath != "./emails.txt" {
		t.Fatalf("loader = %+v", cfg.Loader)
	}
	if cfg.Limit != -1 || !cfg.CheckSubjects || cfg.Shuffle {
		t.Fatalf("flags = limit %d check %v shuffle %v", cfg.Limit, cfg.CheckSubjects, cfg.Shuffle)
	}
	d, err := cfg.SMTP.SMTPTimeout(30 * time.Second)
	if err != nil || d != 45*time.Second {
		t.Fatalf("timeout = %v, %v", d, err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "config.yaml", validYAML+"\nmystery_field: 1\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadRejectsUnknownLoaderType(t *testing.T) {
	bad := strings.Replace(validYAML, "type: txt", "type: ldap", 1)
	path := writeConfig(t, "config.yaml", bad)

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "loader type") {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadRequiresLoaderLocation(t *testing.T) {
	bad := strings.Replace(validYAML, "txt_path: ./emails.txt", "", 1)
	path := writeConfig(t, "config.yaml", bad)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing txt_path")
	}
}

func TestEnvOverridesPassword(t *testing.T) {
	t.Setenv("SENDER_SMTP_PASSWORD", "from-env")
	path := writeConfig(t, "config.yaml", validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SMTP.Password != "from-env" {
		t.Fatalf("password = %q, want env override", cfg.SMTP.Password)
	}
}

func TestSMTPTimeoutDefault(t *testing.T) {
	c := SMTPConfig{}
	d, err := c.SMTPTimeout(30 * time.Second)
	if err != nil || d != 30*time.Second {
		t.Fatalf("default timeout = %v, %v", d, err)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "db_path": "./history.db",
  "loader": {"type": "csv", "csv_path": "./emails.csv"},
  "limit": 100,
  "check_subjects": false,
  "shuffle": true,
  "smtp": {"host": "smtp.example.com", "port": 25, "username": "u"},
  "sender": {"name": "N", "address": "n@example.com"},
  "subject": "s",
  "body_file": "./body.html"
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Loader.Type != "csv" || cfg.Limit != 100 || !cfg.Shuffle {
		t.Fatalf("cfg = %+v", cfg)
	}
}
