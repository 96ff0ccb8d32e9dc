package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func openTemp(t *testing.T) (Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	st, err := Open(Config{Path: path}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st, path
}

func TestAddSubjectIdempotent(t *testing.T) {
	t.Parallel()
	st, _ := openTemp(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := st.AddSubject(ctx, "a@example.com", "hello"); err != nil {
			t.Fatalf("AddSubject: %v", err)
		}
	}
	rec, err := st.FindByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a record")
	}
	if len(rec.Subjects) != 1 || rec.Subjects[0] != "hello" {
		t.Fatalf("expected exactly one subject entry, got %v", rec.Subjects)
	}
}

func TestFindAllGroupsByEmail(t *testing.T) {
	t.Parallel()
	st, _ := openTemp(t)
	ctx := context.Background()

	pairs := []struct{ email, subject string }{
		{"a@example.com", "one"},
		{"a@example.com", "two"},
		{"b@example.com", "one"},
	}
	for _, p := range pairs {
		if err := st.AddSubject(ctx, p.email, p.subject); err != nil {
			t.Fatalf("AddSubject(%s, %s): %v", p.email, p.subject, err)
		}
	}

	records, err := st.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	byEmail := map[string][]string{}
	for _, r := range records {
		byEmail[r.Email] = r.Subjects
	}
	if got := byEmail["a@example.com"]; len(got) != 2 {
		t.Fatalf("a@example.com subjects = %v", got)
	}
	if got := byEmail["b@example.com"]; len(got) != 1 || got[0] != "one" {
		t.Fatalf("b@example.com subjects = %v", got)
	}
}

func TestFindByEmailMissing(t *testing.T) {
	t.Parallel()
	st, _ := openTemp(t)

	rec, err := st.FindByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record, got %+v", rec)
	}
}

func TestFailureLogAppendOnly(t *testing.T) {
	t.Parallel()
	st, _ := openTemp(t)
	ctx := context.Background()

	at := time.Now().Add(-time.Minute)
	for i := 0; i < 2; i++ {
		if err := st.AppendFailure(ctx, "x@example.com", at); err != nil {
			t.Fatalf("AppendFailure: %v", err)
		}
	}
	fails, err := st.Failures(ctx, "x@example.com")
	if err != nil {
		t.Fatalf("Failures: %v", err)
	}
	if len(fails) != 2 {
		t.Fatalf("expected 2 failure entries, got %d", len(fails))
	}
	if !fails[0].At.Equal(at) {
		t.Fatalf("failure timestamp not preserved: got %v, want %v", fails[0].At, at)
	}
}

func TestSurvivesReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	st, err := Open(Config{Path: path}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := st.AddSubject(ctx, "a@example.com", "hello"); err != nil {
		t.Fatalf("AddSubject: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st, err = Open(Config{Path: path}, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	rec, err := st.FindByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if rec == nil || len(rec.Subjects) != 1 {
		t.Fatalf("history did not survive reopen: %+v", rec)
	}
}
