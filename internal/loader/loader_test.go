package loader

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestTxtLoader(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "emails.txt", "a@b.co\n\n  b@b.co  \nnot-an-email\n")

	got, err := NewTxt(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Raw extraction: the invalid line stays in; the planner filters it.
	want := []string{"a@b.co", "b@b.co", "not-an-email"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTxtLoaderMissingFile(t *testing.T) {
	t.Parallel()
	_, err := NewTxt(filepath.Join(t.TempDir(), "absent.txt")).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestCsvLoaderStripsQuotes(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "emails.csv", "\"a@b.co\"\n'b@b.co'\nc@b.co\n\"\"\n")

	got, err := NewCsv(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"a@b.co", "b@b.co", "c@b.co"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFuncAdapter(t *testing.T) {
	t.Parallel()
	src := Func(func(context.Context) ([]string, error) {
		return []string{"x@y.co"}, nil
	})
	got, err := src.Load(context.Background())
	if err != nil || len(got) != 1 || got[0] != "x@y.co" {
		t.Fatalf("got %v, %v", got, err)
	}
}
