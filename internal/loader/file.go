package loader

import (
	"bufio"
	"context"
	"os"
	"strings"
)

// TxtLoader reads one address per line from a plain text file. Blank lines
// are ignored.
type TxtLoader struct {
	path string
}

func NewTxt(path string) *TxtLoader { return &TxtLoader{path: path} }

func (l *TxtLoader) Load(ctx context.Context) ([]string, error) {
	return readLines(ctx, l.path, nil)
}

// CsvLoader reads one address per line from a single-column CSV export,
// stripping the quoting punctuation such exports wrap values in.
type CsvLoader struct {
	path string
}

func NewCsv(path string) *CsvLoader { return &CsvLoader{path: path} }

func (l *CsvLoader) Load(ctx context.Context) ([]string, error) {
	return readLines(ctx, l.path, func(line string) string {
		return strings.Trim(line, `"'`)
	})
}

func readLines(ctx context.Context, path string, clean func(string) string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var emails []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(sc.Text())
		if clean != nil {
			line = clean(line)
		}
		if line == "" {
			continue
		}
		emails = append(emails, line)
	}
	return emails, sc.Err()
}
