package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
)

// WriteCSV serializes rows (a slice of one of the report row types) to path,
// creating parent directories as needed. Column names and order come from
// the row struct tags; NaN values are written literally as "NaN", which is
// the documented marker for sensitivities the model could not produce.
func WriteCSV(path string, rows interface{}) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(rows, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Preview prints the header and up to n rows to stdout, rendered exactly as
// they will land in the file.
func Preview(rows interface{}, n int) error {
	text, err := gocsv.MarshalString(rows)
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) > n+1 {
		lines = lines[:n+1]
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}
