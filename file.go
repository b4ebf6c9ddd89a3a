package sheets

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// ReadFile reads every record of the file at path.
func ReadFile(path string, s *Schema, opts ...Option) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := s.NewReader(f, opts...).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// WriteFile renders records, header included, and replaces the file at path
// atomically: readers see either the old content or the complete new one.
func WriteFile(path string, s *Schema, records []*Record, opts ...Option) error {
	var buf bytes.Buffer
	w := s.NewWriter(&buf, opts...)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return atomic.WriteFile(path, &buf)
}
