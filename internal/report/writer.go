package report

import (
	"io"

	"github.com/nao1215/siteprofile/internal/model"
)

// Writer outputs a profile to its destination and returns the number of
// bytes written.
type Writer interface {
	Write(profile *model.Profile) (int, error)
}

// MultiWriter writes to multiple Writers in order.
// It is separate from io.MultiWriter because Writers take profiles, not bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the profile to every Writer and returns the total bytes
// written. It stops at the first error.
func (m *MultiWriter) Write(profile *model.Profile) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(profile)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// orDash returns "-" for a nil or empty value.
func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
