package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/driftgate/internal/drift"
)

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *drift.Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "annotations":
		return &AnnotationWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown":
		return &MarkdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteToFile writes the report to path, replacing any existing file.
func WriteToFile(report *drift.Report, format, path string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := writer.Write(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
