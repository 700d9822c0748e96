package output

import (
	"fmt"
	"io"

	"github.com/dshills/envhook/internal/runner"
)

// Formats lists the accepted format names.
var Formats = []string{"text", "json"}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *runner.Report) error
}

// GetWriter returns a writer for the specified format. color only affects
// the text format.
func GetWriter(format string, color bool) (Writer, error) {
	switch format {
	case "", "text":
		return &TextWriter{Color: color}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
