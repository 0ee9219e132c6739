// Package export renders chat sessions as downloadable transcripts.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
)

// Exporter writes one session in a specific format.
type Exporter interface {
	Export(session domain.ChatSession, w io.Writer) error
	Extension() string
	ContentType() string
}

// NewExporter creates a new exporter based on format.
func NewExporter(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: md, json, jsonl, yaml)", format)
	}
}

// Filename builds a download name for the session.
func Filename(session domain.ChatSession, e Exporter) string {
	return fmt.Sprintf("%s.%s", session.ID, e.Extension())
}
