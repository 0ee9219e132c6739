package export

import (
	"encoding/json"
	"io"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
)

// JSONExporter writes the whole session as indented JSON.
type JSONExporter struct{}

func (e *JSONExporter) Export(session domain.ChatSession, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(session)
}

func (e *JSONExporter) Extension() string {
	return "json"
}

func (e *JSONExporter) ContentType() string {
	return "application/json"
}
