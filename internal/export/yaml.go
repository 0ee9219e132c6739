package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
)

// YAMLExporter writes the session as a YAML document.
type YAMLExporter struct{}

func (e *YAMLExporter) Export(session domain.ChatSession, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	return enc.Encode(session)
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}

func (e *YAMLExporter) ContentType() string {
	return "application/yaml"
}
