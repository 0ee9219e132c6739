package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
)

// JSONLExporter writes one message per line.
type JSONLExporter struct{}

type jsonlLine struct {
	SessionID string        `json:"session_id"`
	ID        string        `json:"id"`
	Sender    domain.Sender `json:"sender"`
	Content   string        `json:"content"`
	Timestamp string        `json:"timestamp"`
}

func (e *JSONLExporter) Export(session domain.ChatSession, w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, msg := range session.Messages {
		line := jsonlLine{
			SessionID: session.ID,
			ID:        msg.ID,
			Sender:    msg.Sender,
			Content:   msg.Content,
			Timestamp: msg.Timestamp.UTC().Format(timeLayout),
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}
	return nil
}

func (e *JSONLExporter) Extension() string {
	return "jsonl"
}

func (e *JSONLExporter) ContentType() string {
	return "application/x-ndjson"
}
