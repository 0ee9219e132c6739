package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
)

const timeLayout = time.RFC3339

// MarkdownExporter writes a human-readable transcript.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(session domain.ChatSession, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", session.Title)
	fmt.Fprintf(&b, "**Session:** %s  \n", session.ID)
	fmt.Fprintf(&b, "**Created:** %s  \n", session.CreatedAt.UTC().Format(timeLayout))
	fmt.Fprintf(&b, "**Messages:** %d\n\n", len(session.Messages))
	b.WriteString("---\n\n")

	for i, msg := range session.Messages {
		fmt.Fprintf(&b, "**%s:** (%s)\n\n%s\n\n", speaker(msg.Sender), msg.Timestamp.UTC().Format(timeLayout), escapeMarkdown(msg.Content))
		if i < len(session.Messages)-1 {
			b.WriteString("---\n\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func speaker(s domain.Sender) string {
	if s == domain.SenderAssistant {
		return "Lumid"
	}
	return "You"
}

// escapeMarkdown escapes emphasis markers outside fenced code blocks.
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	inCodeBlock := false

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "```"):
			inCodeBlock = !inCodeBlock
		case inCodeBlock:
		default:
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			lines[i] = line
		}
	}
	return strings.Join(lines, "\n")
}

func (e *MarkdownExporter) Extension() string {
	return "md"
}

func (e *MarkdownExporter) ContentType() string {
	return "text/markdown; charset=utf-8"
}
