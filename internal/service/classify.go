package service

import (
	"context"
	"errors"
	"strings"

	"github.com/riyan-hx/Lumid.ai/internal/adapter/answer"
)

const (
	prefixTimeout     = "The request timed out. "
	prefixUnreachable = "Unable to reach the server. "
	prefixNetwork     = "Network connection issue. "
	prefixGeneric     = "I'm having trouble connecting right now. "

	offlineNotice = "Using offline mode for now."
)

// failureBanner builds the user-facing banner for a failed remote call.
// Matching on error text is kept for errors that carry no kind.
func failureBanner(err error) string {
	return failurePrefix(err) + offlineNotice
}

func failurePrefix(err error) string {
	text := strings.ToLower(err.Error())

	var remote *answer.RemoteAnswerError
	if errors.As(err, &remote) {
		switch remote.Kind {
		case answer.KindTransport:
			if remote.Timeout() || strings.Contains(text, "timeout") {
				return prefixTimeout
			}
			return prefixUnreachable
		case answer.KindStatus:
			// Only the error field of the reply counts; details carry upstream noise.
			text = strings.ToLower(remote.Message)
		}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), strings.Contains(text, "timeout"):
		return prefixTimeout
	case strings.Contains(text, "network"):
		return prefixNetwork
	default:
		return prefixGeneric
	}
}
