package upstream

import (
	"fmt"
	"strings"
	"time"

	"github.com/riyan-hx/Lumid.ai/internal/adapter/answer"
)

// Provider names accepted by New.
const (
	ProviderQuery  = "query"
	ProviderOpenAI = "openai"
)

// Options holds the settings needed by every provider.
type Options struct {
	Provider     string
	URL          string
	Timeout      time.Duration
	APIKey       string
	BaseURL      string
	Model        string
	SystemPrompt string
}

// New creates the answerer the proxy forwards questions to.
func New(opts Options) (answer.AnswerClient, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderQuery:
		if opts.URL == "" {
			return nil, fmt.Errorf("upstream url is required for provider %q", ProviderQuery)
		}
		return answer.NewClient(opts.URL, opts.Timeout, answer.WithStatusMessage(func(code int) string {
			return fmt.Sprintf("API responded with status: %d", code)
		})), nil
	case ProviderOpenAI:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for provider %q", ProviderOpenAI)
		}
		return NewOpenAI(opts.APIKey, opts.BaseURL, opts.Model, opts.SystemPrompt, opts.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported upstream provider: %s (supported: %s, %s)", opts.Provider, ProviderQuery, ProviderOpenAI)
	}
}
