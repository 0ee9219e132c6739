// Package upstream provides the answerers the boundary proxy forwards to.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/riyan-hx/Lumid.ai/internal/adapter/answer"
)

// DefaultSystemPrompt frames the assistant when none is configured.
const DefaultSystemPrompt = "You are Lumid, a warm and supportive emotional wellbeing assistant. Answer with empathy and practical, gentle guidance."

// OpenAIAnswerer answers questions with an OpenAI-compatible chat completion API.
type OpenAIAnswerer struct {
	client       *openai.Client
	model        string
	systemPrompt string
}

// Ensure OpenAIAnswerer implements answer.AnswerClient.
var _ answer.AnswerClient = (*OpenAIAnswerer)(nil)

// NewOpenAI creates an answerer. baseURL may be empty for the public API.
func NewOpenAI(apiKey, baseURL, model, systemPrompt string, timeout time.Duration) *OpenAIAnswerer {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	config.HTTPClient = &http.Client{Timeout: timeout}
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &OpenAIAnswerer{
		client:       openai.NewClientWithConfig(config),
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// FetchAnswer sends the question as a single user message.
func (a *OpenAIAnswerer) FetchAnswer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", answer.ErrEmptyQuestion
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: a.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &answer.RemoteAnswerError{
				Kind:       answer.KindStatus,
				StatusCode: apiErr.HTTPStatusCode,
				Message:    fmt.Sprintf("API responded with status: %d", apiErr.HTTPStatusCode),
				Details:    apiErr.Message,
			}
		}
		return "", &answer.RemoteAnswerError{
			Kind:    answer.KindTransport,
			Message: "failed to create chat completion",
			Err:     err,
		}
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &answer.RemoteAnswerError{Kind: answer.KindPayload, Message: answer.MsgInvalidFormat}
	}
	return resp.Choices[0].Message.Content, nil
}
