// Package answer provides clients for the remote question-answering service.
package answer

import "context"

// AnswerClient defines the interface for fetching an answer to one question.
type AnswerClient interface {
	// FetchAnswer sends the question and returns a non-empty answer, or a
	// *RemoteAnswerError describing why no answer could be obtained.
	FetchAnswer(ctx context.Context, question string) (string, error)
}

// Ensure the implementations satisfy AnswerClient.
var (
	_ AnswerClient = (*Client)(nil)
	_ AnswerClient = (*MockClient)(nil)
	_ AnswerClient = (*OfflineClient)(nil)
)

// Request is the JSON body sent to the answer endpoint.
type Request struct {
	Question string `json:"question"`
}

// Response is the JSON body returned by the answer endpoint. Error and Details
// are only set on failure.
type Response struct {
	Answer  string `json:"answer,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}
