// Package policy screens questions before they are forwarded upstream.
package policy

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/open-policy-agent/opa/rego"
)

// Decisions returned by the question policy.
const (
	DecisionAllow = "allow"
	DecisionBlock = "block"
)

// DefaultMaxQuestionLength is used when no limit is configured.
const DefaultMaxQuestionLength = 4000

// Engine is the OPA policy engine.
type Engine struct {
	query     rego.PreparedEvalQuery
	maxLength int
}

// Input is the document the policy evaluates.
type Input struct {
	Question  string `json:"question"`
	Length    int    `json:"length"`
	MaxLength int    `json:"max_length"`
}

// NewEngine prepares the policy once. maxLength <= 0 means DefaultMaxQuestionLength.
func NewEngine(ctx context.Context, policyContent string, maxLength int) (*Engine, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxQuestionLength
	}

	r := rego.New(
		rego.Query("data.question_policy.result"),
		rego.Module("question_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query, maxLength: maxLength}, nil
}

// Evaluate checks a question and returns the decision and, for a block, its reason.
func (e *Engine) Evaluate(ctx context.Context, question string) (string, string, error) {
	input := Input{
		Question:  question,
		Length:    utf8.RuneCountInString(question),
		MaxLength: e.maxLength,
	}

	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return DecisionAllow, "", nil
	}

	obj, ok := results[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return "", "", fmt.Errorf("unexpected policy result type %T", results[0].Expressions[0].Value)
	}

	decision, _ := obj["decision"].(string)
	reason, _ := obj["reason"].(string)
	if decision == "" {
		decision = DecisionAllow
	}
	return decision, reason, nil
}

// DefaultPolicy rejects blank and oversized questions.
const DefaultPolicy = `
package question_policy

default result = {"decision": "allow", "reason": ""}

result = {"decision": "block", "reason": "question is empty"} {
	trim_space(input.question) == ""
}

result = {"decision": "block", "reason": "question is too long"} {
	trim_space(input.question) != ""
	input.length > input.max_length
}
`
