package llm

import (
	"context"
	"encoding/json"
	"log/slog"
)

// State is the phase of the validated query loop.
type State int

const (
	// StateRequesting means a completion is about to be requested.
	StateRequesting State = iota
	// StateValidating means a JSON payload was extracted and is being checked.
	StateValidating
	// StateAccepted means the validator approved a payload.
	StateAccepted
	// StateExhausted means every try failed.
	StateExhausted
)

// Validator checks a candidate payload. On rejection it returns a message
// that is fed back to the model as corrective context on the next try.
type Validator func(payload json.RawMessage) (bool, string)

const (
	invalidFeedback = "\n\n PREVIOUS OUTPUT INVALID: "
	invalidSuffix   = "\nEnsure strict JSON compliance."
	notJSONFeedback = "\n\n PREVIOUS OUTPUT WAS NOT JSON.\nReturn ONLY valid JSON."
)

// QueryLoop drives a completer through up to 1+MaxRetries tries, appending
// validation feedback to the prompt between tries. The base prompt is never
// replaced; feedback is purely additive context.
type QueryLoop struct {
	client     Completer
	maxRetries int
	logger     *slog.Logger
}

// NewQueryLoop creates a validated query loop. maxRetries is the number of
// retries after the initial try; values below zero fall back to 3.
func NewQueryLoop(client Completer, maxRetries int, logger *slog.Logger) *QueryLoop {
	if maxRetries < 0 {
		maxRetries = 3
	}
	return &QueryLoop{client: client, maxRetries: maxRetries, logger: logger}
}

// Run returns the first validator-accepted payload, or nil when every try
// exhausts. Transport failures and non-JSON output count against the retry
// budget just like validation rejections; tries run strictly in sequence.
func (q *QueryLoop) Run(ctx context.Context, prompt string, maxTokens int, validate Validator) json.RawMessage {
	var (
		state    = StateRequesting
		attempt  = 0
		feedback = ""
		payload  json.RawMessage
	)

	for {
		switch state {
		case StateRequesting:
			if attempt > q.maxRetries {
				state = StateExhausted
				continue
			}
			if attempt > 0 {
				q.logger.Debug("retrying completion", "attempt", attempt)
			}
			attempt++

			raw, err := q.client.Complete(ctx, prompt+feedback, maxTokens)
			if err != nil {
				q.logger.Warn("completion failed", "attempt", attempt, "error", err)
				feedback = notJSONFeedback
				continue
			}

			var ok bool
			payload, ok = ExtractJSON(raw)
			if !ok {
				feedback = notJSONFeedback
				continue
			}
			state = StateValidating

		case StateValidating:
			valid, msg := validate(payload)
			if valid {
				state = StateAccepted
				continue
			}
			q.logger.Debug("payload rejected", "attempt", attempt, "reason", msg)
			feedback = invalidFeedback + msg + invalidSuffix
			state = StateRequesting

		case StateAccepted:
			return payload

		case StateExhausted:
			q.logger.Warn("validation failed after retries", "tries", q.maxRetries+1)
			return nil
		}
	}
}
