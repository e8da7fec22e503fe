package usecase

import (
	"context"
	"errors"
	"time"

	"placements-assistant/internal/domain/entity"
	"placements-assistant/internal/domain/repository"
	"placements-assistant/internal/logger"
	"placements-assistant/internal/metrics"
)

// Canned answers returned in place of a generated one when completion fails.
const (
	AnswerMalformedResponse = "Sorry, I couldn't understand the response from the model."
	AnswerUnavailable       = "Sorry, I couldn't generate a response right now."
	AnswerConnectionFailed  = "Sorry, something went wrong while connecting to the LLM."
)

const (
	failureMalformed  = "malformed_response"
	failureStatus     = "bad_status"
	failureConnection = "connection"
)

// AnswerGenerator calls the completion service and never lets an error escape:
// every failure becomes one of the canned answers above.
type AnswerGenerator struct {
	completer repository.Completer
	timeout   time.Duration // Safety cap per completion; 0 disables it
	log       logger.Logger
}

func NewAnswerGenerator(c repository.Completer, timeout time.Duration, log logger.Logger) *AnswerGenerator {
	return &AnswerGenerator{
		completer: c,
		timeout:   timeout,
		log:       log.With(map[string]interface{}{"component": "answer_generator"}),
	}
}

func (g *AnswerGenerator) Generate(ctx context.Context, prompt string) string {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	answer, err := g.completer.Complete(ctx, prompt)
	if err == nil {
		return answer
	}

	class, canned := classifyCompletionError(err)
	metrics.ObserveGenerationFailure(class)
	g.log.WithError(err).Error("completion failed", map[string]interface{}{
		"failure_class": class,
	})
	return canned
}

func classifyCompletionError(err error) (string, string) {
	var statusErr *entity.CompletionStatusError
	switch {
	case errors.As(err, &statusErr):
		return failureStatus, AnswerUnavailable
	case errors.Is(err, entity.ErrMalformedCompletion):
		return failureMalformed, AnswerMalformedResponse
	default:
		// Transport errors, timeouts and cancellations.
		return failureConnection, AnswerConnectionFailed
	}
}
