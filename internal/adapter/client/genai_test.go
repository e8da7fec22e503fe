package client

import (
	"errors"
	"testing"

	"placements-assistant/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestParseSpans(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []entity.Span
	}{
		{
			name: "plain array",
			raw:  `[{"text": "Google", "label": "ORG"}, {"text": "2024", "label": "DATE"}]`,
			want: []entity.Span{{Text: "Google", Label: "ORG"}, {Text: "2024", Label: "DATE"}},
		},
		{
			name: "fenced",
			raw:  "```json\n[{\"text\": \"TCS\", \"label\": \"ORG\"}]\n```",
			want: []entity.Span{{Text: "TCS", Label: "ORG"}},
		},
		{name: "empty array", raw: `[]`, want: []entity.Span{}},
		{name: "blank", raw: "  ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSpans(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseSpans(`{"ORG": "Google"}`)
	assert.Error(t, err)
}

func TestCompletionError(t *testing.T) {
	err := completionError(genai.APIError{Code: 429, Message: "quota exceeded"})
	var statusErr *entity.CompletionStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 429, statusErr.StatusCode)
	assert.Equal(t, "quota exceeded", statusErr.Body)

	err = completionError(errors.New("dial tcp: connection refused"))
	assert.False(t, errors.As(err, &statusErr))
	assert.NotErrorIs(t, err, entity.ErrMalformedCompletion)
}
