package usecase

import (
	"context"
	"fmt"
	"strconv"

	"placements-assistant/internal/domain/entity"
	"placements-assistant/internal/domain/repository"
)

// FoldEntities reduces NER spans to at most one organization and one year.
// Spans are applied in order and a later span of the same label overwrites an earlier one.
// A DATE span only counts when its text is made of ASCII digits; other DATE spans leave
// the current year untouched.
func FoldEntities(spans []entity.Span) entity.ExtractedEntities {
	var out entity.ExtractedEntities
	for _, s := range spans {
		switch s.Label {
		case entity.LabelOrganization:
			org := s.Text
			out.Organization = &org
		case entity.LabelDate:
			if year, ok := parseYear(s.Text); ok {
				out.Year = &year
			}
		}
	}
	return out
}

func parseYear(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return year, true
}

func extractEntities(ctx context.Context, ner repository.EntityRecognizer, query string) (entity.ExtractedEntities, error) {
	spans, err := ner.Recognize(ctx, query)
	if err != nil {
		return entity.ExtractedEntities{}, fmt.Errorf("entity extraction failed: %w", err)
	}
	return FoldEntities(spans), nil
}
