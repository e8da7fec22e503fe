package usecase

import (
	"context"
	"fmt"
	"strings"

	"placements-assistant/internal/domain/entity"
	"placements-assistant/internal/domain/repository"
	"placements-assistant/internal/logger"
)

// StatsService manages structured hiring statistics.
type StatsService struct {
	writer repository.StatsWriter
	reader repository.StatsStore
	log    logger.Logger
}

func NewStatsService(w repository.StatsWriter, r repository.StatsStore, log logger.Logger) *StatsService {
	return &StatsService{
		writer: w,
		reader: r,
		log:    log.With(map[string]interface{}{"component": "stats"}),
	}
}

// AddStats stores records with upper-cased company names so they match the
// chatbot's stats filter.
func (s *StatsService) AddStats(ctx context.Context, records []entity.CompanyStats) ([]string, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no data provided", entity.ErrInvalidRequest)
	}

	normalized := make([]entity.CompanyStats, len(records))
	for i, rec := range records {
		name := strings.ToUpper(strings.TrimSpace(rec.CompanyName))
		if name == "" {
			return nil, fmt.Errorf("%w: record %d has no company_name", entity.ErrInvalidRequest, i)
		}
		rec.CompanyName = name
		normalized[i] = rec
	}

	ids, err := s.writer.InsertStats(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("inserting stats: %w", err)
	}
	s.log.Info("company stats added", map[string]interface{}{"records": len(ids)})
	return ids, nil
}

// ListStats returns the records matching an optional company name and year.
func (s *StatsService) ListStats(ctx context.Context, companyName string, year *int) ([]entity.CompanyStats, error) {
	var org *string
	if companyName != "" {
		org = &companyName
	}
	filter := BuildStatsFilter(entity.ExtractedEntities{Organization: org, Year: year})

	records, err := s.reader.FetchStats(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetching stats: %w", err)
	}
	return records, nil
}
