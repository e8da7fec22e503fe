package repository

import (
	"context"
	"placements-assistant/internal/domain/entity"
)

// DocumentStore is the semantic side of the document store.
type DocumentStore interface {
	SimilaritySearch(ctx context.Context, vector []float32, k int) ([]string, error)
}

// StatsStore is the structured side of the document store.
type StatsStore interface {
	FetchStats(ctx context.Context, filter entity.StatsFilter) ([]entity.CompanyStats, error)
}

// InsightsRepository covers record management for company role documents.
type InsightsRepository interface {
	InsertRoles(ctx context.Context, docs []entity.RoleDocument) error
	ListRoles(ctx context.Context) ([]entity.RoleDocument, error)
	CountByID(ctx context.Context, id string) (uint64, error)
	CountByCompany(ctx context.Context, companyName string) (uint64, error)
	CountAll(ctx context.Context) (uint64, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByCompany(ctx context.Context, companyName string) error
	DeleteAll(ctx context.Context) error
}

type StatsWriter interface {
	InsertStats(ctx context.Context, records []entity.CompanyStats) ([]string, error)
}

type ResponseCache interface {
	// Get returns nil and no error when the key is absent.
	Get(ctx context.Context, query string) (*entity.CachedAnswer, error)
	Set(ctx context.Context, query string, answer entity.CachedAnswer) error
}

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]entity.Span, error)
}
