package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"placements-assistant/internal/domain/entity"
	"placements-assistant/internal/domain/repository"
	"placements-assistant/internal/logger"
	"placements-assistant/internal/metrics"

	"golang.org/x/sync/errgroup"
)

// VectorTopK is the number of documents requested from similarity search.
const VectorTopK = 5

// RetrievedContext is the output of both retrieval branches before fusion.
type RetrievedContext struct {
	Vector string
	Stats  string
}

// StatsResult carries the stats branch outcome. Err is set when the lookup failed;
// Context is then empty and the caller decides how to degrade.
type StatsResult struct {
	Context string
	Err     error
}

type ContextRetriever struct {
	embedder repository.Embedder
	docs     repository.DocumentStore
	stats    repository.StatsStore
	log      logger.Logger
}

func NewContextRetriever(emb repository.Embedder, docs repository.DocumentStore, stats repository.StatsStore, log logger.Logger) *ContextRetriever {
	return &ContextRetriever{
		embedder: emb,
		docs:     docs,
		stats:    stats,
		log:      log.With(map[string]interface{}{"component": "retriever"}),
	}
}

// Retrieve runs the vector and stats lookups concurrently. A vector failure is returned;
// a stats failure is logged and yields an empty stats context.
func (r *ContextRetriever) Retrieve(ctx context.Context, query string, ents entity.ExtractedEntities) (RetrievedContext, error) {
	var out RetrievedContext
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		vc, err := r.VectorContext(gctx, query)
		if err != nil {
			return err
		}
		out.Vector = vc
		return nil
	})

	g.Go(func() error {
		filter := BuildStatsFilter(ents)
		res := r.StatsContext(gctx, filter)
		if res.Err != nil {
			metrics.ObserveStatsFallback()
			r.log.WithError(res.Err).Warn("stats lookup failed, continuing without stats context", map[string]interface{}{
				"filter_company": derefString(filter.CompanyName),
				"filter_year":    derefInt(filter.Year),
			})
			return nil
		}
		out.Stats = res.Context
		return nil
	})

	if err := g.Wait(); err != nil {
		return RetrievedContext{}, err
	}
	return out, nil
}

// VectorContext embeds the query and joins the top documents in rank order.
func (r *ContextRetriever) VectorContext(ctx context.Context, query string) (string, error) {
	start := time.Now()
	defer metrics.ObserveRetrieval("vector", start)

	vector, err := r.embedder.CreateEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embedding generation failed: %w", err)
	}

	docs, err := r.docs.SimilaritySearch(ctx, vector, VectorTopK)
	if err != nil {
		return "", fmt.Errorf("vector search failed: %w", err)
	}
	if len(docs) > VectorTopK {
		docs = docs[:VectorTopK]
	}
	return strings.Join(docs, contextSeparator), nil
}

// StatsContext fetches the stats records matching filter and renders them.
func (r *ContextRetriever) StatsContext(ctx context.Context, filter entity.StatsFilter) StatsResult {
	start := time.Now()
	defer metrics.ObserveRetrieval("stats", start)

	records, err := r.stats.FetchStats(ctx, filter)
	if err != nil {
		return StatsResult{Err: fmt.Errorf("stats lookup failed: %w", err)}
	}
	return StatsResult{Context: RenderStats(records)}
}

// BuildStatsFilter turns extracted entities into an exact-match filter. The organization
// is upper-cased because stats records store company names in upper case.
func BuildStatsFilter(ents entity.ExtractedEntities) entity.StatsFilter {
	var f entity.StatsFilter
	if ents.Organization != nil {
		name := strings.ToUpper(*ents.Organization)
		f.CompanyName = &name
	}
	if ents.Year != nil {
		year := *ents.Year
		f.Year = &year
	}
	return f
}

// RenderStats renders each record as a short multi-line summary, records separated by a blank line.
func RenderStats(records []entity.CompanyStats) string {
	blocks := make([]string, 0, len(records))
	for _, rec := range records {
		blocks = append(blocks, renderStatsRecord(rec))
	}
	return strings.Join(blocks, contextSeparator)
}

func renderStatsRecord(rec entity.CompanyStats) string {
	branches := make([]string, 0, len(entity.BranchNames))
	for _, b := range rec.Branches.Counts() {
		branches = append(branches, fmt.Sprintf("%s: %d", b.Branch, b.Offers))
	}
	return fmt.Sprintf(
		"Company: %s, Year: %s\n"+
			"Salary: %s LPA, Internship PPOs: %s\n"+
			"Total Offers: %d\n"+
			"Branch-wise Offers: %s",
		rec.CompanyName, optionalInt(rec.Year),
		optionalFloat(rec.Salary), optionalInt(rec.InternshipPPO),
		rec.TotalOffers,
		strings.Join(branches, ", "),
	)
}

func optionalInt(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}

func optionalFloat(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
