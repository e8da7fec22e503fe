package usecase

import (
	"context"
	"sync"

	"placements-assistant/internal/domain/entity"
)

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]entity.CachedAnswer
	getErr  error
	setErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]entity.CachedAnswer)}
}

func (c *fakeCache) Get(ctx context.Context, query string) (*entity.CachedAnswer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	v, ok := c.entries[query]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (c *fakeCache) Set(ctx context.Context, query string, answer entity.CachedAnswer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[query] = answer
	return nil
}

type fakeRecognizer struct {
	spans []entity.Span
	err   error
	calls int
}

func (r *fakeRecognizer) Recognize(ctx context.Context, text string) ([]entity.Span, error) {
	r.calls++
	return r.spans, r.err
}

type fakeEmbedder struct {
	mu    sync.Mutex
	err   error
	calls int
	texts []string
}

func (e *fakeEmbedder) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.texts = append(e.texts, text)
	if e.err != nil {
		return nil, e.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeDocs struct {
	docs  []string
	err   error
	calls int
	k     int
}

func (d *fakeDocs) SimilaritySearch(ctx context.Context, vector []float32, k int) ([]string, error) {
	d.calls++
	d.k = k
	return d.docs, d.err
}

type fakeStats struct {
	records []entity.CompanyStats
	err     error
	calls   int
	filter  entity.StatsFilter
}

func (s *fakeStats) FetchStats(ctx context.Context, filter entity.StatsFilter) ([]entity.CompanyStats, error) {
	s.calls++
	s.filter = filter
	return s.records, s.err
}

type fakeCompleter struct {
	answer  string
	err     error
	calls   int
	prompts []string
	block   bool
}

func (c *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.calls++
	c.prompts = append(c.prompts, prompt)
	if c.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return c.answer, c.err
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
