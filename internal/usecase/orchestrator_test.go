package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"placements-assistant/internal/domain/entity"
	"placements-assistant/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipeline struct {
	cache     *fakeCache
	ner       *fakeRecognizer
	embedder  *fakeEmbedder
	docs      *fakeDocs
	stats     *fakeStats
	completer *fakeCompleter
	orch      *Orchestrator
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	p := &pipeline{
		cache:     newFakeCache(),
		ner:       &fakeRecognizer{},
		embedder:  &fakeEmbedder{},
		docs:      &fakeDocs{},
		stats:     &fakeStats{},
		completer: &fakeCompleter{},
	}
	log := logger.NewTestLogger(t)
	p.orch = NewOrchestrator(
		NewCacheGate(p.cache, log),
		p.ner,
		NewContextRetriever(p.embedder, p.docs, p.stats, log),
		NewAnswerGenerator(p.completer, time.Second, log),
		log,
	)
	return p
}

func TestOrchestrator_CacheHitSkipsPipeline(t *testing.T) {
	p := newPipeline(t)
	p.cache.entries["When does Infosys visit?"] = entity.CachedAnswer{Answer: "Every August."}

	resp, err := p.orch.Execute(context.Background(), "When does Infosys visit?")
	require.NoError(t, err)

	assert.Equal(t, "Every August.", resp.Answer)
	assert.Equal(t, entity.SourceCache, resp.Source)
	assert.Zero(t, p.ner.calls)
	assert.Zero(t, p.embedder.calls)
	assert.Zero(t, p.docs.calls)
	assert.Zero(t, p.stats.calls)
	assert.Zero(t, p.completer.calls)
	assert.Zero(t, p.cache.sets)
}

func TestOrchestrator_GoogleScenario(t *testing.T) {
	p := newPipeline(t)
	query := "What package does Google offer for Software Engineer?"
	googleDoc := "Company Name: Google\nRole: Software Engineer\nPackage: 32 LPA"
	salary := 32.0

	p.ner.spans = []entity.Span{{Text: "Google", Label: "ORG"}, {Text: "Software Engineer", Label: "WORK_OF_ART"}}
	p.docs.docs = []string{googleDoc}
	p.stats.records = []entity.CompanyStats{{CompanyName: "GOOGLE", Year: intPtr(2024), Salary: &salary, TotalOffers: 4}}
	p.completer.answer = "Google offers a package of 32 LPA for Software Engineers."

	resp, err := p.orch.Execute(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, entity.SourceLLM, resp.Source)
	assert.Equal(t, p.completer.answer, resp.Answer)

	require.NotNil(t, p.stats.filter.CompanyName)
	assert.Equal(t, "GOOGLE", *p.stats.filter.CompanyName)
	assert.Nil(t, p.stats.filter.Year)

	require.Len(t, p.completer.prompts, 1)
	assert.Contains(t, p.completer.prompts[0], googleDoc)
	assert.Contains(t, p.completer.prompts[0], "Company: GOOGLE, Year: 2024")
	assert.Contains(t, p.completer.prompts[0], query)

	assert.Equal(t, 1, p.embedder.calls)
	assert.Equal(t, 1, p.docs.calls)
	assert.Equal(t, VectorTopK, p.docs.k)

	cached, ok := p.cache.entries[query]
	require.True(t, ok)
	assert.Equal(t, p.completer.answer, cached.Answer)
}

func TestOrchestrator_EmptyContextFallbackNotCached(t *testing.T) {
	p := newPipeline(t)
	p.completer.answer = FallbackSentence

	resp, err := p.orch.Execute(context.Background(), "hello there")
	require.NoError(t, err)

	assert.Equal(t, FallbackSentence, resp.Answer)
	assert.Equal(t, entity.SourceLLM, resp.Source)
	assert.Equal(t, 1, p.completer.calls, "prompt is still sent with an empty context")
	assert.True(t, p.stats.filter.IsEmpty(), "no entities means an unfiltered stats fetch")
	assert.Zero(t, p.cache.sets)
	assert.Empty(t, p.cache.entries)
}

func TestOrchestrator_StatusErrorNotCached(t *testing.T) {
	p := newPipeline(t)
	p.docs.docs = []string{"some doc"}
	p.completer.err = &entity.CompletionStatusError{StatusCode: 503}

	resp, err := p.orch.Execute(context.Background(), "Which companies hire ECE?")
	require.NoError(t, err)

	assert.Equal(t, AnswerUnavailable, resp.Answer)
	assert.Equal(t, entity.SourceLLM, resp.Source)
	assert.Zero(t, p.cache.sets)
}

func TestOrchestrator_StatsFailureIsSoft(t *testing.T) {
	p := newPipeline(t)
	p.docs.docs = []string{"TCS hires for Digital roles."}
	p.stats.err = errors.New("collection unavailable")
	p.completer.answer = "TCS hires for Digital roles."

	resp, err := p.orch.Execute(context.Background(), "Tell me about TCS")
	require.NoError(t, err)

	assert.Equal(t, entity.SourceLLM, resp.Source)
	require.Len(t, p.completer.prompts, 1)
	assert.Contains(t, p.completer.prompts[0], "TCS hires for Digital roles.")
	assert.NotContains(t, p.completer.prompts[0], "Branch-wise Offers")
}

func TestOrchestrator_RetrievalFailuresAreFatal(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(p *pipeline)
		wantErr string
	}{
		{
			name:    "ner",
			setup:   func(p *pipeline) { p.ner.err = errors.New("model offline") },
			wantErr: "entity extraction failed",
		},
		{
			name:    "embedding",
			setup:   func(p *pipeline) { p.embedder.err = errors.New("quota") },
			wantErr: "embedding generation failed",
		},
		{
			name:    "vector store",
			setup:   func(p *pipeline) { p.docs.err = errors.New("connection refused") },
			wantErr: "vector search failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPipeline(t)
			tt.setup(p)

			resp, err := p.orch.Execute(context.Background(), "Amazon 2023 offers")
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Zero(t, p.completer.calls)
			assert.Zero(t, p.cache.sets)
		})
	}
}

func TestOrchestrator_CacheReadErrorIsMiss(t *testing.T) {
	p := newPipeline(t)
	p.cache.getErr = errors.New("redis down")
	p.completer.answer = "Answer"

	resp, err := p.orch.Execute(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, entity.SourceLLM, resp.Source)
	assert.Equal(t, 1, p.completer.calls)
}

func TestOrchestrator_QueryKeyIsNotNormalized(t *testing.T) {
	p := newPipeline(t)
	p.cache.entries["google package"] = entity.CachedAnswer{Answer: "cached"}
	p.completer.answer = "fresh"

	resp, err := p.orch.Execute(context.Background(), "Google package")
	require.NoError(t, err)
	assert.Equal(t, entity.SourceLLM, resp.Source)
	assert.Equal(t, "fresh", resp.Answer)
}
