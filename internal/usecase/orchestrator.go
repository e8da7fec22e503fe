package usecase

import (
	"context"

	"placements-assistant/internal/domain/entity"
	"placements-assistant/internal/domain/repository"
	"placements-assistant/internal/logger"
	"placements-assistant/internal/metrics"
)

type Orchestrator struct {
	cache      *CacheGate
	recognizer repository.EntityRecognizer
	retriever  *ContextRetriever
	generator  *AnswerGenerator
	log        logger.Logger
}

func NewOrchestrator(cache *CacheGate, ner repository.EntityRecognizer, retriever *ContextRetriever, generator *AnswerGenerator, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		cache:      cache,
		recognizer: ner,
		retriever:  retriever,
		generator:  generator,
		log:        log.With(map[string]interface{}{"component": "orchestrator"}),
	}
}

// Execute answers a student query. Errors are only returned for the retrieval path
// (entity extraction, embedding, vector search); generation failures come back as
// canned answers with source "llm".
func (u *Orchestrator) Execute(ctx context.Context, query string) (*entity.AnswerResponse, error) {
	// 1. Cache
	if cached, ok := u.cache.Lookup(ctx, query); ok {
		metrics.ObserveAnswer(string(entity.SourceCache))
		return cached, nil
	}

	// 2. Entities
	ents, err := extractEntities(ctx, u.recognizer, query)
	if err != nil {
		return nil, err
	}

	// 3. Vector + stats context
	retrieved, err := u.retriever.Retrieve(ctx, query, ents)
	if err != nil {
		return nil, err
	}

	// 4. Prompt and generation
	combined := CombineContext(retrieved.Vector, retrieved.Stats)
	prompt := BuildPrompt(combined, query)
	answer := u.generator.Generate(ctx, prompt)

	resp := entity.AnswerResponse{Answer: answer, Source: entity.SourceLLM}

	// 5. Cache write-back
	cached := u.cache.Store(ctx, query, resp)

	metrics.ObserveAnswer(string(entity.SourceLLM))
	u.log.Debug("answer generated", map[string]interface{}{
		"organization":   derefString(ents.Organization),
		"year":           derefInt(ents.Year),
		"vector_context": len(retrieved.Vector),
		"stats_context":  len(retrieved.Stats),
		"cached":         cached,
		"prompt_version": PromptVersion,
	})
	return &resp, nil
}
