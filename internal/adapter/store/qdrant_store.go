package store

import (
	"context"
	"fmt"

	"placements-assistant/internal/domain/entity"
	"placements-assistant/internal/logger"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const scrollPageSize = 256

// QdrantStore is the document store. Role documents live in the insights collection with
// real embeddings; stats records live in the stats collection as payload-only points.
type QdrantStore struct {
	client             *qdrant.Client
	insightsCollection string
	statsCollection    string
	log                logger.Logger
}

func NewQdrantStore(client *qdrant.Client, insightsCollection, statsCollection string, log logger.Logger) *QdrantStore {
	return &QdrantStore{
		client:             client,
		insightsCollection: insightsCollection,
		statsCollection:    statsCollection,
		log:                log.With(map[string]interface{}{"component": "qdrant"}),
	}
}

// InitCollections creates both collections and their payload indexes when missing.
func (s *QdrantStore) InitCollections(ctx context.Context, dim uint64) error {
	if err := s.ensureCollection(ctx, s.insightsCollection, dim, qdrant.Distance_Cosine); err != nil {
		return err
	}
	// Qdrant needs a vector per point; stats points carry a constant one-dimensional placeholder.
	if err := s.ensureCollection(ctx, s.statsCollection, 1, qdrant.Distance_Dot); err != nil {
		return err
	}

	s.ensureIndex(ctx, s.insightsCollection, payloadCompanyName, qdrant.FieldType_FieldTypeKeyword)
	s.ensureIndex(ctx, s.statsCollection, payloadCompanyName, qdrant.FieldType_FieldTypeKeyword)
	s.ensureIndex(ctx, s.statsCollection, payloadYear, qdrant.FieldType_FieldTypeInteger)
	return nil
}

func (s *QdrantStore) ensureCollection(ctx context.Context, name string, dim uint64, distance qdrant.Distance) error {
	_, err := s.client.GetCollectionInfo(ctx, name)
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.NotFound {
		return fmt.Errorf("inspecting collection %s: %w", name, err)
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dim,
			Distance: distance,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	s.log.Info("collection created", map[string]interface{}{"collection": name, "dimension": dim})
	return nil
}

func (s *QdrantStore) ensureIndex(ctx context.Context, collection, field string, fieldType qdrant.FieldType) {
	_, err := s.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: collection,
		FieldName:      field,
		FieldType:      fieldType.Enum(),
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		// Usually the index already exists.
		s.log.Warn("could not create payload index", map[string]interface{}{
			"collection": collection,
			"field":      field,
			"error":      err.Error(),
		})
	}
}

// SimilaritySearch returns the document text of the k nearest role documents, best first.
func (s *QdrantStore) SimilaritySearch(ctx context.Context, vector []float32, k int) ([]string, error) {
	res, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.insightsCollection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query: %w", err)
	}

	docs := make([]string, 0, len(res))
	for _, hit := range res {
		if doc := hit.GetPayload()[payloadDocument].GetStringValue(); doc != "" {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (s *QdrantStore) InsertRoles(ctx context.Context, docs []entity.RoleDocument) error {
	points := make([]*qdrant.PointStruct, len(docs))
	for i, d := range docs {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(d.ID),
			Vectors: qdrant.NewVectors(d.Vector...),
			Payload: qdrant.NewValueMap(rolePayload(d)),
		}
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.insightsCollection,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert roles: %w", err)
	}
	return nil
}

func (s *QdrantStore) ListRoles(ctx context.Context) ([]entity.RoleDocument, error) {
	points, err := s.scrollAll(ctx, s.insightsCollection, nil)
	if err != nil {
		return nil, err
	}
	docs := make([]entity.RoleDocument, len(points))
	for i, p := range points {
		docs[i] = roleFromPayload(pointID(p.GetId()), p.GetPayload())
	}
	return docs, nil
}

func (s *QdrantStore) CountByID(ctx context.Context, id string) (uint64, error) {
	// Point ids are UUIDs; anything else cannot exist.
	if _, err := uuid.Parse(id); err != nil {
		return 0, nil
	}
	points, err := s.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: s.insightsCollection,
		Ids:            []*qdrant.PointId{qdrant.NewIDUUID(id)},
	})
	if err != nil {
		return 0, fmt.Errorf("qdrant get: %w", err)
	}
	return uint64(len(points)), nil
}

func (s *QdrantStore) CountByCompany(ctx context.Context, companyName string) (uint64, error) {
	return s.count(ctx, s.insightsCollection, companyFilter(companyName))
}

func (s *QdrantStore) CountAll(ctx context.Context) (uint64, error) {
	return s.count(ctx, s.insightsCollection, nil)
}

func (s *QdrantStore) DeleteByID(ctx context.Context, id string) error {
	return s.delete(ctx, s.insightsCollection, qdrant.NewPointsSelector(qdrant.NewIDUUID(id)))
}

func (s *QdrantStore) DeleteByCompany(ctx context.Context, companyName string) error {
	return s.delete(ctx, s.insightsCollection, qdrant.NewPointsSelectorFilter(companyFilter(companyName)))
}

func (s *QdrantStore) DeleteAll(ctx context.Context) error {
	return s.delete(ctx, s.insightsCollection, qdrant.NewPointsSelectorFilter(&qdrant.Filter{}))
}

// FetchStats returns every stats record matching filter; an empty filter returns all records.
func (s *QdrantStore) FetchStats(ctx context.Context, filter entity.StatsFilter) ([]entity.CompanyStats, error) {
	points, err := s.scrollAll(ctx, s.statsCollection, statsFilter(filter))
	if err != nil {
		return nil, err
	}
	records := make([]entity.CompanyStats, len(points))
	for i, p := range points {
		records[i] = statsFromPayload(pointID(p.GetId()), p.GetPayload())
	}
	return records, nil
}

func (s *QdrantStore) InsertStats(ctx context.Context, records []entity.CompanyStats) ([]string, error) {
	ids := make([]string, len(records))
	points := make([]*qdrant.PointStruct, len(records))
	for i, rec := range records {
		ids[i] = uuid.NewString()
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(ids[i]),
			Vectors: qdrant.NewVectors(1),
			Payload: qdrant.NewValueMap(statsPayload(rec)),
		}
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.statsCollection,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant upsert stats: %w", err)
	}
	return ids, nil
}

func (s *QdrantStore) scrollAll(ctx context.Context, collection string, filter *qdrant.Filter) ([]*qdrant.RetrievedPoint, error) {
	var (
		out    []*qdrant.RetrievedPoint
		offset *qdrant.PointId
	)
	for {
		resp, err := s.client.GetPointsClient().Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: collection,
			Filter:         filter,
			Offset:         offset,
			Limit:          qdrant.PtrOf(uint32(scrollPageSize)),
			WithPayload:    qdrant.NewWithPayload(true),
		})
		if err != nil {
			return nil, fmt.Errorf("qdrant scroll %s: %w", collection, err)
		}
		out = append(out, resp.GetResult()...)

		offset = resp.GetNextPageOffset()
		if offset == nil {
			return out, nil
		}
	}
}

func (s *QdrantStore) count(ctx context.Context, collection string, filter *qdrant.Filter) (uint64, error) {
	n, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: collection,
		Filter:         filter,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("qdrant count %s: %w", collection, err)
	}
	return n, nil
}

func (s *QdrantStore) delete(ctx context.Context, collection string, selector *qdrant.PointsSelector) error {
	_, err := s.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Wait:           qdrant.PtrOf(true),
		Points:         selector,
	})
	if err != nil {
		return fmt.Errorf("qdrant delete %s: %w", collection, err)
	}
	return nil
}

// Ping is used by the health check.
func (s *QdrantStore) Ping(ctx context.Context) error {
	if _, err := s.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant health check failed: %w", err)
	}
	return nil
}
