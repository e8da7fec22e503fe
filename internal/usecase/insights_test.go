package usecase

import (
	"context"
	"errors"
	"testing"

	"placements-assistant/internal/domain/entity"
	"placements-assistant/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInsightsRepo struct {
	docs      []entity.RoleDocument
	insertErr error
}

func (r *fakeInsightsRepo) InsertRoles(ctx context.Context, docs []entity.RoleDocument) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.docs = append(r.docs, docs...)
	return nil
}

func (r *fakeInsightsRepo) ListRoles(ctx context.Context) ([]entity.RoleDocument, error) {
	return r.docs, nil
}

func (r *fakeInsightsRepo) CountByID(ctx context.Context, id string) (uint64, error) {
	var n uint64
	for _, d := range r.docs {
		if d.ID == id {
			n++
		}
	}
	return n, nil
}

func (r *fakeInsightsRepo) CountByCompany(ctx context.Context, name string) (uint64, error) {
	var n uint64
	for _, d := range r.docs {
		if d.CompanyName == name {
			n++
		}
	}
	return n, nil
}

func (r *fakeInsightsRepo) CountAll(ctx context.Context) (uint64, error) {
	return uint64(len(r.docs)), nil
}

func (r *fakeInsightsRepo) DeleteByID(ctx context.Context, id string) error {
	return r.filter(func(d entity.RoleDocument) bool { return d.ID != id })
}

func (r *fakeInsightsRepo) DeleteByCompany(ctx context.Context, name string) error {
	return r.filter(func(d entity.RoleDocument) bool { return d.CompanyName != name })
}

func (r *fakeInsightsRepo) DeleteAll(ctx context.Context) error {
	r.docs = nil
	return nil
}

func (r *fakeInsightsRepo) filter(keep func(entity.RoleDocument) bool) error {
	out := r.docs[:0]
	for _, d := range r.docs {
		if keep(d) {
			out = append(out, d)
		}
	}
	r.docs = out
	return nil
}

func googleInsight() entity.CompanyInsight {
	return entity.CompanyInsight{
		CompanyName: "Google",
		CompanyDesc: "Search and cloud",
		Description: "Campus drive 2024",
		Roles: []entity.Role{
			{
				Role:    "Software Engineer",
				JobDesc: "Backend services",
				Package: "32 LPA",
				Rounds:  map[string]string{"2": "Technical", "1": "Online test", "10": "HR"},
			},
			{Role: "SRE", JobDesc: "Reliability", Package: "30 LPA", Rounds: map[string]string{}},
		},
	}
}

func TestRenderRoleDocument(t *testing.T) {
	c := googleInsight()
	got := RenderRoleDocument(c, c.Roles[0])

	want := "Campus drive 2024\n" +
		"Company Name: Google\n" +
		"Company Description: Search and cloud\n" +
		"Role: Software Engineer\n" +
		"Job Description: Backend services\n" +
		"Package: 32 LPA\n" +
		"Hiring Process:\n" +
		"Round 1: Online test\nRound 2: Technical\nRound 10: HR"
	assert.Equal(t, want, got)
}

func TestInsightsService_AddAndList(t *testing.T) {
	repo := &fakeInsightsRepo{}
	emb := &fakeEmbedder{}
	svc := NewInsightsService(repo, emb, logger.NewNoOpLogger())
	ctx := context.Background()

	ids, err := svc.AddCompany(ctx, googleInsight())
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
	assert.Equal(t, 2, emb.calls)
	assert.Contains(t, emb.texts[0], "Role: Software Engineer")

	_, err = svc.AddCompanies(ctx, []entity.CompanyInsight{{CompanyName: "Zoho", Roles: []entity.Role{{Role: "Dev"}}}})
	require.NoError(t, err)

	all, err := svc.ListCompanies(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Google", all[0].CompanyName)
	assert.Len(t, all[0].Roles, 2)
	assert.Equal(t, "Zoho", all[1].CompanyName)

	one, err := svc.ListCompanies(ctx, "google")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Google", one[0].CompanyName)

	_, err = svc.ListCompanies(ctx, "Amazon")
	assert.ErrorIs(t, err, entity.ErrResourceNotFound)
}

func TestInsightsService_AddValidation(t *testing.T) {
	svc := NewInsightsService(&fakeInsightsRepo{}, &fakeEmbedder{}, logger.NewNoOpLogger())
	ctx := context.Background()

	_, err := svc.AddCompanies(ctx, nil)
	assert.ErrorIs(t, err, entity.ErrInvalidRequest)

	_, err = svc.AddCompany(ctx, entity.CompanyInsight{CompanyName: " "})
	assert.ErrorIs(t, err, entity.ErrInvalidRequest)

	_, err = svc.AddCompany(ctx, entity.CompanyInsight{CompanyName: "NoRoles"})
	assert.ErrorIs(t, err, entity.ErrInvalidRequest)
}

func TestInsightsService_AddEmbeddingFailure(t *testing.T) {
	repo := &fakeInsightsRepo{}
	svc := NewInsightsService(repo, &fakeEmbedder{err: errors.New("quota")}, logger.NewNoOpLogger())

	_, err := svc.AddCompany(context.Background(), googleInsight())
	require.Error(t, err)
	assert.Empty(t, repo.docs)
}

func TestInsightsService_Delete(t *testing.T) {
	repo := &fakeInsightsRepo{}
	svc := NewInsightsService(repo, &fakeEmbedder{}, logger.NewNoOpLogger())
	ctx := context.Background()

	ids, err := svc.AddCompany(ctx, googleInsight())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteRecord(ctx, "", ""), entity.ErrInvalidRequest)
	assert.ErrorIs(t, svc.DeleteRecord(ctx, "missing-id", ""), entity.ErrResourceNotFound)
	assert.ErrorIs(t, svc.DeleteRecord(ctx, "", "Amazon"), entity.ErrResourceNotFound)

	require.NoError(t, svc.DeleteRecord(ctx, ids[0], "Amazon"), "entry id takes precedence")
	assert.Len(t, repo.docs, 1)

	require.NoError(t, svc.DeleteRecord(ctx, "", "Google"))
	assert.Empty(t, repo.docs)

	assert.ErrorIs(t, svc.DeleteAll(ctx), entity.ErrResourceNotFound)
}

type fakeStatsWriter struct {
	records []entity.CompanyStats
}

func (w *fakeStatsWriter) InsertStats(ctx context.Context, records []entity.CompanyStats) ([]string, error) {
	w.records = append(w.records, records...)
	ids := make([]string, len(records))
	for i := range records {
		ids[i] = records[i].CompanyName
	}
	return ids, nil
}

func TestStatsService(t *testing.T) {
	w := &fakeStatsWriter{}
	r := &fakeStats{}
	svc := NewStatsService(w, r, logger.NewNoOpLogger())
	ctx := context.Background()

	_, err := svc.AddStats(ctx, nil)
	assert.ErrorIs(t, err, entity.ErrInvalidRequest)

	_, err = svc.AddStats(ctx, []entity.CompanyStats{{CompanyName: ""}})
	assert.ErrorIs(t, err, entity.ErrInvalidRequest)

	ids, err := svc.AddStats(ctx, []entity.CompanyStats{{CompanyName: " Google ", Year: intPtr(2024)}})
	require.NoError(t, err)
	assert.Equal(t, []string{"GOOGLE"}, ids)
	assert.Equal(t, "GOOGLE", w.records[0].CompanyName)

	_, err = svc.ListStats(ctx, "google", intPtr(2024))
	require.NoError(t, err)
	assert.Equal(t, "GOOGLE", *r.filter.CompanyName)
	assert.Equal(t, 2024, *r.filter.Year)
}
