package usecase

import (
	"context"
	"fmt"
	"strings"

	"placements-assistant/internal/domain/entity"
	"placements-assistant/internal/domain/repository"
	"placements-assistant/internal/logger"

	"github.com/google/uuid"
)

// InsightsService manages company role documents in the document store.
type InsightsService struct {
	repo     repository.InsightsRepository
	embedder repository.Embedder
	log      logger.Logger
}

func NewInsightsService(repo repository.InsightsRepository, emb repository.Embedder, log logger.Logger) *InsightsService {
	return &InsightsService{
		repo:     repo,
		embedder: emb,
		log:      log.With(map[string]interface{}{"component": "insights"}),
	}
}

// AddCompany embeds one document per role and stores them. It returns the new document ids.
func (s *InsightsService) AddCompany(ctx context.Context, company entity.CompanyInsight) ([]string, error) {
	return s.AddCompanies(ctx, []entity.CompanyInsight{company})
}

func (s *InsightsService) AddCompanies(ctx context.Context, companies []entity.CompanyInsight) ([]string, error) {
	if len(companies) == 0 {
		return nil, fmt.Errorf("%w: no data provided", entity.ErrInvalidRequest)
	}

	var docs []entity.RoleDocument
	for _, c := range companies {
		if strings.TrimSpace(c.CompanyName) == "" {
			return nil, fmt.Errorf("%w: companyName is required", entity.ErrInvalidRequest)
		}
		for _, role := range c.Roles {
			text := RenderRoleDocument(c, role)
			vector, err := s.embedder.CreateEmbedding(ctx, text)
			if err != nil {
				return nil, fmt.Errorf("embedding role %q of %q: %w", role.Role, c.CompanyName, err)
			}
			docs = append(docs, entity.RoleDocument{
				ID:          uuid.NewString(),
				CompanyName: c.CompanyName,
				CompanyDesc: c.CompanyDesc,
				Description: c.Description,
				Role:        role,
				Text:        text,
				Vector:      vector,
			})
		}
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no roles provided", entity.ErrInvalidRequest)
	}
	if err := s.repo.InsertRoles(ctx, docs); err != nil {
		return nil, fmt.Errorf("inserting role documents: %w", err)
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	s.log.Info("company insights added", map[string]interface{}{
		"companies": len(companies),
		"documents": len(docs),
	})
	return ids, nil
}

// ListCompanies groups stored role documents by company in first-seen order.
// With a non-empty name only that company (matched case-insensitively) is returned.
func (s *InsightsService) ListCompanies(ctx context.Context, companyName string) ([]entity.CompanyInsight, error) {
	docs, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing role documents: %w", err)
	}

	index := make(map[string]int)
	companies := make([]entity.CompanyInsight, 0)
	for _, d := range docs {
		if companyName != "" && !strings.EqualFold(d.CompanyName, companyName) {
			continue
		}
		i, ok := index[d.CompanyName]
		if !ok {
			i = len(companies)
			index[d.CompanyName] = i
			companies = append(companies, entity.CompanyInsight{
				CompanyName: d.CompanyName,
				Roles:       []entity.Role{},
			})
		}
		companies[i].CompanyDesc = d.CompanyDesc
		companies[i].Roles = append(companies[i].Roles, d.Role)
	}

	if companyName != "" && len(companies) == 0 {
		return nil, fmt.Errorf("%w: company %q", entity.ErrResourceNotFound, companyName)
	}
	return companies, nil
}

// DeleteRecord removes a single document by id, or every document of a company.
// The id wins when both are given.
func (s *InsightsService) DeleteRecord(ctx context.Context, entryID, companyName string) error {
	switch {
	case entryID != "":
		n, err := s.repo.CountByID(ctx, entryID)
		if err != nil {
			return fmt.Errorf("looking up entry %s: %w", entryID, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: entry %s", entity.ErrResourceNotFound, entryID)
		}
		if err := s.repo.DeleteByID(ctx, entryID); err != nil {
			return fmt.Errorf("deleting entry %s: %w", entryID, err)
		}
	case companyName != "":
		n, err := s.repo.CountByCompany(ctx, companyName)
		if err != nil {
			return fmt.Errorf("looking up company %q: %w", companyName, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: company %q", entity.ErrResourceNotFound, companyName)
		}
		if err := s.repo.DeleteByCompany(ctx, companyName); err != nil {
			return fmt.Errorf("deleting company %q: %w", companyName, err)
		}
	default:
		return fmt.Errorf("%w: at least one filter (entry_id or company_name) must be provided", entity.ErrInvalidRequest)
	}
	return nil
}

func (s *InsightsService) DeleteAll(ctx context.Context) error {
	n, err := s.repo.CountAll(ctx)
	if err != nil {
		return fmt.Errorf("counting documents: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: no data found", entity.ErrResourceNotFound)
	}
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("deleting all documents: %w", err)
	}
	s.log.Info("all company insights deleted", map[string]interface{}{"documents": n})
	return nil
}

// RenderRoleDocument builds the text that is embedded and returned by similarity search.
func RenderRoleDocument(c entity.CompanyInsight, role entity.Role) string {
	var sb strings.Builder
	sb.WriteString(c.Description + "\n")
	sb.WriteString("Company Name: " + c.CompanyName + "\n")
	sb.WriteString("Company Description: " + c.CompanyDesc + "\n")
	sb.WriteString("Role: " + role.Role + "\n")
	sb.WriteString("Job Description: " + role.JobDesc + "\n")
	sb.WriteString("Package: " + role.Package + "\n")
	sb.WriteString("Hiring Process:\n")
	sb.WriteString(strings.Join(role.RoundLines(), "\n"))
	return sb.String()
}
