package api

import (
	"context"
	"errors"
	"strconv"

	"placements-assistant/internal/domain/entity"
	"placements-assistant/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type AnswerService interface {
	Execute(ctx context.Context, query string) (*entity.AnswerResponse, error)
}

type InsightsAdmin interface {
	AddCompany(ctx context.Context, company entity.CompanyInsight) ([]string, error)
	AddCompanies(ctx context.Context, companies []entity.CompanyInsight) ([]string, error)
	ListCompanies(ctx context.Context, companyName string) ([]entity.CompanyInsight, error)
	DeleteRecord(ctx context.Context, entryID, companyName string) error
	DeleteAll(ctx context.Context) error
}

type StatsAdmin interface {
	AddStats(ctx context.Context, records []entity.CompanyStats) ([]string, error)
	ListStats(ctx context.Context, companyName string, year *int) ([]entity.CompanyStats, error)
}

type ChatbotHandler struct {
	answers AnswerService
	log     logger.Logger
}

func NewChatbotHandler(answers AnswerService, log logger.Logger) *ChatbotHandler {
	return &ChatbotHandler{answers: answers, log: log}
}

func (h *ChatbotHandler) GetAnswer(c *fiber.Ctx) error {
	if !c.Context().QueryArgs().Has("query") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "query parameter is required"})
	}
	query := c.Query("query")

	resp, err := h.answers.Execute(c.UserContext(), query)
	if err != nil {
		h.log.WithError(err).Error("chatbot request failed", nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Error fetching answer: " + err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

type DashboardHandler struct {
	insights InsightsAdmin
	stats    StatsAdmin
	log      logger.Logger
}

func NewDashboardHandler(insights InsightsAdmin, stats StatsAdmin, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{insights: insights, stats: stats, log: log}
}

func (h *DashboardHandler) GetCompanyInsights(c *fiber.Ctx) error {
	companies, err := h.insights.ListCompanies(c.UserContext(), c.Query("company_name"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(companies)
}

func (h *DashboardHandler) AddCompanyInsights(c *fiber.Ctx) error {
	var req entity.CompanyInsight
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	ids, err := h.insights.AddCompany(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Data added successfully", "ids": ids})
}

func (h *DashboardHandler) AddAllCompanyInsights(c *fiber.Ctx) error {
	var req []entity.CompanyInsight
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	ids, err := h.insights.AddCompanies(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Data added successfully", "ids": ids})
}

func (h *DashboardHandler) DeleteCompanyInsightsRecord(c *fiber.Ctx) error {
	if err := h.insights.DeleteRecord(c.UserContext(), c.Query("entry_id"), c.Query("company_name")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Record deleted successfully"})
}

func (h *DashboardHandler) DeleteAllCompanyInsights(c *fiber.Ctx) error {
	if err := h.insights.DeleteAll(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "All data deleted successfully"})
}

func (h *DashboardHandler) AddCompanyStats(c *fiber.Ctx) error {
	var req []entity.CompanyStats
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	ids, err := h.stats.AddStats(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Data added successfully", "ids": ids})
}

func (h *DashboardHandler) GetCompanyStats(c *fiber.Ctx) error {
	var year *int
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "year must be an integer"})
		}
		year = &y
	}

	records, err := h.stats.ListStats(c.UserContext(), c.Query("company_name"), year)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(records)
}

// fail maps domain errors to HTTP status codes.
func (h *DashboardHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, entity.ErrInvalidRequest):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	case errors.Is(err, entity.ErrResourceNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": err.Error()})
	default:
		h.log.WithError(err).Error("dashboard request failed", map[string]interface{}{"path": c.Path()})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": entity.ErrInternalServer.Error()})
	}
}
