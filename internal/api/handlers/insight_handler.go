package handlers

import (
	"subtrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InsightHandler struct {
	insightService *service.InsightService
	logger         *zap.Logger
}

func NewInsightHandler(insightService *service.InsightService, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
		logger:         logger,
	}
}

// Analyze godoc
// @Summary AI spending insights
// @Description Summarize the current user's subscriptions and ask the AI model for insights
// @Tags insights
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.InsightResponse
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/insights/analyze [post]
func (h *InsightHandler) Analyze(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.insightService.Analyze(c.Context(), userID)
	if err != nil {
		return writeError(c, h.logger, err, "An error occurred during analysis")
	}

	return c.JSON(resp)
}
