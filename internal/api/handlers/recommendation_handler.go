package handlers

import (
	"subtrack/internal/dto"
	"subtrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RecommendationHandler struct {
	recService         *service.RecommendationService
	interactionService *service.InteractionService
	logger             *zap.Logger
}

func NewRecommendationHandler(
	recService *service.RecommendationService,
	interactionService *service.InteractionService,
	logger *zap.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		recService:         recService,
		interactionService: interactionService,
		logger:             logger,
	}
}

// Recommend godoc
// @Summary AI recommendations
// @Description Ask the AI model for services that complement the current user's subscriptions
// @Tags recommendations
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.RecommendationsResponse
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/recommendations [post]
func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.recService.Recommend(c.Context(), userID)
	if err != nil {
		return writeError(c, h.logger, err, "An error occurred while generating recommendations")
	}

	return c.JSON(resp)
}

// RecordInteraction godoc
// @Summary Save or dismiss a recommendation
// @Description Record the user's action on a recommendation. A later action on the same name replaces it.
// @Tags recommendations
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.InteractionRequest true "Interaction"
// @Success 200 {object} dto.InteractionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/recommendations/interactions [post]
func (h *RecommendationHandler) RecordInteraction(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.InteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.interactionService.Record(c.Context(), userID, &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to record interaction")
	}

	return c.JSON(resp)
}

// ListInteractions godoc
// @Summary List recommendation interactions
// @Tags recommendations
// @Produce json
// @Security Bearer
// @Param action query string false "saved or dismissed"
// @Success 200 {array} dto.InteractionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/recommendations/interactions [get]
func (h *RecommendationHandler) ListInteractions(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	interactions, err := h.interactionService.List(c.Context(), userID, c.Query("action"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to list interactions")
	}

	return c.JSON(interactions)
}
