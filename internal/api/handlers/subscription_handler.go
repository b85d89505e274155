package handlers

import (
	"subtrack/internal/dto"
	"subtrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	subService *service.SubscriptionService
	logger     *zap.Logger
}

func NewSubscriptionHandler(subService *service.SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subService: subService,
		logger:     logger,
	}
}

// CreateSubscription godoc
// @Summary Create subscription
// @Description Add a subscription for the current user
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.SubscriptionRequest true "Subscription"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.SubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.subService.Create(c.Context(), userID, &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create subscription")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListSubscriptions godoc
// @Summary List subscriptions
// @Description List the current user's subscriptions ordered by renewal date
// @Tags subscriptions
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.SubscriptionResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/subscriptions [get]
func (h *SubscriptionHandler) ListSubscriptions(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	subs, err := h.subService.List(c.Context(), userID)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to list subscriptions")
	}

	return c.JSON(subs)
}

// GetSubscription godoc
// @Summary Get subscription
// @Tags subscriptions
// @Produce json
// @Security Bearer
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subscription ID",
		})
	}

	resp, err := h.subService.Get(c.Context(), userID, id)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to get subscription")
	}

	return c.JSON(resp)
}

// UpdateSubscription godoc
// @Summary Update subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Subscription ID"
// @Param request body dto.SubscriptionRequest true "Subscription"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/subscriptions/{id} [put]
func (h *SubscriptionHandler) UpdateSubscription(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subscription ID",
		})
	}

	var req dto.SubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.subService.Update(c.Context(), userID, id, &req)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to update subscription")
	}

	return c.JSON(resp)
}

// DeleteSubscription godoc
// @Summary Delete subscription
// @Tags subscriptions
// @Security Bearer
// @Param id path string true "Subscription ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/subscriptions/{id} [delete]
func (h *SubscriptionHandler) DeleteSubscription(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid subscription ID",
		})
	}

	if err := h.subService.Delete(c.Context(), userID, id); err != nil {
		return writeError(c, h.logger, err, "Failed to delete subscription")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetStats godoc
// @Summary Dashboard stats
// @Description Monthly and yearly totals, upcoming renewals and the category breakdown
// @Tags subscriptions
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.StatsResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/subscriptions/stats [get]
func (h *SubscriptionHandler) GetStats(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	stats, err := h.subService.Stats(c.Context(), userID)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to compute stats")
	}

	return c.JSON(stats)
}

// GetCalendar godoc
// @Summary Renewal calendar
// @Description Renewals grouped by month. days limits the result to renewals in the next N days.
// @Tags subscriptions
// @Produce json
// @Security Bearer
// @Param days query int false "Window in days"
// @Success 200 {array} dto.CalendarMonthResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/subscriptions/calendar [get]
func (h *SubscriptionHandler) GetCalendar(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	days := c.QueryInt("days", 0)
	if days < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "days must not be negative",
		})
	}

	months, err := h.subService.Calendar(c.Context(), userID, days)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to build calendar")
	}

	return c.JSON(months)
}
