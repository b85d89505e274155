package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"subtrack/internal/dto"
	"subtrack/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InteractionService struct {
	interactions InteractionStore
	now          func() time.Time
	logger       *zap.Logger
}

func NewInteractionService(interactions InteractionStore, logger *zap.Logger) *InteractionService {
	return &InteractionService{
		interactions: interactions,
		now:          time.Now,
		logger:       logger,
	}
}

// Record saves what the user did with a recommendation. A later action on the
// same recommendation name replaces the earlier one.
func (s *InteractionService) Record(ctx context.Context, userID uuid.UUID, req *dto.InteractionRequest) (*dto.InteractionResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrValidation)
	}
	if err := dto.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	name := sanitizeUTF8(strings.TrimSpace(req.RecommendationName))
	if name == "" {
		return nil, fmt.Errorf("%w: recommendation_name must not be blank", ErrValidation)
	}

	now := s.now().UTC()
	in := &models.RecommendationInteraction{
		ID:                 uuid.New(),
		UserID:             userID,
		RecommendationName: name,
		Action:             models.InteractionAction(req.Action),
		Category:           sanitizeUTF8(strings.TrimSpace(req.Category)),
		EstimatedCost:      sanitizeUTF8(strings.TrimSpace(req.EstimatedCost)),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.interactions.Upsert(ctx, in); err != nil {
		s.logger.Error("Failed to record interaction", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Recommendation interaction recorded",
		zap.String("user_id", userID.String()),
		zap.String("recommendation", in.RecommendationName),
		zap.String("action", string(in.Action)),
	)
	resp := toInteractionResponse(in)
	return &resp, nil
}

// List returns the user's interactions. An empty action lists all of them.
func (s *InteractionService) List(ctx context.Context, userID uuid.UUID, action string) ([]dto.InteractionResponse, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	var filter *models.InteractionAction
	if action != "" {
		a := models.InteractionAction(strings.ToLower(action))
		if a != models.InteractionSaved && a != models.InteractionDismissed {
			return nil, fmt.Errorf("%w: action must be saved or dismissed", ErrValidation)
		}
		filter = &a
	}

	interactions, err := s.interactions.ListByUserID(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list interactions", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := make([]dto.InteractionResponse, 0, len(interactions))
	for _, in := range interactions {
		resp = append(resp, toInteractionResponse(in))
	}
	return resp, nil
}

func toInteractionResponse(in *models.RecommendationInteraction) dto.InteractionResponse {
	return dto.InteractionResponse{
		ID:                 in.ID.String(),
		RecommendationName: in.RecommendationName,
		Action:             string(in.Action),
		Category:           in.Category,
		EstimatedCost:      in.EstimatedCost,
		UpdatedAt:          in.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
