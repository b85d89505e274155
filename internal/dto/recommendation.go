package dto

// Recommendation is one AI suggestion. It is never stored.
type Recommendation struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	EstimatedCost string `json:"estimated_cost"`
	Relevance     string `json:"relevance"`
}

type RecommendationsResponse struct {
	Recommendations      []Recommendation `json:"recommendations"`
	CurrentSubscriptions int              `json:"currentSubscriptions"`
	Categories           []string         `json:"categories"`
	Message              string           `json:"message,omitempty"`
}

type InteractionRequest struct {
	RecommendationName string `json:"recommendation_name" validate:"required,max=255"`
	Action             string `json:"action" validate:"required,oneof=saved dismissed"`
	Category           string `json:"category" validate:"max=100"`
	EstimatedCost      string `json:"estimated_cost" validate:"max=100"`
}

type InteractionResponse struct {
	ID                 string `json:"id"`
	RecommendationName string `json:"recommendation_name"`
	Action             string `json:"action"`
	Category           string `json:"category"`
	EstimatedCost      string `json:"estimated_cost"`
	UpdatedAt          string `json:"updated_at"`
}
