package handler

import (
	"time"

	model "gigboard/internal/models"
)

// Request/Response DTOs
type CreateGigRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Budget      *float64 `json:"budget" binding:"required"`
}

type UpdateGigRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Budget      *float64 `json:"budget"`
}

type GigResponse struct {
	GigID       string  `json:"gig_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
	OwnerID     string  `json:"owner_id"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toGigResponse(gig model.Gig) GigResponse {
	return GigResponse{
		GigID:       gig.GigID,
		Title:       gig.Title,
		Description: gig.Description,
		Budget:      gig.Budget,
		OwnerID:     gig.OwnerID,
		Status:      string(gig.Status),
		CreatedAt:   gig.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   gig.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toGigResponses(gigs []model.Gig) []GigResponse {
	out := make([]GigResponse, 0, len(gigs))
	for _, gig := range gigs {
		out = append(out, toGigResponse(gig))
	}
	return out
}
