package handler

import (
	"time"

	model "gigboard/internal/models"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	GigID   string  `json:"gig_id" binding:"required"`
	Message string  `json:"message" binding:"required"`
	Price   float64 `json:"price" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID        string  `json:"bid_id"`
	GigID        string  `json:"gig_id"`
	FreelancerID string  `json:"freelancer_id"`
	Message      string  `json:"message"`
	Price        float64 `json:"price"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func toBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:        bid.BidID,
		GigID:        bid.GigID,
		FreelancerID: bid.FreelancerID,
		Message:      bid.Message,
		Price:        bid.Price,
		Status:       string(bid.Status),
		CreatedAt:    bid.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    bid.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toBidResponses(bids []model.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, bid := range bids {
		out = append(out, toBidResponse(bid))
	}
	return out
}
