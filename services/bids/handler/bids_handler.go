package handler

import (
	"context"
	"net/http"

	"gigboard/internal/auth"
	model "gigboard/internal/models"
	"gigboard/services/helpers"
	"gigboard/utils"

	"github.com/gin-gonic/gin"
)

type BidServiceInterface interface {
	PlaceBid(ctx context.Context, gigID, freelancerID, message string, price float64) (model.Bid, error)
	GetBidsForGig(ctx context.Context, gigID string) ([]model.Bid, error)
	GetBidsByFreelancer(ctx context.Context, freelancerID string) ([]model.Bid, error)
}

type HireServiceInterface interface {
	HireBid(ctx context.Context, actorUserID, bidID string) (model.Bid, error)
}

type BidsHandler struct {
	bids BidServiceInterface
	hire HireServiceInterface
}

func NewBidsHandler(bids BidServiceInterface, hire HireServiceInterface) *BidsHandler {
	return &BidsHandler{bids: bids, hire: hire}
}

// PlaceBidHandler handles POST /api/bids
func (h *BidsHandler) PlaceBidHandler(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.bids.PlaceBid(c.Request.Context(), req.GigID, actor.UserID, req.Message, req.Price)
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", err, map[string]any{
			"gig_id":        req.GigID,
			"freelancer_id": actor.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, toBidResponse(bid), "bid submitted successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid submitted successfully", map[string]any{
		"bid_id":        bid.BidID,
		"gig_id":        bid.GigID,
		"freelancer_id": bid.FreelancerID,
		"price":         bid.Price,
	})
}

// HireBidHandler handles PATCH /api/bids/:bidId/hire. The authenticated
// caller must own the gig the bid was placed on; all further checks and the
// atomic state transition live in the hire service.
func (h *BidsHandler) HireBidHandler(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	bidID := c.Param("bidId")

	bid, err := h.hire.HireBid(c.Request.Context(), actor.UserID, bidID)
	if err != nil {
		helpers.HandleServiceError(c, "HireBidHandler", err, map[string]any{
			"bid_id":  bidID,
			"user_id": actor.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, toBidResponse(bid), "bid accepted successfully")
	helpers.LogSuccess("HireBidHandler", "bid accepted successfully", map[string]any{
		"bid_id":        bid.BidID,
		"gig_id":        bid.GigID,
		"freelancer_id": bid.FreelancerID,
	})
}

// BidsForGigHandler handles GET /api/bids/:gigId
func (h *BidsHandler) BidsForGigHandler(c *gin.Context) {
	gigID := c.Param("gigId")

	bids, err := h.bids.GetBidsForGig(c.Request.Context(), gigID)
	if err != nil {
		helpers.HandleServiceError(c, "BidsForGigHandler", err, map[string]any{"gig_id": gigID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, toBidResponses(bids), "bids retrieved successfully")
	helpers.LogSuccess("BidsForGigHandler", "bids retrieved successfully", map[string]any{
		"gig_id": gigID,
		"count":  len(bids),
	})
}

// MyBidsHandler handles GET /api/bids/my
func (h *BidsHandler) MyBidsHandler(c *gin.Context) {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	bids, err := h.bids.GetBidsByFreelancer(c.Request.Context(), actor.UserID)
	if err != nil {
		helpers.HandleServiceError(c, "MyBidsHandler", err, map[string]any{"freelancer_id": actor.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, toBidResponses(bids), "bids retrieved successfully")
	helpers.LogSuccess("MyBidsHandler", "bids retrieved successfully", map[string]any{
		"freelancer_id": actor.UserID,
		"count":         len(bids),
	})
}
