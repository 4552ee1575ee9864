package bid

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gigboard/internal/gigerrors"
	model "gigboard/internal/models"
	"gigboard/internal/repository"
	"gigboard/utils"
)

// BidService defines the business logic for placing and listing bids.
// Bid status transitions are not its concern; those belong to the hire
// workflow alone.
type BidService struct {
	store repository.Store
}

// NewBidService creates a new BidService instance
func NewBidService(store repository.Store) *BidService {
	return &BidService{store: store}
}

// PlaceBid validates and records a freelancer's bid on an open gig.
// A gig owner cannot bid on their own gig, and a freelancer may bid at
// most once per gig (the storage layer's unique index backs the check
// against races).
func (s *BidService) PlaceBid(ctx context.Context, gigID, freelancerID, message string, price float64) (model.Bid, error) {
	if gigID == "" || freelancerID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - missing gig or freelancer ID", gigerrors.ErrInvalidInput)
	}
	if strings.TrimSpace(message) == "" {
		return model.Bid{}, fmt.Errorf("service: %w - message is required", gigerrors.ErrInvalidInput)
	}
	if price <= 0 {
		return model.Bid{}, fmt.Errorf("service: %w - non-positive bid price", gigerrors.ErrInvalidInput)
	}

	gig, err := s.store.Gigs().GetGigByID(ctx, gigID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to get gig %s: %w", gigID, err)
	}
	if gig.Status != model.GigOpen {
		return model.Bid{}, fmt.Errorf("service: bid on gig %s: %w", gigID, gigerrors.ErrGigNotOpen)
	}
	if gig.OwnerID == freelancerID {
		return model.Bid{}, fmt.Errorf("service: bid on gig %s: %w", gigID, gigerrors.ErrOwnGigBid)
	}

	exists, err := s.store.Bids().HasBidForGig(ctx, gigID, freelancerID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to check existing bid: %w", err)
	}
	if exists {
		return model.Bid{}, fmt.Errorf("service: bid on gig %s: %w", gigID, gigerrors.ErrDuplicateBid)
	}

	now := time.Now().UTC()
	bid := model.Bid{
		BidID:        utils.GenerateID(),
		GigID:        gigID,
		FreelancerID: freelancerID,
		Message:      strings.TrimSpace(message),
		Price:        price,
		Status:       model.BidPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Bids().InsertBid(ctx, bid); err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to record bid on gig %s by %s: %w", gigID, freelancerID, err)
	}
	return bid, nil
}

// GetBidsForGig returns all bids placed on a gig, newest first
func (s *BidService) GetBidsForGig(ctx context.Context, gigID string) ([]model.Bid, error) {
	if gigID == "" {
		return nil, fmt.Errorf("service: %w - empty gig ID", gigerrors.ErrInvalidInput)
	}

	if _, err := s.store.Gigs().GetGigByID(ctx, gigID); err != nil {
		return nil, fmt.Errorf("service: failed to get gig %s: %w", gigID, err)
	}

	bids, err := s.store.Bids().ListBidsByGig(ctx, gigID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list bids for gig %s: %w", gigID, err)
	}
	return bids, nil
}

// GetBidsByFreelancer returns all bids the user has placed, newest first
func (s *BidService) GetBidsByFreelancer(ctx context.Context, freelancerID string) ([]model.Bid, error) {
	if freelancerID == "" {
		return nil, fmt.Errorf("service: %w - empty freelancer ID", gigerrors.ErrInvalidInput)
	}
	bids, err := s.store.Bids().ListBidsByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list bids for freelancer %s: %w", freelancerID, err)
	}
	return bids, nil
}
