package gig

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

// GigService defines the business logic for gig postings. It never touches
// gig status: the open→assigned flip belongs exclusively to the hire
// workflow.
type GigService struct {
	store repository.Store
}

// NewGigService creates a new GigService instance
func NewGigService(store repository.Store) *GigService {
	return &GigService{store: store}
}

// GigUpdate carries the optional fields of a partial gig update
type GigUpdate struct {
	Title       *string
	Description *string
	Budget      *float64
}

// CreateGig validates and stores a new open gig owned by ownerID
func (s *GigService) CreateGig(ctx context.Context, ownerID, title, description string, budget float64) (model.Gig, error) {
	if ownerID == "" {
		return model.Gig{}, fmt.Errorf("service: %w - missing owner ID", gigerrors.ErrInvalidInput)
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return model.Gig{}, fmt.Errorf("service: %w - title and description required", gigerrors.ErrInvalidInput)
	}
	if budget < 0 {
		return model.Gig{}, fmt.Errorf("service: %w - budget must be non-negative", gigerrors.ErrInvalidInput)
	}

	now := time.Now().UTC()
	gig := model.Gig{
		GigID:       utils.GenerateID(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Budget:      budget,
		OwnerID:     ownerID,
		Status:      model.GigOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Gigs().InsertGig(ctx, gig); err != nil {
		return model.Gig{}, fmt.Errorf("service: failed to create gig for owner %s: %w", ownerID, err)
	}
	return gig, nil
}

// GetGigByID returns a single gig
func (s *GigService) GetGigByID(ctx context.Context, gigID string) (model.Gig, error) {
	if gigID == "" {
		return model.Gig{}, fmt.Errorf("service: %w - empty gig ID", gigerrors.ErrInvalidInput)
	}
	gig, err := s.store.Gigs().GetGigByID(ctx, gigID)
	if err != nil {
		return model.Gig{}, fmt.Errorf("service: failed to get gig %s: %w", gigID, err)
	}
	return gig, nil
}

// ListOpenGigs returns all gigs still open for bidding, newest first
func (s *GigService) ListOpenGigs(ctx context.Context) ([]model.Gig, error) {
	gigs, err := s.store.Gigs().ListOpenGigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list open gigs: %w", err)
	}
	return gigs, nil
}

// SearchGigs returns open gigs whose title matches the query,
// case-insensitively; an empty query returns all open gigs
func (s *GigService) SearchGigs(ctx context.Context, query string) ([]model.Gig, error) {
	gigs, err := s.store.Gigs().SearchOpenGigs(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("service: failed to search gigs: %w", err)
	}
	return gigs, nil
}

// ListGigsByOwner returns all gigs posted by the given user
func (s *GigService) ListGigsByOwner(ctx context.Context, ownerID string) ([]model.Gig, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("service: %w - empty owner ID", gigerrors.ErrInvalidInput)
	}
	gigs, err := s.store.Gigs().ListGigsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list gigs for owner %s: %w", ownerID, err)
	}
	return gigs, nil
}

// UpdateGig applies a partial update to a gig owned by actorUserID.
// Status is never part of an update.
func (s *GigService) UpdateGig(ctx context.Context, actorUserID, gigID string, upd GigUpdate) (model.Gig, error) {
	if actorUserID == "" || gigID == "" {
		return model.Gig{}, fmt.Errorf("service: %w - missing user or gig ID", gigerrors.ErrInvalidInput)
	}
	if upd.Title == nil && upd.Description == nil && upd.Budget == nil {
		return model.Gig{}, fmt.Errorf("service: %w - at least one field is required", gigerrors.ErrInvalidInput)
	}

	gig, err := s.store.Gigs().GetGigByID(ctx, gigID)
	if err != nil {
		return model.Gig{}, fmt.Errorf("service: failed to get gig %s: %w", gigID, err)
	}
	if gig.OwnerID != actorUserID {
		return model.Gig{}, fmt.Errorf("service: update gig %s: %w", gigID, gigerrors.ErrNotGigOwner)
	}

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return model.Gig{}, fmt.Errorf("service: %w - title cannot be empty", gigerrors.ErrInvalidInput)
		}
		gig.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		if strings.TrimSpace(*upd.Description) == "" {
			return model.Gig{}, fmt.Errorf("service: %w - description cannot be empty", gigerrors.ErrInvalidInput)
		}
		gig.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Budget != nil {
		if *upd.Budget < 0 {
			return model.Gig{}, fmt.Errorf("service: %w - budget must be non-negative", gigerrors.ErrInvalidInput)
		}
		gig.Budget = *upd.Budget
	}
	gig.UpdatedAt = time.Now().UTC()

	if err := s.store.Gigs().UpdateGig(ctx, gig); err != nil {
		return model.Gig{}, fmt.Errorf("service: failed to update gig %s: %w", gigID, err)
	}
	return gig, nil
}

// DeleteGig removes a gig owned by actorUserID
func (s *GigService) DeleteGig(ctx context.Context, actorUserID, gigID string) (model.Gig, error) {
	if actorUserID == "" || gigID == "" {
		return model.Gig{}, fmt.Errorf("service: %w - missing user or gig ID", gigerrors.ErrInvalidInput)
	}

	gig, err := s.store.Gigs().GetGigByID(ctx, gigID)
	if err != nil {
		return model.Gig{}, fmt.Errorf("service: failed to get gig %s: %w", gigID, err)
	}
	if gig.OwnerID != actorUserID {
		return model.Gig{}, fmt.Errorf("service: delete gig %s: %w", gigID, gigerrors.ErrNotGigOwner)
	}

	if err := s.store.Gigs().DeleteGig(ctx, gigID); err != nil {
		return model.Gig{}, fmt.Errorf("service: failed to delete gig %s: %w", gigID, err)
	}
	return gig, nil
}
