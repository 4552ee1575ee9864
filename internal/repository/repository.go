package repository

import (
	"context"

	model "gigboard/internal/models"
)

// UserStore defines user account persistence
type UserStore interface {
	InsertUser(ctx context.Context, user model.User) error
	GetUserByID(ctx context.Context, userID string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	UpdateUser(ctx context.Context, user model.User) error
}

// GigStore defines gig persistence
type GigStore interface {
	InsertGig(ctx context.Context, gig model.Gig) error
	GetGigByID(ctx context.Context, gigID string) (model.Gig, error)
	// GetOpenGigByIDAndOwner returns the gig only when it exists, is owned
	// by ownerID, and still has status open. It is the hire workflow's
	// precondition read and must run inside the same transaction that
	// flips the gig to assigned.
	GetOpenGigByIDAndOwner(ctx context.Context, gigID, ownerID string) (model.Gig, error)
	ListOpenGigs(ctx context.Context) ([]model.Gig, error)
	SearchOpenGigs(ctx context.Context, query string) ([]model.Gig, error)
	ListGigsByOwner(ctx context.Context, ownerID string) ([]model.Gig, error)
	UpdateGig(ctx context.Context, gig model.Gig) error
	SetGigStatus(ctx context.Context, gigID string, status model.GigStatus) error
	DeleteGig(ctx context.Context, gigID string) error
}

// BidStore defines bid persistence
type BidStore interface {
	InsertBid(ctx context.Context, bid model.Bid) error
	GetBidByID(ctx context.Context, bidID string) (model.Bid, error)
	ListBidsByGig(ctx context.Context, gigID string) ([]model.Bid, error)
	ListBidsByFreelancer(ctx context.Context, freelancerID string) ([]model.Bid, error)
	HasBidForGig(ctx context.Context, gigID, freelancerID string) (bool, error)
	SetBidStatus(ctx context.Context, bidID string, status model.BidStatus) error
	// RejectOtherBids bulk-updates every bid of the gig except exceptBidID
	// to rejected, regardless of prior state.
	RejectOtherBids(ctx context.Context, gigID, exceptBidID string) error
}

// Tx is the transactional view handed to a RunInTransaction callback.
// All reads and writes made through it commit or roll back together.
type Tx interface {
	Gigs() GigStore
	Bids() BidStore
}

// Store is the marketplace document store. RunInTransaction executes fn as
// one atomic unit of work: any error returned by fn aborts with no partial
// writes visible to other readers. fn must use the ctx it is given for
// every store call so the operations join the transaction.
type Store interface {
	Users() UserStore
	Gigs() GigStore
	Bids() BidStore
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
