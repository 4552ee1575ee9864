package models

import "time"

// GigStatus is the lifecycle state of a gig posting.
type GigStatus string

const (
	GigOpen     GigStatus = "open"
	GigAssigned GigStatus = "assigned"
)

// BidStatus is the lifecycle state of a freelancer's bid.
// A bid starts pending and moves to exactly one of hired or rejected
// through the hire workflow; both are terminal.
type BidStatus string

const (
	BidPending  BidStatus = "pending"
	BidHired    BidStatus = "hired"
	BidRejected BidStatus = "rejected"
)

// User represents a registered account, either posting gigs or bidding on them
type User struct {
	UserID        string    `bson:"_id" json:"user_id"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	Username      string    `bson:"username" json:"username"`
	Password      string    `bson:"password" json:"-"`
	AvatarURL     string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CoverImageURL string    `bson:"cover_image_url,omitempty" json:"cover_image_url,omitempty"`
	RefreshToken  string    `bson:"refresh_token,omitempty" json:"-"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// Gig represents a job posting owned by a client
type Gig struct {
	GigID       string    `bson:"_id" json:"gig_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Budget      float64   `bson:"budget" json:"budget"`
	OwnerID     string    `bson:"owner_id" json:"owner_id"`
	Status      GigStatus `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// Bid represents a freelancer's proposal against a gig.
// At most one bid exists per (gig, freelancer) pair.
type Bid struct {
	BidID        string    `bson:"_id" json:"bid_id"`
	GigID        string    `bson:"gig_id" json:"gig_id"`
	FreelancerID string    `bson:"freelancer_id" json:"freelancer_id"`
	Message      string    `bson:"message" json:"message"`
	Price        float64   `bson:"price" json:"price"`
	Status       BidStatus `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
