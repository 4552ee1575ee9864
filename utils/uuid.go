package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string used as a document
// primary key for users, gigs and bids.
func GenerateID() string {
	return uuid.New().String()
}
