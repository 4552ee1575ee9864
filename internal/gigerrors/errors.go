package gigerrors

import "errors"

// Hire workflow errors. ErrBidNotFound deliberately covers both a missing
// bid and one already processed; ErrNotAuthorizedOrClosed deliberately
// covers a missing gig, a gig owned by someone else, and a gig no longer
// open. Collapsing the causes keeps bid and gig state from leaking to
// callers who do not own them.
var (
	ErrBidNotFound           = errors.New("bid not found or already processed")
	ErrNotAuthorizedOrClosed = errors.New("gig not found, not owned by you, or already assigned")
	ErrTransactionFailed     = errors.New("transaction failed")
)

// Repository-level errors
var (
	ErrGigNotFound  = errors.New("gig not found")
	ErrUserNotFound = errors.New("user not found")
	ErrDuplicateBid = errors.New("you have already placed a bid on this gig")
)

// Business logic errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrGigNotOpen         = errors.New("gig is not open for bidding")
	ErrNotGigOwner        = errors.New("not authorized for this gig")
	ErrOwnGigBid          = errors.New("you cannot bid on your own gig")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
