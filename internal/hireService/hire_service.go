package hire

import (
	"context"
	"errors"
	"fmt"

	"gigboard/internal/gigerrors"
	model "gigboard/internal/models"
	"gigboard/internal/notify"
	"gigboard/internal/repository"
	"gigboard/utils"
)

// Publisher pushes an event to a user's live connections. Delivery is
// fire-and-forget; the hire workflow never depends on its outcome.
type Publisher interface {
	Publish(userID string, event notify.Event)
}

// HireService executes the accept-a-bid workflow: one atomic transition of
// the winning bid to hired, every sibling bid to rejected, and the gig to
// assigned, followed by a best-effort notification to the winner.
type HireService struct {
	store    repository.Store
	notifier Publisher
}

// NewHireService creates a new HireService instance
func NewHireService(store repository.Store, notifier Publisher) *HireService {
	return &HireService{
		store:    store,
		notifier: notifier,
	}
}

// HireBid accepts the bid on behalf of actorUserID, the gig owner.
//
// All preconditions are evaluated inside one transaction so that two hires
// racing on the same gig cannot both commit, and the gig-side checks come
// first: the bid record locates the gig (a missing bid is
// gigerrors.ErrBidNotFound), the gig must exist, be owned by the actor and
// still be open (otherwise gigerrors.ErrNotAuthorizedOrClosed, which
// deliberately merges the three causes), and only then must the bid still
// be pending. The loser of a race re-reads the gig as no longer open and
// gets the same answer as any other unauthorized caller - including when
// the bid it targeted was meanwhile hired or bulk rejected.
//
// Storage-level commit failure surfaces as gigerrors.ErrTransactionFailed;
// no partial state is visible, so retrying the whole call is safe.
func (s *HireService) HireBid(ctx context.Context, actorUserID, bidID string) (model.Bid, error) {
	if actorUserID == "" || bidID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - missing user or bid ID", gigerrors.ErrInvalidInput)
	}

	var hired model.Bid
	var gig model.Gig

	err := s.store.RunInTransaction(ctx, func(txCtx context.Context, tx repository.Tx) error {
		bid, err := tx.Bids().GetBidByID(txCtx, bidID)
		if err != nil {
			return err
		}

		g, err := tx.Gigs().GetOpenGigByIDAndOwner(txCtx, bid.GigID, actorUserID)
		if err != nil {
			return err
		}

		if bid.Status != model.BidPending {
			return fmt.Errorf("bid %s is not pending: %w", bidID, gigerrors.ErrBidNotFound)
		}

		if err := tx.Bids().SetBidStatus(txCtx, bid.BidID, model.BidHired); err != nil {
			return err
		}
		if err := tx.Bids().RejectOtherBids(txCtx, bid.GigID, bid.BidID); err != nil {
			return err
		}
		if err := tx.Gigs().SetGigStatus(txCtx, g.GigID, model.GigAssigned); err != nil {
			return err
		}

		bid.Status = model.BidHired
		hired = bid
		gig = g
		return nil
	})
	if err != nil {
		if errors.Is(err, gigerrors.ErrBidNotFound) || errors.Is(err, gigerrors.ErrNotAuthorizedOrClosed) {
			return model.Bid{}, fmt.Errorf("service: hire bid %s: %w", bidID, err)
		}
		return model.Bid{}, fmt.Errorf("service: hire bid %s: %v: %w", bidID, err, gigerrors.ErrTransactionFailed)
	}

	// Post-commit side effect. The hire is already durable; if the
	// freelancer has no live connection the event is dropped and they
	// discover the result on their next fetch of "my bids".
	s.notifier.Publish(hired.FreelancerID, notify.Event{
		Name:    notify.EventHired,
		Message: fmt.Sprintf("You have been hired for %q", gig.Title),
		GigID:   gig.GigID,
	})

	utils.Info("hire: bid accepted", map[string]any{
		"bid_id":        hired.BidID,
		"gig_id":        gig.GigID,
		"owner_id":      actorUserID,
		"freelancer_id": hired.FreelancerID,
	})
	return hired, nil
}
