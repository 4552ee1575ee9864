package hire

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"gigboard/internal/gigerrors"
	model "gigboard/internal/models"
	"gigboard/internal/notify"
	"gigboard/internal/repository"

	"github.com/stretchr/testify/require"
)

// recordingPublisher captures published events for assertions
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	userID string
	event  notify.Event
}

func (p *recordingPublisher) Publish(userID string, event notify.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{userID: userID, event: event})
}

func (p *recordingPublisher) all() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

// Helper to create a new Gig
func newGig(gigID, ownerID, title string, status model.GigStatus) model.Gig {
	now := time.Now().UTC()
	return model.Gig{
		GigID:       gigID,
		Title:       title,
		Description: fmt.Sprintf("%s description", title),
		Budget:      500,
		OwnerID:     ownerID,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Helper to create a new Bid
func newBid(bidID, gigID, freelancerID string, status model.BidStatus) model.Bid {
	now := time.Now().UTC()
	return model.Bid{
		BidID:        bidID,
		GigID:        gigID,
		FreelancerID: freelancerID,
		Message:      "I can do this",
		Price:        450,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// seedScenario stores gig G owned by U1 with three pending bids B1..B3.
func seedScenario(t *testing.T, store *repository.MemoryStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Gigs().InsertGig(ctx, newGig("G", "U1", "Build a landing page", model.GigOpen)))
	require.NoError(t, store.Bids().InsertBid(ctx, newBid("B1", "G", "F1", model.BidPending)))
	require.NoError(t, store.Bids().InsertBid(ctx, newBid("B2", "G", "F2", model.BidPending)))
	require.NoError(t, store.Bids().InsertBid(ctx, newBid("B3", "G", "F3", model.BidPending)))
}

// Tests the happy path: the winning bid is hired, every sibling is
// rejected, the gig is assigned, and exactly one notification reaches the
// hired freelancer referencing the gig.
func TestHireService_HireBid_Success(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	seedScenario(t, store)
	publisher := &recordingPublisher{}
	service := NewHireService(store, publisher)
	ctx := context.Background()

	hired, err := service.HireBid(ctx, "U1", "B2")
	require.NoError(t, err)
	require.Equal(t, "B2", hired.BidID)
	require.Equal(t, "F2", hired.FreelancerID)
	require.Equal(t, model.BidHired, hired.Status)

	b1, err := store.Bids().GetBidByID(ctx, "B1")
	require.NoError(t, err)
	require.Equal(t, model.BidRejected, b1.Status)

	b3, err := store.Bids().GetBidByID(ctx, "B3")
	require.NoError(t, err)
	require.Equal(t, model.BidRejected, b3.Status)

	g, err := store.Gigs().GetGigByID(ctx, "G")
	require.NoError(t, err)
	require.Equal(t, model.GigAssigned, g.Status)

	events := publisher.all()
	require.Len(t, events, 1)
	require.Equal(t, "F2", events[0].userID)
	require.Equal(t, notify.EventHired, events[0].event.Name)
	require.Equal(t, "G", events[0].event.GigID)
	require.Contains(t, events[0].event.Message, "Build a landing page")
}

// After a hire assigns the gig, further attempts on its bids report the
// gig as closed: the gig-side check runs before the pending check, so a
// bulk-rejected sibling and a replay of the winning call both surface
// ErrNotAuthorizedOrClosed, and only a bid that does not exist at all
// surfaces ErrBidNotFound. Nothing may mutate either way.
func TestHireService_HireBid_AfterAssignment(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	seedScenario(t, store)
	publisher := &recordingPublisher{}
	service := NewHireService(store, publisher)
	ctx := context.Background()

	_, err := service.HireBid(ctx, "U1", "B2")
	require.NoError(t, err)

	// B1 still exists (rejected), so the gig check answers first.
	_, err = service.HireBid(ctx, "U1", "B1")
	require.ErrorIs(t, err, gigerrors.ErrNotAuthorizedOrClosed)

	// Replaying the winning call is equally a no-op.
	_, err = service.HireBid(ctx, "U1", "B2")
	require.ErrorIs(t, err, gigerrors.ErrNotAuthorizedOrClosed)

	_, err = service.HireBid(ctx, "U1", "ghost")
	require.ErrorIs(t, err, gigerrors.ErrBidNotFound)

	b2, err := store.Bids().GetBidByID(ctx, "B2")
	require.NoError(t, err)
	require.Equal(t, model.BidHired, b2.Status)
	require.Len(t, publisher.all(), 1)
}

func TestHireService_HireBid_Preconditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		actorUserID string
		bidID       string
		wantErr     error
	}{
		{name: "missing_bid", actorUserID: "U1", bidID: "nope", wantErr: gigerrors.ErrBidNotFound},
		{name: "not_gig_owner", actorUserID: "U2", bidID: "B1", wantErr: gigerrors.ErrNotAuthorizedOrClosed},
		{name: "freelancer_hiring_own_bid", actorUserID: "F1", bidID: "B1", wantErr: gigerrors.ErrNotAuthorizedOrClosed},
		{name: "empty_actor", actorUserID: "", bidID: "B1", wantErr: gigerrors.ErrInvalidInput},
		{name: "empty_bid_id", actorUserID: "U1", bidID: "", wantErr: gigerrors.ErrInvalidInput},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := repository.NewMemoryStore()
			seedScenario(t, store)
			publisher := &recordingPublisher{}
			service := NewHireService(store, publisher)
			ctx := context.Background()

			_, err := service.HireBid(ctx, tc.actorUserID, tc.bidID)
			require.ErrorIs(t, err, tc.wantErr)

			// Nothing may have been mutated on any failure.
			g, err := store.Gigs().GetGigByID(ctx, "G")
			require.NoError(t, err)
			require.Equal(t, model.GigOpen, g.Status)
			for _, bidID := range []string{"B1", "B2", "B3"} {
				b, err := store.Bids().GetBidByID(ctx, bidID)
				require.NoError(t, err)
				require.Equal(t, model.BidPending, b.Status)
			}
			require.Empty(t, publisher.all())
		})
	}
}

func TestHireService_HireBid_ClosedGig(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Gigs().InsertGig(ctx, newGig("G", "U1", "Logo design", model.GigAssigned)))
	require.NoError(t, store.Bids().InsertBid(ctx, newBid("B1", "G", "F1", model.BidPending)))

	service := NewHireService(store, &recordingPublisher{})

	_, err := service.HireBid(ctx, "U1", "B1")
	require.ErrorIs(t, err, gigerrors.ErrNotAuthorizedOrClosed)
}

// Hiring on gig A must never leak into gig B's bids.
func TestHireService_HireBid_CrossGigIsolation(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Gigs().InsertGig(ctx, newGig("GA", "U1", "Gig A", model.GigOpen)))
	require.NoError(t, store.Gigs().InsertGig(ctx, newGig("GB", "U1", "Gig B", model.GigOpen)))
	require.NoError(t, store.Bids().InsertBid(ctx, newBid("A1", "GA", "F1", model.BidPending)))
	require.NoError(t, store.Bids().InsertBid(ctx, newBid("B1", "GB", "F1", model.BidPending)))
	require.NoError(t, store.Bids().InsertBid(ctx, newBid("B2", "GB", "F2", model.BidPending)))

	service := NewHireService(store, &recordingPublisher{})

	_, err := service.HireBid(ctx, "U1", "A1")
	require.NoError(t, err)

	for _, bidID := range []string{"B1", "B2"} {
		b, err := store.Bids().GetBidByID(ctx, bidID)
		require.NoError(t, err)
		require.Equal(t, model.BidPending, b.Status)
	}
	gb, err := store.Gigs().GetGigByID(ctx, "GB")
	require.NoError(t, err)
	require.Equal(t, model.GigOpen, gb.Status)
}

// A hub with no registered connection drops the event; the hire itself
// must still succeed.
func TestHireService_HireBid_NoLiveConnection(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	seedScenario(t, store)
	hub := notify.NewHub()
	defer hub.Close()
	service := NewHireService(store, hub)

	hired, err := service.HireBid(context.Background(), "U1", "B3")
	require.NoError(t, err)
	require.Equal(t, model.BidHired, hired.Status)
}

// Two racing hires on distinct bids of the same gig: exactly one commits,
// the rest observe the gig as no longer open, and the stored state is the
// same as for a lone hire.
func TestHireService_HireBid_ConcurrentSameGig(t *testing.T) {
	t.Parallel()

	store := repository.NewMemoryStore()
	seedScenario(t, store)
	publisher := &recordingPublisher{}
	service := NewHireService(store, publisher)
	ctx := context.Background()

	bidIDs := []string{"B1", "B2", "B3"}
	results := make(chan error, len(bidIDs))

	var wg sync.WaitGroup
	for _, bidID := range bidIDs {
		wg.Add(1)
		go func(bidID string) {
			defer wg.Done()
			_, err := service.HireBid(ctx, "U1", bidID)
			results <- err
		}(bidID)
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, gigerrors.ErrNotAuthorizedOrClosed), errors.Is(err, gigerrors.ErrTransactionFailed):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, len(bidIDs)-1, conflicts)

	g, err := store.Gigs().GetGigByID(ctx, "G")
	require.NoError(t, err)
	require.Equal(t, model.GigAssigned, g.Status)

	var hired, rejected int
	for _, bidID := range bidIDs {
		b, err := store.Bids().GetBidByID(ctx, bidID)
		require.NoError(t, err)
		switch b.Status {
		case model.BidHired:
			hired++
		case model.BidRejected:
			rejected++
		default:
			t.Fatalf("bid %s left in status %s", bidID, b.Status)
		}
	}
	require.Equal(t, 1, hired)
	require.Equal(t, len(bidIDs)-1, rejected)
	require.Len(t, publisher.all(), 1)
}

// failingBids injects a storage failure into the bulk-reject step.
type failingBids struct {
	repository.BidStore
}

func (b *failingBids) RejectOtherBids(ctx context.Context, gigID, exceptBidID string) error {
	return errors.New("write conflict")
}

type failingTx struct {
	repository.Tx
}

func (f *failingTx) Bids() repository.BidStore { return &failingBids{f.Tx.Bids()} }

type failingStore struct {
	*repository.MemoryStore
}

func (s *failingStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	return s.MemoryStore.RunInTransaction(ctx, func(txCtx context.Context, tx repository.Tx) error {
		return fn(txCtx, &failingTx{tx})
	})
}

// A mid-transaction storage failure surfaces as ErrTransactionFailed and
// rolls every write back: the target bid stays pending and no notification
// fires.
func TestHireService_HireBid_TransactionRollback(t *testing.T) {
	t.Parallel()

	memory := repository.NewMemoryStore()
	seedScenario(t, memory)
	publisher := &recordingPublisher{}
	service := NewHireService(&failingStore{MemoryStore: memory}, publisher)
	ctx := context.Background()

	_, err := service.HireBid(ctx, "U1", "B2")
	require.ErrorIs(t, err, gigerrors.ErrTransactionFailed)

	b2, err := memory.Bids().GetBidByID(ctx, "B2")
	require.NoError(t, err)
	require.Equal(t, model.BidPending, b2.Status)

	g, err := memory.Gigs().GetGigByID(ctx, "G")
	require.NoError(t, err)
	require.Equal(t, model.GigOpen, g.Status)
	require.Empty(t, publisher.all())
}
