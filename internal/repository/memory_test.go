package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"gigboard/internal/gigerrors"
	model "gigboard/internal/models"

	"github.com/stretchr/testify/require"
)

// Helper to create a new Gig
func newGig(gigID, ownerID string, status model.GigStatus, createdAt time.Time) model.Gig {
	return model.Gig{
		GigID:       gigID,
		Title:       fmt.Sprintf("Gig %s", gigID),
		Description: fmt.Sprintf("Gig %s description", gigID),
		Budget:      100,
		OwnerID:     ownerID,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// Helper to create a new Bid
func newBid(bidID, gigID, freelancerID string, status model.BidStatus, createdAt time.Time) model.Bid {
	return model.Bid{
		BidID:        bidID,
		GigID:        gigID,
		FreelancerID: freelancerID,
		Message:      "bid message",
		Price:        90,
		Status:       status,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestMemoryStore_Users(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	alice := model.User{UserID: "u1", Name: "Alice", Email: "alice@example.com", Username: "alice", CreatedAt: now}
	require.NoError(t, store.Users().InsertUser(ctx, alice))

	t.Run("lookup_by_id_email_username", func(t *testing.T) {
		byID, err := store.Users().GetUserByID(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, alice, byID)

		byEmail, err := store.Users().GetUserByEmail(ctx, "ALICE@example.com")
		require.NoError(t, err)
		require.Equal(t, "u1", byEmail.UserID)

		byUsername, err := store.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, "u1", byUsername.UserID)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		err := store.Users().InsertUser(ctx, model.User{UserID: "u2", Email: "alice@example.com", Username: "other"})
		require.ErrorIs(t, err, gigerrors.ErrEmailTaken)
	})

	t.Run("duplicate_username", func(t *testing.T) {
		err := store.Users().InsertUser(ctx, model.User{UserID: "u3", Email: "carol@example.com", Username: "Alice"})
		require.ErrorIs(t, err, gigerrors.ErrUsernameTaken)
	})

	t.Run("missing_user", func(t *testing.T) {
		_, err := store.Users().GetUserByID(ctx, "ghost")
		require.ErrorIs(t, err, gigerrors.ErrUserNotFound)
	})

	t.Run("update", func(t *testing.T) {
		alice.Name = "Alice B."
		require.NoError(t, store.Users().UpdateUser(ctx, alice))
		updated, err := store.Users().GetUserByID(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, "Alice B.", updated.Name)
	})
}

func TestMemoryStore_GigQueries(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Now().UTC()

	gigs := []model.Gig{
		newGig("g1", "u1", model.GigOpen, base.Add(1*time.Minute)),
		newGig("g2", "u1", model.GigAssigned, base.Add(2*time.Minute)),
		newGig("g3", "u2", model.GigOpen, base.Add(3*time.Minute)),
	}
	gigs[0].Title = "Build a React dashboard"
	gigs[2].Title = "Dashboard polish"
	for _, g := range gigs {
		require.NoError(t, store.Gigs().InsertGig(ctx, g))
	}

	t.Run("list_open_newest_first", func(t *testing.T) {
		open, err := store.Gigs().ListOpenGigs(ctx)
		require.NoError(t, err)
		require.Len(t, open, 2)
		require.Equal(t, "g3", open[0].GigID)
		require.Equal(t, "g1", open[1].GigID)
	})

	t.Run("search_case_insensitive", func(t *testing.T) {
		found, err := store.Gigs().SearchOpenGigs(ctx, "dashBOARD")
		require.NoError(t, err)
		require.Len(t, found, 2)
	})

	t.Run("search_excludes_assigned", func(t *testing.T) {
		found, err := store.Gigs().SearchOpenGigs(ctx, "Gig g2")
		require.NoError(t, err)
		require.Empty(t, found)
	})

	t.Run("list_by_owner", func(t *testing.T) {
		mine, err := store.Gigs().ListGigsByOwner(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, mine, 2)
	})

	t.Run("open_by_id_and_owner", func(t *testing.T) {
		g, err := store.Gigs().GetOpenGigByIDAndOwner(ctx, "g1", "u1")
		require.NoError(t, err)
		require.Equal(t, "g1", g.GigID)

		_, err = store.Gigs().GetOpenGigByIDAndOwner(ctx, "g1", "u2")
		require.ErrorIs(t, err, gigerrors.ErrNotAuthorizedOrClosed)

		_, err = store.Gigs().GetOpenGigByIDAndOwner(ctx, "g2", "u1")
		require.ErrorIs(t, err, gigerrors.ErrNotAuthorizedOrClosed)

		_, err = store.Gigs().GetOpenGigByIDAndOwner(ctx, "ghost", "u1")
		require.ErrorIs(t, err, gigerrors.ErrNotAuthorizedOrClosed)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Gigs().DeleteGig(ctx, "g2"))
		_, err := store.Gigs().GetGigByID(ctx, "g2")
		require.ErrorIs(t, err, gigerrors.ErrGigNotFound)
		require.ErrorIs(t, store.Gigs().DeleteGig(ctx, "g2"), gigerrors.ErrGigNotFound)
	})
}

func TestMemoryStore_Bids(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, store.Gigs().InsertGig(ctx, newGig("g1", "u1", model.GigOpen, base)))
	require.NoError(t, store.Bids().InsertBid(ctx, newBid("b1", "g1", "f1", model.BidPending, base.Add(time.Second))))
	require.NoError(t, store.Bids().InsertBid(ctx, newBid("b2", "g1", "f2", model.BidPending, base.Add(2*time.Second))))

	t.Run("duplicate_per_gig_and_freelancer", func(t *testing.T) {
		err := store.Bids().InsertBid(ctx, newBid("b3", "g1", "f1", model.BidPending, base))
		require.ErrorIs(t, err, gigerrors.ErrDuplicateBid)

		exists, err := store.Bids().HasBidForGig(ctx, "g1", "f1")
		require.NoError(t, err)
		require.True(t, exists)
	})

	t.Run("status_transitions", func(t *testing.T) {
		b, err := store.Bids().GetBidByID(ctx, "b1")
		require.NoError(t, err)
		require.Equal(t, model.BidPending, b.Status)

		require.NoError(t, store.Bids().SetBidStatus(ctx, "b1", model.BidRejected))
		b, err = store.Bids().GetBidByID(ctx, "b1")
		require.NoError(t, err)
		require.Equal(t, model.BidRejected, b.Status)

		_, err = store.Bids().GetBidByID(ctx, "ghost")
		require.ErrorIs(t, err, gigerrors.ErrBidNotFound)
		require.ErrorIs(t, store.Bids().SetBidStatus(ctx, "ghost", model.BidHired), gigerrors.ErrBidNotFound)
	})

	t.Run("list_newest_first", func(t *testing.T) {
		bids, err := store.Bids().ListBidsByGig(ctx, "g1")
		require.NoError(t, err)
		require.Len(t, bids, 2)
		require.Equal(t, "b2", bids[0].BidID)
	})

	t.Run("reject_others", func(t *testing.T) {
		require.NoError(t, store.Bids().RejectOtherBids(ctx, "g1", "b2"))
		b1, err := store.Bids().GetBidByID(ctx, "b1")
		require.NoError(t, err)
		require.Equal(t, model.BidRejected, b1.Status)
		b2, err := store.Bids().GetBidByID(ctx, "b2")
		require.NoError(t, err)
		require.Equal(t, model.BidPending, b2.Status)
	})
}

// A failed transaction must leave the gig and bid maps exactly as they
// were before it started.
func TestMemoryStore_TransactionRollback(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.Gigs().InsertGig(ctx, newGig("g1", "u1", model.GigOpen, now)))
	require.NoError(t, store.Bids().InsertBid(ctx, newBid("b1", "g1", "f1", model.BidPending, now)))

	boom := errors.New("boom")
	err := store.RunInTransaction(ctx, func(txCtx context.Context, tx Tx) error {
		require.NoError(t, tx.Bids().SetBidStatus(txCtx, "b1", model.BidHired))
		require.NoError(t, tx.Gigs().SetGigStatus(txCtx, "g1", model.GigAssigned))
		return boom
	})
	require.ErrorIs(t, err, boom)

	g, err := store.Gigs().GetGigByID(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, model.GigOpen, g.Status)

	b, err := store.Bids().GetBidByID(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, model.BidPending, b.Status)
}

// Transactions are serialized: of N compare-and-set style transitions on
// one gig, exactly one sees it open.
func TestMemoryStore_TransactionIsolation(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, store.Gigs().InsertGig(ctx, newGig("g1", "u1", model.GigOpen, now)))

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.RunInTransaction(ctx, func(txCtx context.Context, tx Tx) error {
				if _, err := tx.Gigs().GetOpenGigByIDAndOwner(txCtx, "g1", "u1"); err != nil {
					return err
				}
				return tx.Gigs().SetGigStatus(txCtx, "g1", model.GigAssigned)
			})
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, gigerrors.ErrNotAuthorizedOrClosed)
			losses++
		}
	}
	require.Equal(t, 1, wins)
	require.Equal(t, attempts-1, losses)
}

func TestMemoryStore_TransactionCancelledContext(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.RunInTransaction(ctx, func(txCtx context.Context, tx Tx) error { return nil })
	require.ErrorIs(t, err, gigerrors.ErrTransactionFailed)
}
