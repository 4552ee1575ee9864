package repository

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"

	"gigboard/internal/gigerrors"
	model "gigboard/internal/models"
)

// MemoryStore is a concurrency-safe in-memory implementation of Store,
// used by tests and local development. A transaction takes the exclusive
// lock for its whole callback and restores a snapshot on error, so the
// all-or-nothing and isolation guarantees match the Mongo implementation.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]model.User
	gigs  map[string]model.Gig
	bids  map[string]model.Bid
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]model.User),
		gigs:  make(map[string]model.Gig),
		bids:  make(map[string]model.Bid),
	}
}

func (s *MemoryStore) Users() UserStore { return &memUsers{s: s} }
func (s *MemoryStore) Gigs() GigStore   { return &memGigs{s: s} }
func (s *MemoryStore) Bids() BidStore   { return &memBids{s: s} }

type memTx struct {
	s *MemoryStore
}

func (t *memTx) Gigs() GigStore { return &memGigs{s: t.s, inTx: true} }
func (t *memTx) Bids() BidStore { return &memBids{s: t.s, inTx: true} }

// RunInTransaction holds the exclusive lock for the duration of fn. On
// error the gig and bid maps are restored from a snapshot taken before fn
// ran, so no partial writes survive an abort.
func (s *MemoryStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run transaction: %w", gigerrors.ErrTransactionFailed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	gigSnapshot := maps.Clone(s.gigs)
	bidSnapshot := maps.Clone(s.bids)

	if err := fn(ctx, &memTx{s: s}); err != nil {
		s.gigs = gigSnapshot
		s.bids = bidSnapshot
		return err
	}
	return nil
}

// rlock acquires the read lock unless already inside a transaction,
// returning the matching unlock.
func (s *MemoryStore) rlock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *MemoryStore) wlock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type memUsers struct {
	s *MemoryStore
}

func (u *memUsers) InsertUser(ctx context.Context, user model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, existing := range u.s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("insert user: %w", gigerrors.ErrEmailTaken)
		}
		if strings.EqualFold(existing.Username, user.Username) {
			return fmt.Errorf("insert user: %w", gigerrors.ErrUsernameTaken)
		}
	}
	u.s.users[user.UserID] = user
	return nil
}

func (u *memUsers) GetUserByID(ctx context.Context, userID string) (model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, gigerrors.ErrUserNotFound)
	}
	return user, nil
}

func (u *memUsers) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return model.User{}, fmt.Errorf("get user by email: %w", gigerrors.ErrUserNotFound)
}

func (u *memUsers) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	for _, user := range u.s.users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return model.User{}, fmt.Errorf("get user by username: %w", gigerrors.ErrUserNotFound)
}

func (u *memUsers) UpdateUser(ctx context.Context, user model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, ok := u.s.users[user.UserID]; !ok {
		return fmt.Errorf("update user %s: %w", user.UserID, gigerrors.ErrUserNotFound)
	}
	u.s.users[user.UserID] = user
	return nil
}

type memGigs struct {
	s    *MemoryStore
	inTx bool
}

func (g *memGigs) InsertGig(ctx context.Context, gig model.Gig) error {
	defer g.s.wlock(g.inTx)()
	g.s.gigs[gig.GigID] = gig
	return nil
}

func (g *memGigs) GetGigByID(ctx context.Context, gigID string) (model.Gig, error) {
	defer g.s.rlock(g.inTx)()

	gig, ok := g.s.gigs[gigID]
	if !ok {
		return model.Gig{}, fmt.Errorf("get gig %s: %w", gigID, gigerrors.ErrGigNotFound)
	}
	return gig, nil
}

func (g *memGigs) GetOpenGigByIDAndOwner(ctx context.Context, gigID, ownerID string) (model.Gig, error) {
	defer g.s.rlock(g.inTx)()

	gig, ok := g.s.gigs[gigID]
	if !ok || gig.OwnerID != ownerID || gig.Status != model.GigOpen {
		return model.Gig{}, fmt.Errorf("get open gig %s for owner: %w", gigID, gigerrors.ErrNotAuthorizedOrClosed)
	}
	return gig, nil
}

func (g *memGigs) ListOpenGigs(ctx context.Context) ([]model.Gig, error) {
	defer g.s.rlock(g.inTx)()

	gigs := make([]model.Gig, 0)
	for _, gig := range g.s.gigs {
		if gig.Status == model.GigOpen {
			gigs = append(gigs, gig)
		}
	}
	sortGigsNewestFirst(gigs)
	return gigs, nil
}

func (g *memGigs) SearchOpenGigs(ctx context.Context, query string) ([]model.Gig, error) {
	defer g.s.rlock(g.inTx)()

	needle := strings.ToLower(query)
	gigs := make([]model.Gig, 0)
	for _, gig := range g.s.gigs {
		if gig.Status != model.GigOpen {
			continue
		}
		if needle == "" || strings.Contains(strings.ToLower(gig.Title), needle) {
			gigs = append(gigs, gig)
		}
	}
	sortGigsNewestFirst(gigs)
	return gigs, nil
}

func (g *memGigs) ListGigsByOwner(ctx context.Context, ownerID string) ([]model.Gig, error) {
	defer g.s.rlock(g.inTx)()

	gigs := make([]model.Gig, 0)
	for _, gig := range g.s.gigs {
		if gig.OwnerID == ownerID {
			gigs = append(gigs, gig)
		}
	}
	sortGigsNewestFirst(gigs)
	return gigs, nil
}

func (g *memGigs) UpdateGig(ctx context.Context, gig model.Gig) error {
	defer g.s.wlock(g.inTx)()

	if _, ok := g.s.gigs[gig.GigID]; !ok {
		return fmt.Errorf("update gig %s: %w", gig.GigID, gigerrors.ErrGigNotFound)
	}
	g.s.gigs[gig.GigID] = gig
	return nil
}

func (g *memGigs) SetGigStatus(ctx context.Context, gigID string, status model.GigStatus) error {
	defer g.s.wlock(g.inTx)()

	gig, ok := g.s.gigs[gigID]
	if !ok {
		return fmt.Errorf("set status of gig %s: %w", gigID, gigerrors.ErrGigNotFound)
	}
	gig.Status = status
	g.s.gigs[gigID] = gig
	return nil
}

func (g *memGigs) DeleteGig(ctx context.Context, gigID string) error {
	defer g.s.wlock(g.inTx)()

	if _, ok := g.s.gigs[gigID]; !ok {
		return fmt.Errorf("delete gig %s: %w", gigID, gigerrors.ErrGigNotFound)
	}
	delete(g.s.gigs, gigID)
	return nil
}

type memBids struct {
	s    *MemoryStore
	inTx bool
}

func (b *memBids) InsertBid(ctx context.Context, bid model.Bid) error {
	defer b.s.wlock(b.inTx)()

	for _, existing := range b.s.bids {
		if existing.GigID == bid.GigID && existing.FreelancerID == bid.FreelancerID {
			return fmt.Errorf("insert bid for gig %s: %w", bid.GigID, gigerrors.ErrDuplicateBid)
		}
	}
	b.s.bids[bid.BidID] = bid
	return nil
}

func (b *memBids) GetBidByID(ctx context.Context, bidID string) (model.Bid, error) {
	defer b.s.rlock(b.inTx)()

	bid, ok := b.s.bids[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, gigerrors.ErrBidNotFound)
	}
	return bid, nil
}

func (b *memBids) ListBidsByGig(ctx context.Context, gigID string) ([]model.Bid, error) {
	defer b.s.rlock(b.inTx)()

	bids := make([]model.Bid, 0)
	for _, bid := range b.s.bids {
		if bid.GigID == gigID {
			bids = append(bids, bid)
		}
	}
	sortBidsNewestFirst(bids)
	return bids, nil
}

func (b *memBids) ListBidsByFreelancer(ctx context.Context, freelancerID string) ([]model.Bid, error) {
	defer b.s.rlock(b.inTx)()

	bids := make([]model.Bid, 0)
	for _, bid := range b.s.bids {
		if bid.FreelancerID == freelancerID {
			bids = append(bids, bid)
		}
	}
	sortBidsNewestFirst(bids)
	return bids, nil
}

func (b *memBids) HasBidForGig(ctx context.Context, gigID, freelancerID string) (bool, error) {
	defer b.s.rlock(b.inTx)()

	for _, bid := range b.s.bids {
		if bid.GigID == gigID && bid.FreelancerID == freelancerID {
			return true, nil
		}
	}
	return false, nil
}

func (b *memBids) SetBidStatus(ctx context.Context, bidID string, status model.BidStatus) error {
	defer b.s.wlock(b.inTx)()

	bid, ok := b.s.bids[bidID]
	if !ok {
		return fmt.Errorf("set status of bid %s: %w", bidID, gigerrors.ErrBidNotFound)
	}
	bid.Status = status
	b.s.bids[bidID] = bid
	return nil
}

func (b *memBids) RejectOtherBids(ctx context.Context, gigID, exceptBidID string) error {
	defer b.s.wlock(b.inTx)()

	for id, bid := range b.s.bids {
		if bid.GigID == gigID && id != exceptBidID {
			bid.Status = model.BidRejected
			b.s.bids[id] = bid
		}
	}
	return nil
}

func sortGigsNewestFirst(gigs []model.Gig) {
	sort.Slice(gigs, func(i, j int) bool { return gigs[i].CreatedAt.After(gigs[j].CreatedAt) })
}

func sortBidsNewestFirst(bids []model.Bid) {
	sort.Slice(bids, func(i, j int) bool { return bids[i].CreatedAt.After(bids[j].CreatedAt) })
}
