package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gigboard/internal/gigerrors"
	model "gigboard/internal/models"
)

// MongoStore is the MongoDB-backed implementation of Store. Multi-document
// atomicity comes from driver sessions: RunInTransaction wraps the callback
// in session.WithTransaction, so the hire workflow's reads and writes are
// isolated from concurrent hires on the same gig.
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
	gigs   *mongo.Collection
	bids   *mongo.Collection
}

// NewMongoStore creates a store over the given client and database
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	db := client.Database(dbName)
	return &MongoStore{
		client: client,
		users:  db.Collection("users"),
		gigs:   db.Collection("gigs"),
		bids:   db.Collection("bids"),
	}
}

// EnsureIndexes creates the indexes the marketplace relies on, most
// importantly the unique (gig_id, freelancer_id) index that enforces one
// bid per freelancer per gig at the storage layer.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.bids.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "gig_id", Value: 1}, {Key: "freelancer_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_gig_freelancer"),
		},
		{Keys: bson.D{{Key: "gig_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "freelancer_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create bid indexes: %w", err)
	}

	_, err = s.gigs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create gig indexes: %w", err)
	}

	_, err = s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_username")},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Users() UserStore { return &mongoUsers{coll: s.users} }
func (s *MongoStore) Gigs() GigStore   { return &mongoGigs{coll: s.gigs} }
func (s *MongoStore) Bids() BidStore   { return &mongoBids{coll: s.bids} }

type mongoTx struct {
	s *MongoStore
}

func (t *mongoTx) Gigs() GigStore { return t.s.Gigs() }
func (t *mongoTx) Bids() BidStore { return t.s.Bids() }

// RunInTransaction runs fn inside a Mongo session transaction. fn receives
// the session context and must pass it to every store call; the driver
// aborts the transaction when fn returns an error, and retries transient
// write conflicts per its own policy before surfacing them.
func (s *MongoStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", gigerrors.ErrTransactionFailed)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, &mongoTx{s: s})
	})
	return err
}

type mongoUsers struct {
	coll *mongo.Collection
}

func (u *mongoUsers) InsertUser(ctx context.Context, user model.User) error {
	_, err := u.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), "uniq_username") {
			return fmt.Errorf("insert user: %w", gigerrors.ErrUsernameTaken)
		}
		return fmt.Errorf("insert user: %w", gigerrors.ErrEmailTaken)
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (u *mongoUsers) GetUserByID(ctx context.Context, userID string) (model.User, error) {
	return u.findOne(ctx, bson.M{"_id": userID})
}

func (u *mongoUsers) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return u.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (u *mongoUsers) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return u.findOne(ctx, bson.M{"username": strings.ToLower(username)})
}

func (u *mongoUsers) findOne(ctx context.Context, filter bson.M) (model.User, error) {
	var user model.User
	err := u.coll.FindOne(ctx, filter).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return model.User{}, fmt.Errorf("find user: %w", gigerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (u *mongoUsers) UpdateUser(ctx context.Context, user model.User) error {
	res, err := u.coll.ReplaceOne(ctx, bson.M{"_id": user.UserID}, user)
	if err != nil {
		return fmt.Errorf("update user %s: %w", user.UserID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update user %s: %w", user.UserID, gigerrors.ErrUserNotFound)
	}
	return nil
}

type mongoGigs struct {
	coll *mongo.Collection
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

func (g *mongoGigs) InsertGig(ctx context.Context, gig model.Gig) error {
	if _, err := g.coll.InsertOne(ctx, gig); err != nil {
		return fmt.Errorf("insert gig: %w", err)
	}
	return nil
}

func (g *mongoGigs) GetGigByID(ctx context.Context, gigID string) (model.Gig, error) {
	var gig model.Gig
	err := g.coll.FindOne(ctx, bson.M{"_id": gigID}).Decode(&gig)
	if err == mongo.ErrNoDocuments {
		return model.Gig{}, fmt.Errorf("get gig %s: %w", gigID, gigerrors.ErrGigNotFound)
	}
	if err != nil {
		return model.Gig{}, fmt.Errorf("get gig %s: %w", gigID, err)
	}
	return gig, nil
}

func (g *mongoGigs) GetOpenGigByIDAndOwner(ctx context.Context, gigID, ownerID string) (model.Gig, error) {
	var gig model.Gig
	err := g.coll.FindOne(ctx, bson.M{
		"_id":      gigID,
		"owner_id": ownerID,
		"status":   model.GigOpen,
	}).Decode(&gig)
	if err == mongo.ErrNoDocuments {
		return model.Gig{}, fmt.Errorf("get open gig %s for owner: %w", gigID, gigerrors.ErrNotAuthorizedOrClosed)
	}
	if err != nil {
		return model.Gig{}, fmt.Errorf("get open gig %s for owner: %w", gigID, err)
	}
	return gig, nil
}

func (g *mongoGigs) ListOpenGigs(ctx context.Context) ([]model.Gig, error) {
	return g.findMany(ctx, bson.M{"status": model.GigOpen})
}

func (g *mongoGigs) SearchOpenGigs(ctx context.Context, query string) ([]model.Gig, error) {
	filter := bson.M{"status": model.GigOpen}
	if query != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	}
	return g.findMany(ctx, filter)
}

func (g *mongoGigs) ListGigsByOwner(ctx context.Context, ownerID string) ([]model.Gig, error) {
	return g.findMany(ctx, bson.M{"owner_id": ownerID})
}

func (g *mongoGigs) findMany(ctx context.Context, filter bson.M) ([]model.Gig, error) {
	cursor, err := g.coll.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, fmt.Errorf("find gigs: %w", err)
	}
	gigs := make([]model.Gig, 0)
	if err := cursor.All(ctx, &gigs); err != nil {
		return nil, fmt.Errorf("decode gigs: %w", err)
	}
	return gigs, nil
}

func (g *mongoGigs) UpdateGig(ctx context.Context, gig model.Gig) error {
	res, err := g.coll.ReplaceOne(ctx, bson.M{"_id": gig.GigID}, gig)
	if err != nil {
		return fmt.Errorf("update gig %s: %w", gig.GigID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update gig %s: %w", gig.GigID, gigerrors.ErrGigNotFound)
	}
	return nil
}

func (g *mongoGigs) SetGigStatus(ctx context.Context, gigID string, status model.GigStatus) error {
	res, err := g.coll.UpdateOne(ctx, bson.M{"_id": gigID}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("set status of gig %s: %w", gigID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("set status of gig %s: %w", gigID, gigerrors.ErrGigNotFound)
	}
	return nil
}

func (g *mongoGigs) DeleteGig(ctx context.Context, gigID string) error {
	res, err := g.coll.DeleteOne(ctx, bson.M{"_id": gigID})
	if err != nil {
		return fmt.Errorf("delete gig %s: %w", gigID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("delete gig %s: %w", gigID, gigerrors.ErrGigNotFound)
	}
	return nil
}

type mongoBids struct {
	coll *mongo.Collection
}

func (b *mongoBids) InsertBid(ctx context.Context, bid model.Bid) error {
	_, err := b.coll.InsertOne(ctx, bid)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert bid for gig %s: %w", bid.GigID, gigerrors.ErrDuplicateBid)
	}
	if err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}
	return nil
}

func (b *mongoBids) GetBidByID(ctx context.Context, bidID string) (model.Bid, error) {
	return b.findOne(ctx, bson.M{"_id": bidID})
}

func (b *mongoBids) findOne(ctx context.Context, filter bson.M) (model.Bid, error) {
	var bid model.Bid
	err := b.coll.FindOne(ctx, filter).Decode(&bid)
	if err == mongo.ErrNoDocuments {
		return model.Bid{}, fmt.Errorf("find bid: %w", gigerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("find bid: %w", err)
	}
	return bid, nil
}

func (b *mongoBids) ListBidsByGig(ctx context.Context, gigID string) ([]model.Bid, error) {
	return b.findMany(ctx, bson.M{"gig_id": gigID})
}

func (b *mongoBids) ListBidsByFreelancer(ctx context.Context, freelancerID string) ([]model.Bid, error) {
	return b.findMany(ctx, bson.M{"freelancer_id": freelancerID})
}

func (b *mongoBids) findMany(ctx context.Context, filter bson.M) ([]model.Bid, error) {
	cursor, err := b.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find bids: %w", err)
	}
	bids := make([]model.Bid, 0)
	if err := cursor.All(ctx, &bids); err != nil {
		return nil, fmt.Errorf("decode bids: %w", err)
	}
	return bids, nil
}

func (b *mongoBids) HasBidForGig(ctx context.Context, gigID, freelancerID string) (bool, error) {
	count, err := b.coll.CountDocuments(ctx, bson.M{"gig_id": gigID, "freelancer_id": freelancerID})
	if err != nil {
		return false, fmt.Errorf("count bids for gig %s: %w", gigID, err)
	}
	return count > 0, nil
}

func (b *mongoBids) SetBidStatus(ctx context.Context, bidID string, status model.BidStatus) error {
	res, err := b.coll.UpdateOne(ctx, bson.M{"_id": bidID}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("set status of bid %s: %w", bidID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("set status of bid %s: %w", bidID, gigerrors.ErrBidNotFound)
	}
	return nil
}

func (b *mongoBids) RejectOtherBids(ctx context.Context, gigID, exceptBidID string) error {
	_, err := b.coll.UpdateMany(ctx,
		bson.M{"gig_id": gigID, "_id": bson.M{"$ne": exceptBidID}},
		bson.M{"$set": bson.M{"status": model.BidRejected, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("reject other bids for gig %s: %w", gigID, err)
	}
	return nil
}
