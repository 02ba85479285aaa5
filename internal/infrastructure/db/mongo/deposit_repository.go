package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentledger/deposit-system/internal/core/domain"
	"github.com/rentledger/deposit-system/internal/core/ports"
)

const collectionDeposits = "deposits"

type DepositRepository struct {
	col *mongo.Collection
}

func NewDepositRepository(db *mongo.Database) *DepositRepository {
	return &DepositRepository{col: db.Collection(collectionDeposits)}
}

// Insert stores a new deposit document.
func (r *DepositRepository) Insert(ctx context.Context, d *domain.Deposit) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, d)
	return err
}

// UpdateWhereStatus performs the atomic conditional transition. The filter
// always requires the current status, so a document mutated by a concurrent
// caller no longer matches and the update reports zero matches instead of
// overwriting. Without an explicit deposit id the oldest matching document is
// targeted.
func (r *DepositRepository) UpdateWhereStatus(ctx context.Context, f ports.StatusFilter, to domain.DepositStatus, fields *ports.RespondFields) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"status": string(f.From)}
	if f.DepositID != "" {
		filter["_id"] = f.DepositID
	}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}

	now := time.Now().UTC()
	set := bson.M{"status": string(to)}
	if fields != nil {
		set["deduction"] = fields.Deduction
		if fields.DocumentationRef != "" {
			set["documentation_ref"] = fields.DocumentationRef
		}
	}
	if to == domain.StatusResponded {
		set["responded_at"] = now
	}
	if to.Terminal() {
		set["resolved_at"] = now
	}

	opts := options.FindOneAndUpdate().SetSort(bson.D{{Key: "created_at", Value: 1}})
	err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return 1, nil
}

// FindLatestByUser retrieves the user's most recent deposit regardless of status.
func (r *DepositRepository) FindLatestByUser(ctx context.Context, userID string) (*domain.Deposit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var d domain.Deposit
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDepositNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListByUser returns all of the user's deposits, newest first.
func (r *DepositRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Deposit, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var deposits []*domain.Deposit
	if err := cursor.All(ctx, &deposits); err != nil {
		return nil, err
	}
	return deposits, nil
}

// EnsureIndexes creates necessary indexes on the deposits collection.
func (r *DepositRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
