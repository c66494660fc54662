package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bankaccess/account-system/internal/core/domain"
)

const blockedCollection = "blocked_users"

// BlockRepository persists the block registry. At most one entry exists per
// national id, enforced by a unique index.
type BlockRepository struct {
	coll *mongo.Collection
}

func NewBlockRepository(db *mongo.Database) *BlockRepository {
	return &BlockRepository{coll: db.Collection(blockedCollection)}
}

type blockDoc struct {
	NationalID string    `bson:"national_id"`
	Username   string    `bson:"username"`
	CreatedAt  time.Time `bson:"created_at"`
}

func (r *BlockRepository) Insert(ctx context.Context, entry *domain.BlockEntry) error {
	doc := blockDoc{
		NationalID: entry.NationalID,
		Username:   entry.Username,
		CreatedAt:  entry.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyBlocked
		}
		return fmt.Errorf("insert block entry: %w", err)
	}
	return nil
}

func (r *BlockRepository) Delete(ctx context.Context, nationalID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"national_id": nationalID})
	if err != nil {
		return fmt.Errorf("delete block entry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBlockNotFound
	}
	return nil
}

func (r *BlockRepository) Exists(ctx context.Context, nationalID string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"national_id": nationalID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("find block entry: %w", err)
	}
	return true, nil
}

// EnsureIndexes creates the unique index backing the one-entry-per-id
// invariant.
func (r *BlockRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "national_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_national_id"),
	})
	return err
}
