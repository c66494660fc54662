package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bankaccess/account-system/internal/core/domain"
)

const accountsCollection = "accounts"

// AccountRepository persists account records. Counter and balance mutations
// go through findOneAndUpdate so they stay atomic per record.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountsCollection)}
}

type accountDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	NationalID     string             `bson:"national_id"`
	Username       string             `bson:"username"`
	Email          string             `bson:"email"`
	PasswordHash   string             `bson:"password_hash"`
	PhoneNumber    string             `bson:"phone_number"`
	Tier           string             `bson:"tier"`
	Balance        float64            `bson:"balance"`
	LoggedIn       bool               `bson:"logged_in"`
	FailedAttempts int                `bson:"failed_attempts"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (d *accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:             d.ID.Hex(),
		NationalID:     d.NationalID,
		Username:       d.Username,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		PhoneNumber:    d.PhoneNumber,
		Tier:           domain.SubscriptionTier(d.Tier),
		Balance:        d.Balance,
		LoggedIn:       d.LoggedIn,
		FailedAttempts: d.FailedAttempts,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// Create inserts a new account. Unique indexes on national_id and email turn
// duplicate inserts into domain errors; the violated index is recovered from
// the duplicate-key message.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	doc := accountDoc{
		NationalID:     account.NationalID,
		Username:       account.Username,
		Email:          account.Email,
		PasswordHash:   account.PasswordHash,
		PhoneNumber:    account.PhoneNumber,
		Tier:           string(account.Tier),
		Balance:        account.Balance,
		LoggedIn:       account.LoggedIn,
		FailedAttempts: account.FailedAttempts,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "email") {
				return nil, domain.ErrEmailTaken
			}
			return nil, domain.ErrNationalIDTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByNationalID(ctx context.Context, nationalID string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"national_id": nationalID})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

// IncrementFailedAttempts bumps the counter with $inc and returns the new
// value, so concurrent failures each observe a distinct count.
func (r *AccountRepository) IncrementFailedAttempts(ctx context.Context, nationalID string) (int, error) {
	update := bson.M{
		"$inc": bson.M{"failed_attempts": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc accountDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"national_id": nationalID}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrAccountNotFound
		}
		return 0, fmt.Errorf("increment failed attempts: %w", err)
	}
	return doc.FailedAttempts, nil
}

func (r *AccountRepository) ResetFailedAttempts(ctx context.Context, nationalID string) error {
	update := bson.M{"$set": bson.M{"failed_attempts": 0, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"national_id": nationalID}, update)
	if err != nil {
		return fmt.Errorf("reset failed attempts: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) MarkSignedIn(ctx context.Context, nationalID string) (*domain.Account, error) {
	update := bson.M{"$set": bson.M{
		"logged_in":       true,
		"failed_attempts": 0,
		"updated_at":      time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc accountDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"national_id": nationalID}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("mark signed in: %w", err)
	}
	return doc.toDomain(), nil
}

// MarkSignedOut flips logged_in to false. The filter requires logged_in=true,
// so a no-match distinguishes "already logged out" from "no such account"
// with one extra lookup.
func (r *AccountRepository) MarkSignedOut(ctx context.Context, nationalID string) error {
	filter := bson.M{"national_id": nationalID, "logged_in": true}
	update := bson.M{"$set": bson.M{"logged_in": false, "updated_at": time.Now().UTC()}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("mark signed out: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, findErr := r.FindByNationalID(ctx, nationalID); findErr != nil {
			return findErr
		}
		return domain.ErrAlreadyLoggedOut
	}
	return nil
}

// AdjustBalance applies delta atomically. For debits the filter also requires
// the balance to cover the amount, which is what keeps the balance from ever
// being driven negative.
func (r *AccountRepository) AdjustBalance(ctx context.Context, nationalID string, delta float64) (*domain.Account, error) {
	filter := bson.M{"national_id": nationalID}
	if delta < 0 {
		filter["balance"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"balance": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc accountDoc
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, findErr := r.FindByNationalID(ctx, nationalID); findErr != nil {
				return nil, findErr
			}
			return nil, domain.ErrInsufficientBalance
		}
		return nil, fmt.Errorf("adjust balance: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique indexes backing the account invariants.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "national_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_national_id"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
