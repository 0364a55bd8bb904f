package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PierreClouet/WorkEat/internal/core/domain"
)

const accountCollection = "accounts"

// AccountRepository implements ports.AccountRepository using MongoDB.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

// EnsureIndexes creates the unique index on username. The service layer does
// a read-then-insert uniqueness check that is racy under concurrent
// registrations; this index is what actually enforces the invariant.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure account indexes: %w", err)
	}
	return nil
}

type mongoAccount struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Username      string             `bson:"username"`
	PasswordHash  string             `bson:"password_hash"`
	Name          string             `bson:"name"`
	Surname       string             `bson:"surname"`
	PostalCode    string             `bson:"postal_code"`
	Town          string             `bson:"town"`
	Address       string             `bson:"address"`
	PhoneNumber   string             `bson:"phone_number"`
	IsAdmin       bool               `bson:"is_admin"`
	IsLivreur     bool               `bson:"is_livreur"`
	IsPrestataire bool               `bson:"is_prestataire"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]domain.Account, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	defer cursor.Close(ctx)

	// Non-nil even when empty so an empty store lists as [] rather than null.
	accounts := []domain.Account{}
	for cursor.Next(ctx) {
		var ma mongoAccount
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		accounts = append(accounts, *toDomain(&ma))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toDomain(&ma), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toDomain(&ma), nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	_, err := r.coll.InsertOne(ctx, toMongo(account))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	// fetch back to get the assigned id
	return r.FindByUsername(ctx, account.Username)
}

// ReplaceByID overwrites every mutable field of the identified account. Role
// flags and creation time are deliberately left untouched.
func (r *AccountRepository) ReplaceByID(ctx context.Context, id string, account *domain.Account) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}

	update := bson.M{"$set": bson.M{
		"username":      account.Username,
		"password_hash": account.PasswordHash,
		"name":          account.Name,
		"surname":       account.Surname,
		"postal_code":   account.PostalCode,
		"town":          account.Town,
		"address":       account.Address,
		"phone_number":  account.PhoneNumber,
		"updated_at":    account.UpdatedAt.Unix(),
	}}

	var ma mongoAccount
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("replace account: %w", err)
	}
	return toDomain(&ma), nil
}

func (r *AccountRepository) DeleteByUsername(ctx context.Context, username string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func toMongo(a *domain.Account) mongoAccount {
	return mongoAccount{
		Username:      a.Username,
		PasswordHash:  a.PasswordHash,
		Name:          a.Name,
		Surname:       a.Surname,
		PostalCode:    a.PostalCode,
		Town:          a.Town,
		Address:       a.Address,
		PhoneNumber:   a.PhoneNumber,
		IsAdmin:       a.IsAdmin,
		IsLivreur:     a.IsLivreur,
		IsPrestataire: a.IsPrestataire,
		CreatedAt:     a.CreatedAt.Unix(),
		UpdatedAt:     a.UpdatedAt.Unix(),
	}
}

func toDomain(ma *mongoAccount) *domain.Account {
	return &domain.Account{
		ID:            ma.ID.Hex(),
		Username:      ma.Username,
		PasswordHash:  ma.PasswordHash,
		Name:          ma.Name,
		Surname:       ma.Surname,
		PostalCode:    ma.PostalCode,
		Town:          ma.Town,
		Address:       ma.Address,
		PhoneNumber:   ma.PhoneNumber,
		IsAdmin:       ma.IsAdmin,
		IsLivreur:     ma.IsLivreur,
		IsPrestataire: ma.IsPrestataire,
		CreatedAt:     unixToTime(ma.CreatedAt),
		UpdatedAt:     unixToTime(ma.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
