package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodbao/admin-api/internal/core/domain"
)

const resetCollection = "password_resets"

// ResetRepository persists password-reset tokens.
type ResetRepository struct {
	coll *mongo.Collection
}

func NewResetRepository(db *mongo.Database) *ResetRepository {
	return &ResetRepository{coll: db.Collection(resetCollection)}
}

type resetDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Username  string             `bson:"username"`
	Token     string             `bson:"token"`
	ResetCode string             `bson:"reset_code,omitempty"`
	Method    string             `bson:"reset_method"`
	CreatedAt int64              `bson:"created_at"`
	ExpiresAt int64              `bson:"expires_at"`
}

func (r *ResetRepository) Insert(ctx context.Context, reset *domain.PasswordReset) error {
	doc := resetDoc{
		UserID:    reset.UserID,
		Username:  reset.Username,
		Token:     reset.Token,
		ResetCode: reset.ResetCode,
		Method:    reset.Method,
		CreatedAt: reset.CreatedAt.Unix(),
		ExpiresAt: reset.ExpiresAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

// DeleteCodes removes only the WhatsApp rows; email tokens coexist until
// they expire or are consumed.
func (r *ResetRepository) DeleteCodes(ctx context.Context, userID string) error {
	filter := bson.M{"user_id": userID, "reset_method": domain.ResetMethodWhatsApp}
	if _, err := r.coll.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("delete reset codes: %w", err)
	}
	return nil
}

func (r *ResetRepository) FindByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	return r.findOne(ctx, bson.M{"token": token})
}

func (r *ResetRepository) FindByCode(ctx context.Context, userID, code string) (*domain.PasswordReset, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "reset_code": code})
}

func (r *ResetRepository) findOne(ctx context.Context, filter bson.M) (*domain.PasswordReset, error) {
	// Newest first: the email flow may hold several rows per user.
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var doc resetDoc
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("find reset token: %w", err)
	}

	return &domain.PasswordReset{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID,
		Username:  doc.Username,
		Token:     doc.Token,
		ResetCode: doc.ResetCode,
		Method:    doc.Method,
		CreatedAt: time.Unix(doc.CreatedAt, 0).UTC(),
		ExpiresAt: time.Unix(doc.ExpiresAt, 0).UTC(),
	}, nil
}

func (r *ResetRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrResetTokenInvalid
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete reset token: %w", err)
	}
	return nil
}
