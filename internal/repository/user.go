package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/model"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserByEmail(ctx context.Context, email string, params UpdateUserParams) (*model.User, error)
	ListUsers(ctx context.Context, params FilterUsersParams) ([]*model.User, error)
}

// UpdateUserParams defines the optional parameters for updating a user.
// Only the fields that are not nil will be set; the Clear flags remove the
// corresponding one-time code fields from the document entirely.
type UpdateUserParams struct {
	PasswordHash              *string
	Verified                  *bool
	VerificationCode          *string
	VerificationCodeExpiresAt *time.Time
	ResetCode                 *string
	ResetCodeExpiresAt        *time.Time
	ClearVerificationCode     bool
	ClearResetCode            bool
}

// FilterUsersParams defines the parameters for filtering and paginating users.
// Secret fields (password hash, one-time codes) are never included in results.
type FilterUsersParams struct {
	Verified *bool
	Limit    uint64
	Offset   uint64
}

const userCollection = "users"

type userMongoRepository struct {
	db *mongo.Database
}

func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) UpdateUserByEmail(
	ctx context.Context,
	email string,
	params UpdateUserParams,
) (*model.User, error) {
	// Build update query
	setMap := bson.M{}
	if params.PasswordHash != nil {
		setMap["password_hash"] = *params.PasswordHash
	}
	if params.Verified != nil {
		setMap["verified"] = *params.Verified
	}
	if params.VerificationCode != nil {
		setMap["verification_code"] = *params.VerificationCode
	}
	if params.VerificationCodeExpiresAt != nil {
		setMap["verification_code_expires_at"] = *params.VerificationCodeExpiresAt
	}
	if params.ResetCode != nil {
		setMap["reset_code"] = *params.ResetCode
	}
	if params.ResetCodeExpiresAt != nil {
		setMap["reset_code_expires_at"] = *params.ResetCodeExpiresAt
	}

	unsetMap := bson.M{}
	if params.ClearVerificationCode {
		unsetMap["verification_code"] = ""
		unsetMap["verification_code_expires_at"] = ""
	}
	if params.ClearResetCode {
		unsetMap["reset_code"] = ""
		unsetMap["reset_code_expires_at"] = ""
	}

	if len(setMap) == 0 && len(unsetMap) == 0 {
		return nil, errors.New("no user fields to update")
	}

	setMap["updated_at"] = time.Now()

	update := bson.M{"$set": setMap}
	if len(unsetMap) > 0 {
		update["$unset"] = unsetMap
	}

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"email": email},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) ListUsers(ctx context.Context, params FilterUsersParams) ([]*model.User, error) {
	findOptions := options.Find()

	if params.Limit > 0 {
		findOptions.SetLimit(int64(params.Limit))
	}
	if params.Offset > 0 {
		findOptions.SetSkip(int64(params.Offset))
	}

	findOptions.SetSort(bson.D{{Key: "created_at", Value: -1}})

	// Secrets never leave the database on list reads.
	findOptions.SetProjection(bson.M{
		"password_hash":                0,
		"verification_code":            0,
		"verification_code_expires_at": 0,
		"reset_code":                   0,
		"reset_code_expires_at":        0,
	})

	filter := bson.M{}
	if params.Verified != nil {
		filter["verified"] = *params.Verified
	}

	cursor, err := r.db.Collection(userCollection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*model.User
	for cursor.Next(ctx) {
		var user model.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
