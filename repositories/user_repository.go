package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/unicontest/competition-system/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("user email conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetTeamCode(ctx context.Context, username, code string) error
	ListByTeamCode(ctx context.Context, code string) ([]models.User, error)
	ListByTeamCodes(ctx context.Context, codes []string) ([]models.User, error)
}

type mongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: db.Collection("users")}
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		// Требует уникального индекса по email; без него конфликт ловит сервис.
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserEmailConflict
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

// SetTeamCode updates the user's back-reference to a team. An empty code
// clears the linkage. The reference is never authoritative for membership
// counts; Team.currentMembers is.
func (r *mongoUserRepository) SetTeamCode(ctx context.Context, username, code string) error {
	var update bson.M
	if code == "" {
		update = bson.M{"$unset": bson.M{"teamCode": ""}}
	} else {
		update = bson.M{"$set": bson.M{"teamCode": code}}
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		return fmt.Errorf("failed to update user team code: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *mongoUserRepository) ListByTeamCode(ctx context.Context, code string) ([]models.User, error) {
	return r.list(ctx, bson.M{"teamCode": code})
}

func (r *mongoUserRepository) ListByTeamCodes(ctx context.Context, codes []string) ([]models.User, error) {
	if len(codes) == 0 {
		return []models.User{}, nil
	}
	return r.list(ctx, bson.M{"teamCode": bson.M{"$in": codes}})
}

func (r *mongoUserRepository) list(ctx context.Context, filter bson.M) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}
