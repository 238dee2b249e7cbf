package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/unicontest/competition-system/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrTeamNotFound = errors.New("team not found")
	ErrTeamFull     = errors.New("team is already full")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByCode(ctx context.Context, code string) (*models.Team, error)
	ListCodes(ctx context.Context) (map[string]struct{}, error)
	ListByCodes(ctx context.Context, codes []string) ([]models.Team, error)
	// AddMember increments currentMembers by one, guarded server-side so the
	// count can never exceed maxMembers under concurrent joins.
	AddMember(ctx context.Context, code string) error
	// RemoveMember decrements currentMembers and deletes the team document
	// once the count reaches zero. Returns the remaining member count.
	RemoveMember(ctx context.Context, code string) (int, error)
	// AppendSubmission pushes one submission and accrues its points in a
	// single document update.
	AppendSubmission(ctx context.Context, code string, sub models.Submission) error
	SetAvatar(ctx context.Context, code, avatarKey, avatar string) error
}

type mongoTeamRepository struct {
	coll *mongo.Collection
}

func NewMongoTeamRepository(db *mongo.Database) TeamRepository {
	return &mongoTeamRepository{coll: db.Collection("teams")}
}

func (r *mongoTeamRepository) Create(ctx context.Context, team *models.Team) error {
	res, err := r.coll.InsertOne(ctx, team)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		team.ID = oid
	}
	return nil
}

func (r *mongoTeamRepository) GetByCode(ctx context.Context, code string) (*models.Team, error) {
	var team models.Team
	err := r.coll.FindOne(ctx, bson.M{"code": code}).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to decode team: %w", err)
	}
	return &team, nil
}

func (r *mongoTeamRepository) ListCodes(ctx context.Context) (map[string]struct{}, error) {
	opts := options.Find().SetProjection(bson.M{"code": 1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query team codes: %w", err)
	}
	defer cursor.Close(ctx)

	codes := make(map[string]struct{})
	for cursor.Next(ctx) {
		var doc struct {
			Code string `bson:"code"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode team code: %w", err)
		}
		codes[doc.Code] = struct{}{}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("team codes cursor error: %w", err)
	}
	return codes, nil
}

func (r *mongoTeamRepository) ListByCodes(ctx context.Context, codes []string) ([]models.Team, error) {
	if len(codes) == 0 {
		return []models.Team{}, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"code": bson.M{"$in": codes}})
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer cursor.Close(ctx)

	teams := make([]models.Team, 0)
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode teams: %w", err)
	}
	return teams, nil
}

func (r *mongoTeamRepository) AddMember(ctx context.Context, code string) error {
	// Условный инкремент: фильтр проверяет вместимость на стороне сервера,
	// поэтому между проверкой и записью нет окна гонки.
	filter := bson.M{
		"code":  code,
		"$expr": bson.M{"$lt": bson.A{"$currentMembers", "$maxMembers"}},
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"currentMembers": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment team members: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the code is unknown or the team is at capacity.
		if _, getErr := r.GetByCode(ctx, code); getErr != nil {
			return getErr
		}
		return ErrTeamFull
	}
	return nil
}

func (r *mongoTeamRepository) RemoveMember(ctx context.Context, code string) (int, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var team models.Team
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"code": code},
		bson.M{"$inc": bson.M{"currentMembers": -1}},
		opts,
	).Decode(&team)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrTeamNotFound
		}
		return 0, fmt.Errorf("failed to decrement team members: %w", err)
	}

	if team.CurrentMembers <= 0 {
		// The filter re-checks the count so a racing join cannot dissolve a
		// team that just regained a member.
		_, err := r.coll.DeleteOne(ctx, bson.M{"code": code, "currentMembers": bson.M{"$lte": 0}})
		if err != nil {
			return 0, fmt.Errorf("failed to delete empty team: %w", err)
		}
		return 0, nil
	}
	return team.CurrentMembers, nil
}

func (r *mongoTeamRepository) AppendSubmission(ctx context.Context, code string, sub models.Submission) error {
	update := bson.M{
		"$push": bson.M{"submissions": sub},
		"$inc":  bson.M{"points": sub.Points},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"code": code}, update)
	if err != nil {
		return fmt.Errorf("failed to append submission: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *mongoTeamRepository) SetAvatar(ctx context.Context, code, avatarKey, avatar string) error {
	update := bson.M{"$set": bson.M{"avatarKey": avatarKey, "avatar": avatar}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"code": code}, update)
	if err != nil {
		return fmt.Errorf("failed to update team avatar: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrTeamNotFound
	}
	return nil
}
