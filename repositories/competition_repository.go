package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/unicontest/competition-system/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrCompetitionNotFound       = errors.New("competition not found")
	ErrCompetitionConflict       = errors.New("competition already exists")
	ErrCompetitionTeamRegistered = errors.New("team is already registered for this competition")
)

type CompetitionRepository interface {
	Create(ctx context.Context, comp *models.Competition) error
	GetByID(ctx context.Context, id string) (*models.Competition, error)
	List(ctx context.Context, limit int64) ([]models.Competition, error)
	ListByStatuses(ctx context.Context, statuses ...models.CompetitionStatus) ([]models.Competition, error)
	// RegisterTeam adds a team code to the competition, rejecting duplicates
	// with a single conditional update.
	RegisterTeam(ctx context.Context, id, code string) (totalTeams int, err error)
	UpdateStatus(ctx context.Context, id string, status models.CompetitionStatus) error
}

type mongoCompetitionRepository struct {
	coll *mongo.Collection
}

func NewMongoCompetitionRepository(db *mongo.Database) CompetitionRepository {
	return &mongoCompetitionRepository{coll: db.Collection("competition")}
}

func (r *mongoCompetitionRepository) Create(ctx context.Context, comp *models.Competition) error {
	// Совпадение по id или названию считаем дубликатом.
	count, err := r.coll.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"id": comp.ID},
		bson.M{"title": comp.Title},
	}})
	if err != nil {
		return fmt.Errorf("failed to check for existing competition: %w", err)
	}
	if count > 0 {
		return ErrCompetitionConflict
	}

	if _, err := r.coll.InsertOne(ctx, comp); err != nil {
		return fmt.Errorf("failed to insert competition: %w", err)
	}
	return nil
}

func (r *mongoCompetitionRepository) GetByID(ctx context.Context, id string) (*models.Competition, error) {
	var comp models.Competition
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&comp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to decode competition: %w", err)
	}
	return &comp, nil
}

func (r *mongoCompetitionRepository) List(ctx context.Context, limit int64) ([]models.Competition, error) {
	opts := options.Find().SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query competitions: %w", err)
	}
	defer cursor.Close(ctx)

	comps := make([]models.Competition, 0)
	if err := cursor.All(ctx, &comps); err != nil {
		return nil, fmt.Errorf("failed to decode competitions: %w", err)
	}
	return comps, nil
}

func (r *mongoCompetitionRepository) ListByStatuses(ctx context.Context, statuses ...models.CompetitionStatus) ([]models.Competition, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"status": bson.M{"$in": statuses}})
	if err != nil {
		return nil, fmt.Errorf("failed to query competitions by status: %w", err)
	}
	defer cursor.Close(ctx)

	comps := make([]models.Competition, 0)
	if err := cursor.All(ctx, &comps); err != nil {
		return nil, fmt.Errorf("failed to decode competitions: %w", err)
	}
	return comps, nil
}

func (r *mongoCompetitionRepository) RegisterTeam(ctx context.Context, id, code string) (int, error) {
	// $addToSet с фильтром $ne: повторная регистрация не проходит фильтр.
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var comp models.Competition
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"id": id, "teams": bson.M{"$ne": code}},
		bson.M{"$addToSet": bson.M{"teams": code}},
		opts,
	).Decode(&comp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Distinguish a missing competition from a duplicate registration.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return 0, getErr
			}
			return 0, ErrCompetitionTeamRegistered
		}
		return 0, fmt.Errorf("failed to register team: %w", err)
	}
	return len(comp.Teams), nil
}

func (r *mongoCompetitionRepository) UpdateStatus(ctx context.Context, id string, status models.CompetitionStatus) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update competition status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrCompetitionNotFound
	}
	return nil
}
