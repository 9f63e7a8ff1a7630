package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anonto42/playshelf/backend/internal/apperrors"
	"github.com/anonto42/playshelf/backend/internal/models"
)

// AuditRepository stores lifecycle events of tombstone-capable entities.
type AuditRepository interface {
	Record(ctx context.Context, event *models.AuditEvent) error
	ListByEntity(ctx context.Context, entity string, entityID uint) ([]models.AuditEvent, error)
}

// MongoAuditRepository implements AuditRepository for MongoDB
type MongoAuditRepository struct {
	collection *mongo.Collection
}

// NewMongoAuditRepository creates a new MongoAuditRepository
func NewMongoAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{collection: db.Collection("comment_audit")}
}

// EnsureIndexes creates the lookup index used by ListByEntity.
func (r *MongoAuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "entity", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "at", Value: 1}},
	})
	if err != nil {
		return apperrors.Internal(err, "failed to create audit indexes")
	}
	return nil
}

func (r *MongoAuditRepository) Record(ctx context.Context, event *models.AuditEvent) error {
	if _, err := r.collection.InsertOne(ctx, event); err != nil {
		return apperrors.Internal(err, "failed to record audit event")
	}
	return nil
}

func (r *MongoAuditRepository) ListByEntity(ctx context.Context, entity string, entityID uint) ([]models.AuditEvent, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"entity": entity, "entity_id": entityID}, findOptions)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to read audit events")
	}
	defer cursor.Close(ctx)

	events := []models.AuditEvent{}
	if err = cursor.All(ctx, &events); err != nil {
		return nil, apperrors.Internal(err, "failed to decode audit events")
	}
	return events, nil
}

// NopAuditRepository is used when no MongoDB is configured.
type NopAuditRepository struct{}

func (NopAuditRepository) Record(context.Context, *models.AuditEvent) error { return nil }

func (NopAuditRepository) ListByEntity(context.Context, string, uint) ([]models.AuditEvent, error) {
	return []models.AuditEvent{}, nil
}
