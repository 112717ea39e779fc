package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cinevault/movies-api/internal/core/ports"
)

const auditCollection = "auth_events"

type insertOner interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// AuditRepository implements ports.AuditRecorder on the auth_events
// collection. Documents are append-only.
type AuditRepository struct {
	coll insertOner
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// EnsureIndexes creates the lookup index used to inspect a user's history.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(auditCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}, {Key: "at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	return nil
}

func (r *AuditRepository) Record(ctx context.Context, ev ports.AuditEvent) error {
	if _, err := r.coll.InsertOne(ctx, auditDocument(ev)); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func auditDocument(ev ports.AuditEvent) bson.M {
	doc := bson.M{
		"action":   ev.Action,
		"username": ev.Username,
		"at":       ev.At.UTC(),
	}
	if ev.UserID > 0 {
		doc["user_id"] = ev.UserID
	}
	if ev.RequestID != "" {
		doc["request_id"] = ev.RequestID
	}
	return doc
}
