package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStorage keeps audit events in a MongoDB collection. It suits
// long-retention archives where the relational store only holds the
// recent window.
type MongoStorage struct {
	collection *mongo.Collection
}

// NewMongoStorage creates an audit storage writing to the audit_events
// collection of the given database.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{collection: db.Collection("audit_events")}
}

type auditDocument struct {
	ID          string         `bson:"_id"`
	Action      string         `bson:"action"`
	EntityType  string         `bson:"entity_type"`
	EntityID    string         `bson:"entity_id"`
	ActorID     string         `bson:"actor_id,omitempty"`
	Description string         `bson:"description,omitempty"`
	Metadata    map[string]any `bson:"metadata,omitempty"`
	CreatedAt   time.Time      `bson:"created_at"`
}

// Store appends the event to the collection.
func (s *MongoStorage) Store(ctx context.Context, event Event) error {
	doc := auditDocument{
		ID:          event.ID,
		Action:      event.Action,
		EntityType:  event.EntityType,
		EntityID:    event.EntityID,
		ActorID:     event.ActorID,
		Description: event.Description,
		Metadata:    event.Metadata,
		CreatedAt:   event.CreatedAt,
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("store audit event: %w", err)
	}
	return nil
}

// Query returns matching events newest-first.
func (s *MongoStorage) Query(ctx context.Context, criteria Criteria) ([]Event, error) {
	filter, err := s.buildFilter(ctx, criteria)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if criteria.Limit > 0 {
		opts = opts.SetLimit(int64(criteria.Limit))
	}
	if criteria.Cursor == "" && criteria.Offset > 0 {
		opts = opts.SetSkip(int64(criteria.Offset))
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []auditDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit events: %w", err)
	}

	events := make([]Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, Event{
			ID:          doc.ID,
			Action:      doc.Action,
			EntityType:  doc.EntityType,
			EntityID:    doc.EntityID,
			ActorID:     doc.ActorID,
			Description: doc.Description,
			Metadata:    doc.Metadata,
			CreatedAt:   doc.CreatedAt,
		})
	}
	return events, nil
}

// Count implements StorageCounter.
func (s *MongoStorage) Count(ctx context.Context, criteria Criteria) (int64, error) {
	filter, err := s.buildFilter(ctx, criteria)
	if err != nil {
		return 0, err
	}

	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count audit events: %w", err)
	}
	return count, nil
}

func (s *MongoStorage) buildFilter(ctx context.Context, criteria Criteria) (bson.M, error) {
	filter := bson.M{}

	if criteria.EntityID != "" {
		filter["entity_id"] = criteria.EntityID
	}
	if criteria.Action != "" {
		filter["action"] = criteria.Action
	}
	if criteria.ActorID != "" {
		filter["actor_id"] = criteria.ActorID
	}

	createdAt := bson.M{}
	if !criteria.Since.IsZero() {
		createdAt["$gte"] = criteria.Since
	}
	if !criteria.Until.IsZero() {
		createdAt["$lte"] = criteria.Until
	}

	if criteria.Cursor != "" {
		// Resume below the cursor event's timestamp. An unknown cursor
		// degrades to the first page.
		var anchor auditDocument
		err := s.collection.FindOne(ctx, bson.M{"_id": criteria.Cursor}).Decode(&anchor)
		switch {
		case err == nil:
			createdAt["$lt"] = anchor.CreatedAt
		case errors.Is(err, mongo.ErrNoDocuments):
		default:
			return nil, fmt.Errorf("resolve audit cursor: %w", err)
		}
	}

	if len(createdAt) > 0 {
		filter["created_at"] = createdAt
	}
	return filter, nil
}
