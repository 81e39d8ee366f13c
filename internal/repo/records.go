package repo

import (
	"DMR_Link/model"
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const queryTimeout = 10 * time.Second

// RecordStore is the read-only query interface over the part collections.
type RecordStore interface {
	// FindMatching returns records whose field contains pattern, ignoring case.
	// It returns an empty slice, never nil, when nothing matches.
	FindMatching(ctx context.Context, c model.Collection, field, pattern string) ([]model.PartRecord, error)
	// FindByPart returns the record with the exact part id, or nil when absent.
	FindByPart(ctx context.Context, c model.Collection, part string) (*model.PartRecord, error)
}

// CollectionNames maps each logical collection to its MongoDB collection name.
type CollectionNames struct {
	Package       string
	Manufacturing string
	Component     string
}

// MongoRecordStore implements RecordStore over MongoDB.
type MongoRecordStore struct {
	collections map[model.Collection]*mongo.Collection
}

// NewMongoRecordStore binds the three collections in db.
func NewMongoRecordStore(db *mongo.Database, names CollectionNames) *MongoRecordStore {
	return &MongoRecordStore{
		collections: map[model.Collection]*mongo.Collection{
			model.CollectionPackage:       db.Collection(names.Package),
			model.CollectionManufacturing: db.Collection(names.Manufacturing),
			model.CollectionComponent:     db.Collection(names.Component),
		},
	}
}

func (s *MongoRecordStore) collection(c model.Collection) (*mongo.Collection, error) {
	coll, ok := s.collections[c]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", c)
	}
	return coll, nil
}

// FindMatching performs a case-insensitive substring match on field.
func (s *MongoRecordStore) FindMatching(ctx context.Context, c model.Collection, field, pattern string) ([]model.PartRecord, error) {
	coll, err := s.collection(c)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{field: primitive.Regex{Pattern: regexp.QuoteMeta(pattern), Options: "i"}}
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s.%s: %w", c, field, err)
	}
	defer cursor.Close(ctx)

	records := []model.PartRecord{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", c, err)
		}
		records = append(records, model.NewPartRecord(c, stringField(doc)))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor %s.%s: %w", c, field, err)
	}
	return records, nil
}

// FindByPart looks up a record by exact part id.
func (s *MongoRecordStore) FindByPart(ctx context.Context, c model.Collection, part string) (*model.PartRecord, error) {
	coll, err := s.collection(c)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc bson.M
	err = coll.FindOne(ctx, bson.M{model.FieldPart: part}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s part %s: %w", c, part, err)
	}
	record := model.NewPartRecord(c, stringField(doc))
	return &record, nil
}

// stringField reads fields from a raw document. Absent and null fields read
// as empty strings; other non-string values are formatted.
func stringField(doc bson.M) func(name string) string {
	return func(name string) string {
		v, ok := doc[name]
		if !ok || v == nil {
			return ""
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
}
