package repo

import (
	"DMR_Link/model"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TrackerStore persists the list of outstanding sharing links.
type TrackerStore interface {
	// Append adds a link, creating the tracking record if absent.
	Append(ctx context.Context, link model.TrackedLink) error
	// Load returns every tracked link. A missing record yields an empty list.
	Load(ctx context.Context) ([]model.TrackedLink, error)
	// Replace overwrites the tracked list.
	Replace(ctx context.Context, links []model.TrackedLink) error
}

var trackerFilter = bson.M{"links": bson.M{"$exists": true}}

// MongoTrackerStore keeps the tracked links in a single document.
type MongoTrackerStore struct {
	coll *mongo.Collection
}

// NewMongoTrackerStore builds a tracker store over coll.
func NewMongoTrackerStore(coll *mongo.Collection) *MongoTrackerStore {
	return &MongoTrackerStore{coll: coll}
}

// Append pushes a link onto the tracking document, upserting it.
func (s *MongoTrackerStore) Append(ctx context.Context, link model.TrackedLink) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.coll.UpdateOne(ctx, trackerFilter,
		bson.M{"$push": bson.M{"links": link}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("append tracked link: %w", err)
	}
	return nil
}

// Load flattens the links of every tracking document.
func (s *MongoTrackerStore) Load(ctx context.Context) ([]model.TrackedLink, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("load tracked links: %w", err)
	}
	defer cursor.Close(ctx)

	links := []model.TrackedLink{}
	for cursor.Next(ctx) {
		var doc model.LinkTrackerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tracker document: %w", err)
		}
		links = append(links, doc.Links...)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("load tracked links: %w", err)
	}
	return links, nil
}

// Replace sets the tracked list. With no tracking document it is a no-op.
func (s *MongoTrackerStore) Replace(ctx context.Context, links []model.TrackedLink) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if links == nil {
		links = []model.TrackedLink{}
	}
	if _, err := s.coll.UpdateOne(ctx, trackerFilter, bson.M{"$set": bson.M{"links": links}}); err != nil {
		return fmt.Errorf("replace tracked links: %w", err)
	}
	return nil
}
