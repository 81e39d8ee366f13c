package repo

import (
	"DMR_Link/config"
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDB holds the client shared by the record and tracker stores.
type MongoDB struct {
	Client *mongo.Client
}

// NewMongoDB connects and pings the server.
func NewMongoDB(uri string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return &MongoDB{Client: client}, nil
}

// Close disconnects the client.
func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// Records returns the part record store configured in AppConfig.
func (m *MongoDB) Records() *MongoRecordStore {
	db := m.Client.Database(config.AppConfig.RecordsDB)
	return NewMongoRecordStore(db, CollectionNames{
		Package:       config.AppConfig.PkgCollection,
		Manufacturing: config.AppConfig.MfgCollection,
		Component:     config.AppConfig.ComponentCollection,
	})
}

// Tracker returns the link tracker store configured in AppConfig.
func (m *MongoDB) Tracker() *MongoTrackerStore {
	coll := m.Client.Database(config.AppConfig.TrackerDB).Collection(config.AppConfig.TrackerCollection)
	return NewMongoTrackerStore(coll)
}

// InitMongo initializes the MongoDB connection.
func InitMongo() *MongoDB {
	db, err := NewMongoDB(config.AppConfig.MongoURI)
	if err != nil {
		log.Fatal("init mongo fail: ", err)
	}
	log.Println("init mongo success")
	return db
}
