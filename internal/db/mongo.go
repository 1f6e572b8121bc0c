package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDB connection instance
var MongoClient *mongo.Client

// ConnectMongoDB initializes the database connection
func ConnectMongoDB(uri, dbName string) *mongo.Database {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}

	// Ping the database to verify connection
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatalf("MongoDB ping failed: %v", err)
	}

	fmt.Println("✅ Connected to MongoDB")
	MongoClient = client
	return client.Database(dbName)
}

// EnsureIndexes creates the unique indexes the write paths rely on: user
// emails and exam categories. Precheck reads alone cannot enforce
// uniqueness under concurrent writers; the index makes the database the
// arbiter and the services translate its duplicate-key errors.
func EnsureIndexes(database *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	unique := func(collection, field string) {
		_, err := database.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			log.Fatalf("Failed to create unique index on %s.%s: %v", collection, field, err)
		}
	}

	unique("users", "email")
	unique("exams", "category")
}

// GetCollection returns a MongoDB collection
func GetCollection(dbName, collectionName string) *mongo.Collection {
	return MongoClient.Database(dbName).Collection(collectionName)
}
