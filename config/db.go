// config/db.go
package config

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes connection to MongoDB
func ConnectDB() *mongo.Client {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = os.Getenv("MONGODB_URI")
	}

	// Only use Docker service name as fallback in development
	if mongoURI == "" {
		env := os.Getenv("ENV")
		if env == "development" || env == "dev" {
			mongoURI = "mongodb://mongodb:27017"
		} else {
			log.Fatal("MONGO_URI or MONGODB_URI environment variable is required for production")
		}
	}

	log.Printf("Connecting to MongoDB at: %s", maskMongoURI(mongoURI))

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal("MongoDB ping error:", err)
	}

	log.Println("Connected to MongoDB")

	setupCollections(client)

	return client
}

// GetCollection returns MongoDB collection
func GetCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "signforge"
	}
	return client.Database(dbName).Collection(collectionName)
}

// setupCollections ensures all necessary collections and indexes exist
func setupCollections(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "signforge"
	}

	db := client.Database(dbName)

	collections := []string{
		"organizations", "users", "clients", "leads", "campaigns",
		"projects", "tasks", "commissions", "commissionPayments",
		"productionSchedules", "installationSchedules", "issues",
		"signSpecifications", "proposals", "designVersions",
		"notifications", "integrationSettings",
	}
	for _, collName := range collections {
		db.CreateCollection(ctx, collName)
	}

	// Email index for users collection
	userColl := db.Collection("users")
	emailIndexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := userColl.Indexes().CreateOne(ctx, emailIndexModel); err != nil {
		log.Printf("Error creating email index: %v", err)
	}

	// Organization scoping index for tenant collections
	for _, collName := range []string{
		"clients", "leads", "campaigns", "projects", "tasks",
		"productionSchedules", "installationSchedules", "issues",
		"signSpecifications", "proposals", "designVersions",
	} {
		coll := db.Collection(collName)
		orgIndexModel := mongo.IndexModel{
			Keys: bson.D{{Key: "organizationId", Value: 1}},
		}
		if _, err := coll.Indexes().CreateOne(ctx, orgIndexModel); err != nil {
			log.Printf("Error creating organizationId index for %s: %v", collName, err)
		}
	}

	// One commission per (project, user, type)
	commissionColl := db.Collection("commissions")
	commissionIndexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "projectId", Value: 1},
			{Key: "userId", Value: 1},
			{Key: "type", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := commissionColl.Indexes().CreateOne(ctx, commissionIndexModel); err != nil {
		log.Printf("Error creating commission uniqueness index: %v", err)
	}

	// One settlement per (user, year, month); backstops concurrent
	// ProcessMonthlyPayment calls
	paymentColl := db.Collection("commissionPayments")
	paymentIndexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "year", Value: 1},
			{Key: "month", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := paymentColl.Indexes().CreateOne(ctx, paymentIndexModel); err != nil {
		log.Printf("Error creating commission payment uniqueness index: %v", err)
	}

	log.Println("Database collections and indexes setup complete")
}

// maskMongoURI masks the password in MongoDB URI for logging
func maskMongoURI(uri string) string {
	if idx := strings.Index(uri, "@"); idx > 0 {
		if colonIdx := strings.LastIndex(uri[:idx], ":"); colonIdx > 0 {
			return uri[:colonIdx+1] + "***" + uri[idx:]
		}
	}
	return uri
}
