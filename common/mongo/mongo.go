package mongo

import (
	"context"
	"log/slog"
	"time"

	"github.com/sunthewhat/certgen-api/common"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitMongo connects the optional job history store. It is a no-op when
// mongo is not configured.
func InitMongo() {
	if common.Config.Mongo == nil || *common.Config.Mongo == "" {
		slog.Info("MongoDB not configured, bulk job history disabled")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	clientOptions := options.Client().ApplyURI(*common.Config.Mongo)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		slog.Warn("Failed to connect to MongoDB, bulk job history disabled", "error", err)
		return
	}

	if err := client.Ping(ctx, nil); err != nil {
		slog.Warn("Failed to ping MongoDB, bulk job history disabled", "error", err)
		return
	}

	database := "certgen"
	if common.Config.MongoDatabase != nil && *common.Config.MongoDatabase != "" {
		database = *common.Config.MongoDatabase
	}

	slog.Info("MongoDB Connected!", "database", database)

	common.Mongo = client.Database(database)
}
