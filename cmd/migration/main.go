package main

import (
	"context"
	"medimarket-service/internal/app/config"
	"medimarket-service/internal/app/drivers/database"
	"medimarket-service/internal/app/drivers/logger"
	"medimarket-service/internal/app/services/shared/journal"
	"time"
)

// migration creates the mongo indexes the submission journal relies on.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(internalConfig)

	mongoDB := database.NewMongoDB(driverConfig, log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	defer mongoDB.Disconnect(ctx)

	err := journal.EnsureIndexes(ctx, mongoDB, internalConfig.MongoDB.DBName)
	if err != nil {
		log.Fatalf("Error executing migration: %v", err)
	}

	log.Printf("Applied submission journal indexes on %s", internalConfig.MongoDB.DBName)
}
