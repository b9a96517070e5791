package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type App struct {
	cfg      Config
	log      *logrus.Entry
	mongo    *mongo.Client
	db       *mongo.Database
	readings *mongo.Collection
	settings *mongo.Collection
	reports  *mongo.Collection
}

func newApp(ctx context.Context, cfg Config, logger *logrus.Entry) (*App, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)

	app := &App{
		cfg:      cfg,
		log:      logger,
		mongo:    client,
		db:       db,
		readings: db.Collection("readings"),
		settings: db.Collection("settings"),
		reports:  db.Collection("reports"),
	}
	// Indexes
	if _, err := app.readings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "deviceId", Value: 1}, {Key: "ts", Value: -1}},
	}); err != nil {
		return nil, err
	}
	if _, err := app.settings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return nil, err
	}
	if _, err := app.reports.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "deviceId", Value: 1}, {Key: "createdAt", Value: -1}},
	}); err != nil {
		return nil, err
	}

	return app, nil
}

func (a *App) close(ctx context.Context) { _ = a.mongo.Disconnect(ctx) }
