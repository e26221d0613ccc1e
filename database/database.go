package database

import (
	"context"
	"time"

	"echofeed/config"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var Users *mongo.Collection
var Posts *mongo.Collection
var Videos *mongo.Collection
var Notifications *mongo.Collection
var PushSubs *mongo.Collection

func Connect(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return err
	}

	// Ping MongoDB
	if err := Client.Ping(ctx, nil); err != nil {
		return err
	}

	db := Client.Database(cfg.MongoDBName)
	Users = db.Collection("users")
	Posts = db.Collection("posts")
	Videos = db.Collection("videos")
	Notifications = db.Collection("notifications")
	PushSubs = db.Collection("push_subscriptions")

	logrus.Info("Connected to MongoDB successfully")
	return nil
}

func Disconnect() error {
	if Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		return err
	}

	logrus.Info("Disconnected from MongoDB")
	return nil
}
