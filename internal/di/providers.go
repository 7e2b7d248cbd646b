package di

import (
	"context"

	"gorm.io/gorm"

	"guestbook/internal/admin"
	"guestbook/internal/common"
	"guestbook/internal/config"
	"guestbook/internal/dbmongo"
	"guestbook/internal/dbmysql"
	"guestbook/internal/message"
)

// Application bundles everything the API binary needs once wiring is done.
type Application struct {
	Config         *config.Config
	DB             *gorm.DB
	Mongo          *dbmongo.MongoClient
	Storage        *dbmongo.MediaStorage
	MessageHandler *message.Handler
	AdminHandler   *admin.Handler
}

func provideMySQL(cfg *config.Config) (*gorm.DB, error) {
	return dbmysql.NewMySQL(cfg)
}

func provideMongo(cfg *config.Config) (*dbmongo.MongoClient, func(), error) {
	client, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { client.Close(context.Background()) }
	return client, cleanup, nil
}

func provideMediaStorage(client *dbmongo.MongoClient, cfg *config.Config) *dbmongo.MediaStorage {
	return dbmongo.NewMediaStorage(client, cfg.Server.MediaBaseURL)
}

func provideObjectStore(storage *dbmongo.MediaStorage) common.ObjectStore {
	return storage
}
