package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"meatadmin/config"
)

// Store wraps the Mongo client and the collection handles the dashboard
// works with. It is constructed once at startup and passed down explicitly.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database

	Orders          *mongo.Collection
	Products        *mongo.Collection
	Users           *mongo.Collection
	Admins          *mongo.Collection
	AuthAccounts    *mongo.Collection
	BlacklistTokens *mongo.Collection
	WalletLogs      *mongo.Collection
}

func NewStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.DBName)
	return &Store{
		Client:          client,
		DB:              db,
		Orders:          db.Collection("orders"),
		Products:        db.Collection("products"),
		Users:           db.Collection("users"),
		Admins:          db.Collection("admins"),
		AuthAccounts:    db.Collection("auth_accounts"),
		BlacklistTokens: db.Collection("blacklist_tokens"),
		WalletLogs:      db.Collection("wallet_logs"),
	}, nil
}

func (s *Store) Disconnect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.Client.Disconnect(ctx)
}
