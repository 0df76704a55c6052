package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// NewMongoDB conecta ao MongoDB e devolve o banco pedido.
// O chamador é responsável por db.Client().Disconnect.
func NewMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetMaxConnIdleTime(2 * time.Minute))
	if err != nil {
		return nil, fmt.Errorf("falha ao criar o cliente MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("falha ao realizar o ping inicial no MongoDB: %w", err)
	}

	return client.Database(database), nil
}
