package main

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"cinecatalog/config"
	"cinecatalog/internal/domain"
	"cinecatalog/internal/pkg/database"
	"cinecatalog/internal/pkg/logger"
	"cinecatalog/internal/repository/mongorepo"
	"cinecatalog/internal/repository/pgrepo"
)

// stores reúne os gateways do backend escolhido em STORE_DRIVER.
type stores struct {
	movies domain.MovieRepository
	actors domain.ActorRepository
	users  domain.UserRepository
	ping   func(ctx context.Context) error
	close  func()
}

func openStores(ctx context.Context, cfg *config.Config, log logger.Logger) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		db, err := database.NewMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
			db.Client().Disconnect(context.Background())
			return nil, err
		}
		log.Info("Conexão MongoDB estabelecida.", map[string]interface{}{"database": cfg.MongoDatabase})

		return &stores{
			movies: mongorepo.NewMovieRepository(db, cfg.DBTimeout, log),
			actors: mongorepo.NewActorRepository(db, cfg.DBTimeout, log),
			users:  mongorepo.NewUserRepository(db, cfg.DBTimeout, log),
			ping: func(ctx context.Context) error {
				return db.Client().Ping(ctx, readpref.Primary())
			},
			close: func() {
				if err := db.Client().Disconnect(context.Background()); err != nil {
					log.Error("Falha ao desconectar do MongoDB.", err)
				}
			},
		}, nil

	case config.DriverPostgres:
		db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pgrepo.Migrate(db, "up"); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("Conexão PostgreSQL estabelecida; migrações aplicadas.", nil)

		return &stores{
			movies: pgrepo.NewMovieRepository(db, cfg.DBTimeout, log),
			actors: pgrepo.NewActorRepository(db, cfg.DBTimeout, log),
			users:  pgrepo.NewUserRepository(db, cfg.DBTimeout, log),
			ping:   db.PingContext,
			close: func() {
				if err := db.Close(); err != nil {
					log.Error("Falha ao fechar o PostgreSQL.", err)
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("driver de armazenamento desconhecido: %s", cfg.StoreDriver)
}
