// Package mongorepo implementa os gateways de filmes, atores e usuários sobre o MongoDB.
package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
)

// Nomes das coleções.
const (
	MoviesCollection = "movies"
	ActorsCollection = "actors"
	UsersCollection  = "users"
)

// withTimeout aplica o limite de tempo das operações; 0 desliga o limite.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// insertManyError traduz a falha de um InsertMany ordenado. O índice do
// primeiro erro de escrita é o número de documentos já gravados; sem ele
// (timeout, rede) a contagem é desconhecida.
func insertManyError(msg, collection string, err error) error {
	var bulk mongo.BulkWriteException
	if errors.As(err, &bulk) && len(bulk.WriteErrors) > 0 {
		committed := bulk.WriteErrors[0].Index
		if committed == 0 {
			return apperror.NewDBError(msg, err)
		}
		return apperror.NewPartialFailureError(msg, collection, committed, err)
	}
	return apperror.NewPartialFailureError(msg, collection, apperror.CommittedUnknown, err)
}

// EnsureIndexes cria os índices usados pelos gateways: e-mail único e
// índice multikey em movies.cast para a resolução reversa.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("falha ao criar índice de e-mail: %w", err)
	}

	_, err = db.Collection(MoviesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "cast", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("falha ao criar índice de elenco: %w", err)
	}
	return nil
}

func parseObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, apperror.NewValidationError("Invalid id")
	}
	return oid, nil
}

func parseObjectIDs(ids []string) ([]bson.ObjectID, error) {
	out := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := parseObjectID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}

func hexIDs(oids []bson.ObjectID) []string {
	out := make([]string, 0, len(oids))
	for _, oid := range oids {
		out = append(out, oid.Hex())
	}
	return out
}

// compileFilter traduz o predicado para um filtro bson. Restrições sobre o
// mesmo campo são agrupadas no mesmo documento de operadores.
func compileFilter(p domain.Predicate, allowed map[string]bool) (bson.D, error) {
	filter := bson.D{}
	position := map[string]int{}

	for _, c := range p.Clauses {
		if !allowed[c.Field] {
			return nil, fmt.Errorf("campo não filtrável: %s", c.Field)
		}

		var ops bson.D
		switch c.Op {
		case domain.OpContains:
			text, ok := c.Value.(string)
			if !ok {
				return nil, fmt.Errorf("valor de %s deve ser texto", c.Field)
			}
			ops = bson.D{
				{Key: "$regex", Value: regexp.QuoteMeta(text)},
				{Key: "$options", Value: "i"},
			}
		case domain.OpEquals:
			ops = bson.D{{Key: "$eq", Value: c.Value}}
		case domain.OpGte:
			ops = bson.D{{Key: "$gte", Value: c.Value}}
		case domain.OpLte:
			ops = bson.D{{Key: "$lte", Value: c.Value}}
		default:
			return nil, fmt.Errorf("operador não suportado: %s", c.Op)
		}

		if i, ok := position[c.Field]; ok {
			filter[i].Value = append(filter[i].Value.(bson.D), ops...)
			continue
		}
		position[c.Field] = len(filter)
		filter = append(filter, bson.E{Key: c.Field, Value: ops})
	}

	return filter, nil
}

type imageDocument struct {
	URL     string `bson:"url"`
	IsCover bool   `bson:"isCover"`
}

func toImageDocuments(images []domain.Image) []imageDocument {
	out := make([]imageDocument, 0, len(images))
	for _, img := range images {
		out = append(out, imageDocument{URL: img.URL, IsCover: img.IsCover})
	}
	return out
}

func toDomainImages(docs []imageDocument) []domain.Image {
	out := make([]domain.Image, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Image{URL: d.URL, IsCover: d.IsCover})
	}
	return out
}
