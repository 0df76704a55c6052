package mongorepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/logger"
)

var actorFilterFields = map[string]bool{
	domain.FieldName:        true,
	domain.FieldDateOfBirth: true,
}

type actorDocument struct {
	ID          bson.ObjectID   `bson:"_id,omitempty"`
	Name        string          `bson:"name"`
	Biography   string          `bson:"biography"`
	DateOfBirth time.Time       `bson:"dateOfBirth"`
	Images      []imageDocument `bson:"images"`
}

func toActorDocument(a domain.Actor) (actorDocument, error) {
	doc := actorDocument{
		Name:        a.Name,
		Biography:   a.Biography,
		DateOfBirth: a.DateOfBirth.UTC(),
		Images:      toImageDocuments(a.Images),
	}
	if a.ID != "" {
		oid, err := parseObjectID(a.ID)
		if err != nil {
			return actorDocument{}, err
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d actorDocument) toDomain() domain.Actor {
	return domain.Actor{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Biography:   d.Biography,
		DateOfBirth: d.DateOfBirth.UTC(),
		Images:      toDomainImages(d.Images),
	}
}

// ActorRepository implementa domain.ActorRepository.
type ActorRepository struct {
	coll      *mongo.Collection
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewActorRepository cria o gateway de atores sobre a coleção actors.
func NewActorRepository(db *mongo.Database, dbTimeout time.Duration, log logger.Logger) *ActorRepository {
	return &ActorRepository{
		coll:      db.Collection(ActorsCollection),
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Create insere um ator e devolve o registro com o ID atribuído.
func (r *ActorRepository) Create(ctx context.Context, actor domain.Actor) (domain.Actor, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	doc, err := toActorDocument(actor)
	if err != nil {
		return domain.Actor{}, err
	}
	if doc.ID.IsZero() {
		doc.ID = bson.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Actor{}, apperror.NewDBError("Failed to create actor", err)
	}

	r.logger.Debug("Ator inserido.", map[string]interface{}{"actor_id": doc.ID.Hex()})
	return doc.toDomain(), nil
}

// CreateMany insere atores em lote, preservando a ordem da entrada.
func (r *ActorRepository) CreateMany(ctx context.Context, actors []domain.Actor) ([]domain.Actor, error) {
	if len(actors) == 0 {
		return []domain.Actor{}, nil
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(actors))
	created := make([]domain.Actor, 0, len(actors))
	for _, a := range actors {
		doc, err := toActorDocument(a)
		if err != nil {
			return nil, err
		}
		if doc.ID.IsZero() {
			doc.ID = bson.NewObjectID()
		}
		docs = append(docs, doc)
		created = append(created, doc.toDomain())
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return nil, insertManyError("Failed to create actors", ActorsCollection, err)
	}
	return created, nil
}

// FindByID busca um ator pelo ID.
func (r *ActorRepository) FindByID(ctx context.Context, id string) (domain.Actor, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return domain.Actor{}, err
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	var doc actorDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Actor{}, apperror.NewNotFoundError("Actor not found")
	}
	if err != nil {
		return domain.Actor{}, apperror.NewDBError("Failed to fetch actor", err)
	}
	return doc.toDomain(), nil
}

// FindByIDs busca vários atores de uma vez; IDs sem registro são ignorados.
func (r *ActorRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Actor, error) {
	if len(ids) == 0 {
		return []domain.Actor{}, nil
	}
	oids, err := parseObjectIDs(ids)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}})
}

// Find devolve os atores que satisfazem o predicado.
func (r *ActorRepository) Find(ctx context.Context, filter domain.Predicate) ([]domain.Actor, error) {
	query, err := compileFilter(filter, actorFilterFields)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to fetch actors", err)
	}
	return r.find(ctx, query)
}

func (r *ActorRepository) find(ctx context.Context, query bson.D) ([]domain.Actor, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, apperror.NewDBError("Failed to fetch actors", err)
	}

	var docs []actorDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperror.NewDBError("Failed to fetch actors", err)
	}

	actors := make([]domain.Actor, 0, len(docs))
	for _, d := range docs {
		actors = append(actors, d.toDomain())
	}
	return actors, nil
}

// Update aplica a atualização parcial e devolve o registro resultante.
func (r *ActorRepository) Update(ctx context.Context, id string, patch domain.ActorPatch) (domain.Actor, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return domain.Actor{}, err
	}

	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Biography != nil {
		set = append(set, bson.E{Key: "biography", Value: *patch.Biography})
	}
	if patch.DateOfBirth != nil {
		set = append(set, bson.E{Key: "dateOfBirth", Value: patch.DateOfBirth.UTC()})
	}
	if patch.Images != nil {
		set = append(set, bson.E{Key: "images", Value: toImageDocuments(*patch.Images)})
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	var doc actorDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Actor{}, apperror.NewNotFoundError("Actor not found")
	}
	if err != nil {
		return domain.Actor{}, apperror.NewDBError("Failed to update actor", err)
	}
	return doc.toDomain(), nil
}

// Delete remove o ator. Referências em movies.cast não são tocadas.
func (r *ActorRepository) Delete(ctx context.Context, id string) (domain.Actor, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return domain.Actor{}, err
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	var doc actorDocument
	err = r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Actor{}, apperror.NewNotFoundError("Actor not found")
	}
	if err != nil {
		return domain.Actor{}, apperror.NewDBError("Failed to delete actor", err)
	}
	return doc.toDomain(), nil
}

// DeleteAll remove todos os atores.
func (r *ActorRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, apperror.NewDBError("Failed to delete actors", err)
	}
	r.logger.Info("Atores removidos.", map[string]interface{}{"count": res.DeletedCount})
	return res.DeletedCount, nil
}

var _ domain.ActorRepository = (*ActorRepository)(nil)
