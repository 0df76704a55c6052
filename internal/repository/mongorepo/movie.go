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

var movieFilterFields = map[string]bool{
	domain.FieldTitle:       true,
	domain.FieldGenre:       true,
	domain.FieldReleaseYear: true,
	domain.FieldRating:      true,
}

type movieDocument struct {
	ID          bson.ObjectID   `bson:"_id,omitempty"`
	Title       string          `bson:"title"`
	Description string          `bson:"description"`
	Genre       string          `bson:"genre"`
	Director    string          `bson:"director"`
	ReleaseYear int             `bson:"releaseYear"`
	Rating      float64         `bson:"rating"`
	Cast        []bson.ObjectID `bson:"cast"`
	Images      []imageDocument `bson:"images"`
}

func toMovieDocument(m domain.Movie) (movieDocument, error) {
	cast, err := parseObjectIDs(m.Cast)
	if err != nil {
		return movieDocument{}, err
	}
	doc := movieDocument{
		Title:       m.Title,
		Description: m.Description,
		Genre:       m.Genre,
		Director:    m.Director,
		ReleaseYear: m.ReleaseYear,
		Rating:      m.Rating,
		Cast:        cast,
		Images:      toImageDocuments(m.Images),
	}
	if m.ID != "" {
		if doc.ID, err = parseObjectID(m.ID); err != nil {
			return movieDocument{}, err
		}
	}
	return doc, nil
}

func (d movieDocument) toDomain() domain.Movie {
	return domain.Movie{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Genre:       d.Genre,
		Director:    d.Director,
		ReleaseYear: d.ReleaseYear,
		Rating:      d.Rating,
		Cast:        hexIDs(d.Cast),
		Images:      toDomainImages(d.Images),
	}
}

// MovieRepository implementa domain.MovieRepository.
type MovieRepository struct {
	coll      *mongo.Collection
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewMovieRepository cria o gateway de filmes sobre a coleção movies.
func NewMovieRepository(db *mongo.Database, dbTimeout time.Duration, log logger.Logger) *MovieRepository {
	return &MovieRepository{
		coll:      db.Collection(MoviesCollection),
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Create insere um filme e devolve o registro com o ID atribuído.
func (r *MovieRepository) Create(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	doc, err := toMovieDocument(movie)
	if err != nil {
		return domain.Movie{}, err
	}
	if doc.ID.IsZero() {
		doc.ID = bson.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Movie{}, apperror.NewDBError("Failed to create movie", err)
	}

	r.logger.Debug("Filme inserido.", map[string]interface{}{"movie_id": doc.ID.Hex()})
	return doc.toDomain(), nil
}

// CreateMany insere filmes em lote, preservando a ordem da entrada.
func (r *MovieRepository) CreateMany(ctx context.Context, movies []domain.Movie) ([]domain.Movie, error) {
	if len(movies) == 0 {
		return []domain.Movie{}, nil
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(movies))
	created := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		doc, err := toMovieDocument(m)
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
		return nil, insertManyError("Failed to create movies", MoviesCollection, err)
	}
	return created, nil
}

// FindByID busca um filme pelo ID.
func (r *MovieRepository) FindByID(ctx context.Context, id string) (domain.Movie, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return domain.Movie{}, err
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	var doc movieDocument
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Movie{}, apperror.NewNotFoundError("Movie not found")
	}
	if err != nil {
		return domain.Movie{}, apperror.NewDBError("Failed to fetch movie", err)
	}
	return doc.toDomain(), nil
}

// Find devolve os filmes que satisfazem o predicado.
func (r *MovieRepository) Find(ctx context.Context, filter domain.Predicate) ([]domain.Movie, error) {
	query, err := compileFilter(filter, movieFilterFields)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to fetch movies", err)
	}
	return r.find(ctx, query)
}

// FindByCastMember devolve os filmes cujo elenco contém actorID.
func (r *MovieRepository) FindByCastMember(ctx context.Context, actorID string) ([]domain.Movie, error) {
	oid, err := parseObjectID(actorID)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.D{{Key: "cast", Value: oid}})
}

func (r *MovieRepository) find(ctx context.Context, query bson.D) ([]domain.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, apperror.NewDBError("Failed to fetch movies", err)
	}

	var docs []movieDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperror.NewDBError("Failed to fetch movies", err)
	}

	movies := make([]domain.Movie, 0, len(docs))
	for _, d := range docs {
		movies = append(movies, d.toDomain())
	}
	return movies, nil
}

// Update aplica a atualização parcial e devolve o registro resultante.
func (r *MovieRepository) Update(ctx context.Context, id string, patch domain.MoviePatch) (domain.Movie, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return domain.Movie{}, err
	}

	set, err := movieSetDocument(patch)
	if err != nil {
		return domain.Movie{}, err
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	var doc movieDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Movie{}, apperror.NewNotFoundError("Movie not found")
	}
	if err != nil {
		return domain.Movie{}, apperror.NewDBError("Failed to update movie", err)
	}
	return doc.toDomain(), nil
}

func movieSetDocument(p domain.MoviePatch) (bson.D, error) {
	set := bson.D{}
	if p.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *p.Title})
	}
	if p.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *p.Description})
	}
	if p.Genre != nil {
		set = append(set, bson.E{Key: "genre", Value: *p.Genre})
	}
	if p.Director != nil {
		set = append(set, bson.E{Key: "director", Value: *p.Director})
	}
	if p.ReleaseYear != nil {
		set = append(set, bson.E{Key: "releaseYear", Value: *p.ReleaseYear})
	}
	if p.Rating != nil {
		set = append(set, bson.E{Key: "rating", Value: *p.Rating})
	}
	if p.Cast != nil {
		cast, err := parseObjectIDs(*p.Cast)
		if err != nil {
			return nil, err
		}
		set = append(set, bson.E{Key: "cast", Value: cast})
	}
	if p.Images != nil {
		set = append(set, bson.E{Key: "images", Value: toImageDocuments(*p.Images)})
	}
	return set, nil
}

// Delete remove o filme e devolve o registro removido.
func (r *MovieRepository) Delete(ctx context.Context, id string) (domain.Movie, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return domain.Movie{}, err
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	var doc movieDocument
	err = r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Movie{}, apperror.NewNotFoundError("Movie not found")
	}
	if err != nil {
		return domain.Movie{}, apperror.NewDBError("Failed to delete movie", err)
	}
	return doc.toDomain(), nil
}

// DeleteAll remove todos os filmes.
func (r *MovieRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, apperror.NewDBError("Failed to delete movies", err)
	}
	r.logger.Info("Filmes removidos.", map[string]interface{}{"count": res.DeletedCount})
	return res.DeletedCount, nil
}

var _ domain.MovieRepository = (*MovieRepository)(nil)
