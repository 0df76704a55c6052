package pgrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/identifier"
	"cinecatalog/internal/pkg/logger"
)

const movieColumns = `id, title, description, genre, director, release_year, rating, cast_ids, images`

var movieFilterColumns = map[string]string{
	domain.FieldTitle:       "title",
	domain.FieldGenre:       "genre",
	domain.FieldReleaseYear: "release_year",
	domain.FieldRating:      "rating",
}

// MovieRepository implementa domain.MovieRepository.
type MovieRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewMovieRepository cria o gateway de filmes sobre a tabela movies.
func NewMovieRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *MovieRepository {
	return &MovieRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

func scanMovie(row rowScanner) (domain.Movie, error) {
	var (
		m      domain.Movie
		cast   []string
		images []byte
	)
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Genre, &m.Director,
		&m.ReleaseYear, &m.Rating, pq.Array(&cast), &images)
	if err != nil {
		return domain.Movie{}, err
	}
	if cast == nil {
		cast = []string{}
	}
	m.Cast = cast
	if m.Images, err = unmarshalImages(images); err != nil {
		return domain.Movie{}, err
	}
	return m, nil
}

const insertMovieSQL = `INSERT INTO movies (` + movieColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertMovie(ctx context.Context, db execer, m domain.Movie) (domain.Movie, error) {
	m.ID = identifier.New()
	if m.Cast == nil {
		m.Cast = []string{}
	}
	if m.Images == nil {
		m.Images = []domain.Image{}
	}
	images, err := marshalImages(m.Images)
	if err != nil {
		return domain.Movie{}, err
	}

	_, err = db.ExecContext(ctx, insertMovieSQL,
		m.ID, m.Title, m.Description, m.Genre, m.Director,
		m.ReleaseYear, m.Rating, pq.Array(m.Cast), images)
	if err != nil {
		return domain.Movie{}, err
	}
	return m, nil
}

// Create insere um filme e devolve o registro com o ID atribuído.
func (r *MovieRepository) Create(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	created, err := insertMovie(ctx, r.DB, movie)
	if err != nil {
		return domain.Movie{}, apperror.NewDBError("Failed to create movie", err)
	}
	r.logger.Debug("Filme inserido.", map[string]interface{}{"movie_id": created.ID})
	return created, nil
}

// CreateMany insere filmes em lote numa transação.
func (r *MovieRepository) CreateMany(ctx context.Context, movies []domain.Movie) (created []domain.Movie, err error) {
	if len(movies) == 0 {
		return []domain.Movie{}, nil
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperror.NewDBError("Failed to create movies", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	created = make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		var c domain.Movie
		if c, err = insertMovie(ctx, tx, m); err != nil {
			return nil, apperror.NewDBError("Failed to create movies", err)
		}
		created = append(created, c)
	}

	if err = tx.Commit(); err != nil {
		return nil, apperror.NewDBError("Failed to create movies", err)
	}
	return created, nil
}

// FindByID busca um filme pelo ID.
func (r *MovieRepository) FindByID(ctx context.Context, id string) (domain.Movie, error) {
	if err := checkID(id); err != nil {
		return domain.Movie{}, err
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	m, err := scanMovie(r.DB.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, apperror.NewNotFoundError("Movie not found")
	}
	if err != nil {
		return domain.Movie{}, apperror.NewDBError("Failed to fetch movie", err)
	}
	return m, nil
}

// Find devolve os filmes que satisfazem o predicado.
func (r *MovieRepository) Find(ctx context.Context, filter domain.Predicate) ([]domain.Movie, error) {
	where, args, err := compileWhere(filter, movieFilterColumns)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to fetch movies", err)
	}
	return r.query(ctx, `SELECT `+movieColumns+` FROM movies`+where+` ORDER BY id`, args...)
}

// FindByCastMember devolve os filmes cujo elenco contém actorID.
func (r *MovieRepository) FindByCastMember(ctx context.Context, actorID string) ([]domain.Movie, error) {
	if err := checkID(actorID); err != nil {
		return nil, err
	}
	return r.query(ctx, `SELECT `+movieColumns+` FROM movies WHERE $1 = ANY(cast_ids) ORDER BY id`, actorID)
}

func (r *MovieRepository) query(ctx context.Context, q string, args ...interface{}) ([]domain.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, apperror.NewDBError("Failed to fetch movies", err)
	}
	defer rows.Close()

	movies := []domain.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, apperror.NewDBError("Failed to fetch movies", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Failed to fetch movies", err)
	}
	return movies, nil
}

const updateMovieSQL = `UPDATE movies SET title = $2, description = $3, genre = $4, director = $5,
	release_year = $6, rating = $7, cast_ids = $8, images = $9 WHERE id = $1`

// Update lê o filme com FOR UPDATE, aplica o patch e grava o registro inteiro
// na mesma transação.
func (r *MovieRepository) Update(ctx context.Context, id string, patch domain.MoviePatch) (updated domain.Movie, err error) {
	if err := checkID(id); err != nil {
		return domain.Movie{}, err
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.Movie{}, apperror.NewDBError("Failed to update movie", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	current, err := scanMovie(tx.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, apperror.NewNotFoundError("Movie not found")
	}
	if err != nil {
		return domain.Movie{}, apperror.NewDBError("Failed to update movie", err)
	}

	updated = patch.Apply(current)
	if updated.Cast == nil {
		updated.Cast = []string{}
	}
	if updated.Images == nil {
		updated.Images = []domain.Image{}
	}
	images, err := marshalImages(updated.Images)
	if err != nil {
		return domain.Movie{}, apperror.NewInternalError("Failed to update movie", err)
	}

	_, err = tx.ExecContext(ctx, updateMovieSQL, id, updated.Title, updated.Description, updated.Genre,
		updated.Director, updated.ReleaseYear, updated.Rating, pq.Array(updated.Cast), images)
	if err != nil {
		return domain.Movie{}, apperror.NewDBError("Failed to update movie", err)
	}
	if err = tx.Commit(); err != nil {
		return domain.Movie{}, apperror.NewDBError("Failed to update movie", err)
	}
	return updated, nil
}

// Delete remove o filme e devolve o registro removido.
func (r *MovieRepository) Delete(ctx context.Context, id string) (domain.Movie, error) {
	if err := checkID(id); err != nil {
		return domain.Movie{}, err
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	m, err := scanMovie(r.DB.QueryRowContext(ctx, `DELETE FROM movies WHERE id = $1 RETURNING `+movieColumns, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Movie{}, apperror.NewNotFoundError("Movie not found")
	}
	if err != nil {
		return domain.Movie{}, apperror.NewDBError("Failed to delete movie", err)
	}
	return m, nil
}

// DeleteAll remove todos os filmes.
func (r *MovieRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, `DELETE FROM movies`)
	if err != nil {
		return 0, apperror.NewDBError("Failed to delete movies", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.NewDBError("Failed to delete movies", err)
	}
	r.logger.Info("Filmes removidos.", map[string]interface{}{"count": n})
	return n, nil
}

var _ domain.MovieRepository = (*MovieRepository)(nil)
