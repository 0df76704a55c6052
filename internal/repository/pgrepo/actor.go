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

const actorColumns = `id, name, biography, date_of_birth, images`

var actorFilterColumns = map[string]string{
	domain.FieldName:        "name",
	domain.FieldDateOfBirth: "date_of_birth",
}

// ActorRepository implementa domain.ActorRepository.
type ActorRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewActorRepository cria o gateway de atores sobre a tabela actors.
func NewActorRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *ActorRepository {
	return &ActorRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

func scanActor(row rowScanner) (domain.Actor, error) {
	var (
		a      domain.Actor
		images []byte
	)
	if err := row.Scan(&a.ID, &a.Name, &a.Biography, &a.DateOfBirth, &images); err != nil {
		return domain.Actor{}, err
	}
	a.DateOfBirth = a.DateOfBirth.UTC()
	var err error
	if a.Images, err = unmarshalImages(images); err != nil {
		return domain.Actor{}, err
	}
	return a, nil
}

func insertActor(ctx context.Context, db execer, a domain.Actor) (domain.Actor, error) {
	a.ID = identifier.New()
	a.DateOfBirth = a.DateOfBirth.UTC()
	if a.Images == nil {
		a.Images = []domain.Image{}
	}
	images, err := marshalImages(a.Images)
	if err != nil {
		return domain.Actor{}, err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO actors (`+actorColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Name, a.Biography, a.DateOfBirth, images)
	if err != nil {
		return domain.Actor{}, err
	}
	return a, nil
}

// Create insere um ator e devolve o registro com o ID atribuído.
func (r *ActorRepository) Create(ctx context.Context, actor domain.Actor) (domain.Actor, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	created, err := insertActor(ctx, r.DB, actor)
	if err != nil {
		return domain.Actor{}, apperror.NewDBError("Failed to create actor", err)
	}
	r.logger.Debug("Ator inserido.", map[string]interface{}{"actor_id": created.ID})
	return created, nil
}

// CreateMany insere atores em lote numa transação, preservando a ordem.
func (r *ActorRepository) CreateMany(ctx context.Context, actors []domain.Actor) (created []domain.Actor, err error) {
	if len(actors) == 0 {
		return []domain.Actor{}, nil
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperror.NewDBError("Failed to create actors", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	created = make([]domain.Actor, 0, len(actors))
	for _, a := range actors {
		var c domain.Actor
		if c, err = insertActor(ctx, tx, a); err != nil {
			return nil, apperror.NewDBError("Failed to create actors", err)
		}
		created = append(created, c)
	}

	if err = tx.Commit(); err != nil {
		return nil, apperror.NewDBError("Failed to create actors", err)
	}
	return created, nil
}

// FindByID busca um ator pelo ID.
func (r *ActorRepository) FindByID(ctx context.Context, id string) (domain.Actor, error) {
	if err := checkID(id); err != nil {
		return domain.Actor{}, err
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	a, err := scanActor(r.DB.QueryRowContext(ctx, `SELECT `+actorColumns+` FROM actors WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Actor{}, apperror.NewNotFoundError("Actor not found")
	}
	if err != nil {
		return domain.Actor{}, apperror.NewDBError("Failed to fetch actor", err)
	}
	return a, nil
}

// FindByIDs busca vários atores de uma vez; IDs sem registro são ignorados.
func (r *ActorRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Actor, error) {
	if len(ids) == 0 {
		return []domain.Actor{}, nil
	}
	for _, id := range ids {
		if err := checkID(id); err != nil {
			return nil, err
		}
	}
	return r.query(ctx, `SELECT `+actorColumns+` FROM actors WHERE id = ANY($1::text[]) ORDER BY id`, pq.Array(ids))
}

// Find devolve os atores que satisfazem o predicado.
func (r *ActorRepository) Find(ctx context.Context, filter domain.Predicate) ([]domain.Actor, error) {
	where, args, err := compileWhere(filter, actorFilterColumns)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to fetch actors", err)
	}
	return r.query(ctx, `SELECT `+actorColumns+` FROM actors`+where+` ORDER BY id`, args...)
}

func (r *ActorRepository) query(ctx context.Context, q string, args ...interface{}) ([]domain.Actor, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, apperror.NewDBError("Failed to fetch actors", err)
	}
	defer rows.Close()

	actors := []domain.Actor{}
	for rows.Next() {
		a, err := scanActor(rows)
		if err != nil {
			return nil, apperror.NewDBError("Failed to fetch actors", err)
		}
		actors = append(actors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Failed to fetch actors", err)
	}
	return actors, nil
}

const updateActorSQL = `UPDATE actors SET name = $2, biography = $3, date_of_birth = $4, images = $5 WHERE id = $1`

// Update lê o ator com FOR UPDATE, aplica o patch e grava o registro inteiro
// na mesma transação.
func (r *ActorRepository) Update(ctx context.Context, id string, patch domain.ActorPatch) (updated domain.Actor, err error) {
	if err := checkID(id); err != nil {
		return domain.Actor{}, err
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return domain.Actor{}, apperror.NewDBError("Failed to update actor", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	current, err := scanActor(tx.QueryRowContext(ctx, `SELECT `+actorColumns+` FROM actors WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Actor{}, apperror.NewNotFoundError("Actor not found")
	}
	if err != nil {
		return domain.Actor{}, apperror.NewDBError("Failed to update actor", err)
	}

	updated = patch.Apply(current)
	updated.DateOfBirth = updated.DateOfBirth.UTC()
	if updated.Images == nil {
		updated.Images = []domain.Image{}
	}
	images, err := marshalImages(updated.Images)
	if err != nil {
		return domain.Actor{}, apperror.NewInternalError("Failed to update actor", err)
	}

	_, err = tx.ExecContext(ctx, updateActorSQL, id, updated.Name, updated.Biography, updated.DateOfBirth, images)
	if err != nil {
		return domain.Actor{}, apperror.NewDBError("Failed to update actor", err)
	}
	if err = tx.Commit(); err != nil {
		return domain.Actor{}, apperror.NewDBError("Failed to update actor", err)
	}
	return updated, nil
}

// Delete remove o ator. Referências em movies.cast_ids não são tocadas.
func (r *ActorRepository) Delete(ctx context.Context, id string) (domain.Actor, error) {
	if err := checkID(id); err != nil {
		return domain.Actor{}, err
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	a, err := scanActor(r.DB.QueryRowContext(ctx, `DELETE FROM actors WHERE id = $1 RETURNING `+actorColumns, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Actor{}, apperror.NewNotFoundError("Actor not found")
	}
	if err != nil {
		return domain.Actor{}, apperror.NewDBError("Failed to delete actor", err)
	}
	return a, nil
}

// DeleteAll remove todos os atores.
func (r *ActorRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, `DELETE FROM actors`)
	if err != nil {
		return 0, apperror.NewDBError("Failed to delete actors", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.NewDBError("Failed to delete actors", err)
	}
	r.logger.Info("Atores removidos.", map[string]interface{}{"count": n})
	return n, nil
}

var _ domain.ActorRepository = (*ActorRepository)(nil)
