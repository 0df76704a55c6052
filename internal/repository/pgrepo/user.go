package pgrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/identifier"
	"cinecatalog/internal/pkg/logger"
)

const userColumns = `id, name, email, password_hash, role, auth_token`

// UserRepository implementa domain.UserRepository.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *UserRepository {
	return &UserRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u     domain.User
		role  string
		token sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &token); err != nil {
		return domain.User{}, err
	}
	u.Role = domain.UserRole(role)
	u.AuthToken = token.String
	return u, nil
}

// Create insere um novo usuário. E-mail duplicado vira ValidationError.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"email": user.Email})

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	user.ID = identifier.New()
	user.AuthToken = ""

	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, role) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, apperror.NewValidationError("Email already registered")
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Failed to create user", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

func (r *UserRepository) queryOne(ctx context.Context, notFound string, q string, args ...interface{}) (domain.User, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	u, err := scanUser(r.DB.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(notFound)
	}
	if err != nil {
		return domain.User{}, apperror.NewDBError("Failed to fetch user", err)
	}
	return u, nil
}

// FindByID busca um usuário pelo ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	if err := checkID(id); err != nil {
		return domain.User{}, err
	}
	return r.queryOne(ctx, "User not found", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail busca um usuário pelo endereço de e-mail.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.queryOne(ctx, "User not found", `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByAuthToken busca o dono de uma sessão gravada no registro.
func (r *UserRepository) FindByAuthToken(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, apperror.NewNotFoundError("Session not found")
	}
	return r.queryOne(ctx, "Session not found", `SELECT `+userColumns+` FROM users WHERE auth_token = $1`, token)
}

// FindAll lista todos os usuários.
func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, apperror.NewDBError("Failed to fetch users", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperror.NewDBError("Failed to fetch users", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Failed to fetch users", err)
	}
	return users, nil
}

// Update aplica a atualização parcial e devolve o registro resultante.
func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	if err := checkID(id); err != nil {
		return domain.User{}, err
	}

	set := &setBuilder{}
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Email != nil {
		set.add("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		set.add("password_hash", *patch.PasswordHash)
	}
	if patch.Role != nil {
		set.add("role", string(*patch.Role))
	}
	if set.empty() {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	q, args := set.query("users", id, userColumns)
	u, err := scanUser(r.DB.QueryRowContext(ctx, q, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.User{}, apperror.NewNotFoundError("User not found")
	case isUniqueViolation(err):
		return domain.User{}, apperror.NewValidationError("Email already registered")
	case err != nil:
		return domain.User{}, apperror.NewDBError("Failed to update user", err)
	}
	return u, nil
}

// Delete remove o usuário e devolve o registro removido.
func (r *UserRepository) Delete(ctx context.Context, id string) (domain.User, error) {
	if err := checkID(id); err != nil {
		return domain.User{}, err
	}
	return r.queryOne(ctx, "User not found", `DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id)
}

// SetAuthToken grava a sessão ativa no registro, sobrescrevendo a anterior.
func (r *UserRepository) SetAuthToken(ctx context.Context, userID string, token string) error {
	if err := checkID(userID); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, `UPDATE users SET auth_token = $1 WHERE id = $2`, token, userID)
	if err != nil {
		return apperror.NewDBError("Failed to store session", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.NewDBError("Failed to store session", err)
	}
	if n == 0 {
		return apperror.NewNotFoundError("User not found")
	}
	return nil
}

var _ domain.UserRepository = (*UserRepository)(nil)
