package domain

import "context"

// User representa a entidade do usuário no sistema.
type User struct {
	ID           string   `json:"_id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"` // Oculta o hash da senha no JSON de resposta
	Role         UserRole `json:"role"`
	// AuthToken só é usado pelo armazenamento de sessão no próprio registro.
	AuthToken string `json:"-"`
}

// IsAdmin indica se o usuário pode executar operações protegidas.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// UserRegistration representa o payload de entrada para o registro e
// para a criação administrativa de usuários.
type UserRegistration struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required"`
	Role     UserRole `json:"role"`
}

// UserPatch carrega uma atualização parcial de usuário. Password chega em
// texto puro e é convertido em hash pelo serviço.
type UserPatch struct {
	Name         *string   `json:"name"`
	Email        *string   `json:"email"`
	Password     *string   `json:"password"`
	Role         *UserRole `json:"role"`
	PasswordHash *string   `json:"-"`
}

// IsEmpty indica se nenhum campo persistível foi informado.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.PasswordHash == nil && p.Role == nil
}

// UserRepository define o contrato de persistência para a entidade User.
type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id string, patch UserPatch) (User, error)
	Delete(ctx context.Context, id string) (User, error)
	SetAuthToken(ctx context.Context, userID string, token string) error
	FindByAuthToken(ctx context.Context, token string) (User, error)
}
