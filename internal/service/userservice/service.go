package userservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/identifier"
	"cinecatalog/internal/pkg/logger"
)

// UserService define o serviço de lógica de negócio para a entidade User:
// auto-registro público e a gestão administrativa de pessoas (/persons).
type UserService struct {
	UserRepo domain.UserRepository
	logger   logger.Logger
	cost     int
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo domain.UserRepository, log logger.Logger) *UserService {
	return &UserService{UserRepo: repo, logger: log, cost: bcrypt.DefaultCost}
}

// WithHashCost troca o custo do bcrypt (testes usam bcrypt.MinCost).
func (s *UserService) WithHashCost(cost int) *UserService {
	s.cost = cost
	return s
}

// Register registra um novo usuário comum. O papel de administrador não pode
// ser solicitado pelo próprio usuário.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	// 1. Papel: vazio vira "user"; "admin" é recusado
	switch registration.Role {
	case "":
		registration.Role = domain.RoleUser
	case domain.RoleUser:
	case domain.RoleAdmin:
		return domain.User{}, apperror.NewValidationError("Role admin cannot be self-assigned")
	default:
		return domain.User{}, invalidRole(registration.Role)
	}

	user, err := s.create(ctx, registration)
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID})
	return user, nil
}

// List devolve todos os usuários.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.UserRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// Get devolve um usuário pelo ID.
func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	if !identifier.Valid(id) {
		return domain.User{}, apperror.NewValidationError("Invalid user id")
	}
	return s.UserRepo.FindByID(ctx, id)
}

// Create cria um usuário com qualquer papel válido (uso administrativo).
func (s *UserService) Create(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	if registration.Role == "" {
		registration.Role = domain.RoleUser
	}
	if !validRole(registration.Role) {
		return domain.User{}, invalidRole(registration.Role)
	}

	user, err := s.create(ctx, registration)
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário criado por administrador.", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return user, nil
}

// Update aplica uma atualização parcial; a senha, se informada, é convertida em hash.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	if !identifier.Valid(id) {
		return domain.User{}, apperror.NewValidationError("Invalid user id")
	}
	if patch.Role != nil && !validRole(*patch.Role) {
		return domain.User{}, invalidRole(*patch.Role)
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) == "" {
		return domain.User{}, apperror.NewValidationError("Email is required")
	}

	patch.PasswordHash = nil
	if patch.Password != nil {
		if *patch.Password == "" {
			return domain.User{}, apperror.NewValidationError("Password is required")
		}
		hashed, err := s.hash(*patch.Password)
		if err != nil {
			return domain.User{}, err
		}
		patch.PasswordHash = &hashed
		patch.Password = nil
	}

	if patch.IsEmpty() {
		return domain.User{}, apperror.NewValidationError("No fields to update")
	}

	user, err := s.UserRepo.Update(ctx, id, patch)
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário atualizado.", map[string]interface{}{"user_id": id})
	return user, nil
}

// Delete remove o usuário e devolve o registro removido.
func (s *UserService) Delete(ctx context.Context, id string) (domain.User, error) {
	if !identifier.Valid(id) {
		return domain.User{}, apperror.NewValidationError("Invalid user id")
	}

	user, err := s.UserRepo.Delete(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário removido.", map[string]interface{}{"user_id": id})
	return user, nil
}

func (s *UserService) create(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	// 1. Validação Básica
	if registration.Email == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Email and password are required")
	}

	// 2. Hashing da Senha
	hashed, err := s.hash(registration.Password)
	if err != nil {
		return domain.User{}, err
	}

	// 3. Persistência; e-mail duplicado volta do repositório como ValidationError
	return s.UserRepo.Create(ctx, domain.User{
		Name:         registration.Name,
		Email:        registration.Email,
		PasswordHash: hashed,
		Role:         registration.Role,
	})
}

func (s *UserService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperror.NewValidationError("Password must be at most 72 bytes")
	}
	if err != nil {
		return "", apperror.NewInternalError("Failed to hash password", err)
	}
	return string(hashed), nil
}

func validRole(r domain.UserRole) bool {
	return r == domain.RoleAdmin || r == domain.RoleUser
}

func invalidRole(r domain.UserRole) error {
	return apperror.NewValidationError(fmt.Sprintf("Invalid role %s", r))
}
