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

type userDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"passwordHash"`
	Role         string        `bson:"role"`
	AuthToken    string        `bson:"authToken,omitempty"`
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.UserRole(d.Role),
		AuthToken:    d.AuthToken,
	}
}

// UserRepository implementa domain.UserRepository.
type UserRepository struct {
	coll      *mongo.Collection
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria o gateway de usuários sobre a coleção users.
func NewUserRepository(db *mongo.Database, dbTimeout time.Duration, log logger.Logger) *UserRepository {
	return &UserRepository{
		coll:      db.Collection(UsersCollection),
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Create insere um novo usuário. E-mail duplicado vira ValidationError.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	doc := userDocument{
		ID:           bson.NewObjectID(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, apperror.NewValidationError("Email already registered")
		}
		return domain.User{}, apperror.NewDBError("Failed to create user", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": doc.ID.Hex()})
	return doc.toDomain(), nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.D) (domain.User, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	var doc userDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, apperror.NewNotFoundError("User not found")
	}
	if err != nil {
		return domain.User{}, apperror.NewDBError("Failed to fetch user", err)
	}
	return doc.toDomain(), nil
}

// FindByID busca um usuário pelo ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return domain.User{}, err
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

// FindByEmail busca um usuário pelo e-mail exato.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// FindByAuthToken busca o dono de uma sessão gravada no registro.
func (r *UserRepository) FindByAuthToken(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, apperror.NewNotFoundError("Session not found")
	}
	user, err := r.findOne(ctx, bson.D{{Key: "authToken", Value: token}})
	if apperror.IsNotFound(err) {
		return domain.User{}, apperror.NewNotFoundError("Session not found")
	}
	return user, err
}

// FindAll lista todos os usuários.
func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, apperror.NewDBError("Failed to fetch users", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperror.NewDBError("Failed to fetch users", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

// Update aplica a atualização parcial e devolve o registro resultante.
func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return domain.User{}, err
	}

	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *patch.Email})
	}
	if patch.PasswordHash != nil {
		set = append(set, bson.E{Key: "passwordHash", Value: *patch.PasswordHash})
	}
	if patch.Role != nil {
		set = append(set, bson.E{Key: "role", Value: string(*patch.Role)})
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	var doc userDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.User{}, apperror.NewNotFoundError("User not found")
	case mongo.IsDuplicateKeyError(err):
		return domain.User{}, apperror.NewValidationError("Email already registered")
	case err != nil:
		return domain.User{}, apperror.NewDBError("Failed to update user", err)
	}
	return doc.toDomain(), nil
}

// Delete remove o usuário e devolve o registro removido.
func (r *UserRepository) Delete(ctx context.Context, id string) (domain.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return domain.User{}, err
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	var doc userDocument
	err = r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, apperror.NewNotFoundError("User not found")
	}
	if err != nil {
		return domain.User{}, apperror.NewDBError("Failed to delete user", err)
	}
	return doc.toDomain(), nil
}

// SetAuthToken grava a sessão ativa no registro, sobrescrevendo a anterior.
func (r *UserRepository) SetAuthToken(ctx context.Context, userID string, token string) error {
	oid, err := parseObjectID(userID)
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "authToken", Value: token}}}},
	)
	if err != nil {
		return apperror.NewDBError("Failed to store session", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NewNotFoundError("User not found")
	}
	return nil
}

var _ domain.UserRepository = (*UserRepository)(nil)
