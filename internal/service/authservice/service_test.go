package authservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/cache/cachetest"
	"cinecatalog/internal/pkg/logger"
	"cinecatalog/internal/pkg/token"
	"cinecatalog/internal/repository/sessionrepo"
	"cinecatalog/internal/service/authservice"
)

const (
	adminID = "64b7f0c2a1b2c3d4e5f6b001"
	userID  = "64b7f0c2a1b2c3d4e5f6b002"
)

type MockUserFinder struct{ mock.Mock }

func (m *MockUserFinder) FindByID(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserFinder) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

type fixture struct {
	svc   *authservice.Service
	users *MockUserFinder
	cache *cachetest.Memory
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	users := new(MockUserFinder)
	mem := cachetest.NewMemory()
	sessions := sessionrepo.NewCacheStore(mem, 0, logger.NewNop())
	svc := authservice.NewService(users, sessions, token.NewService("test-secret", 0), logger.NewNop())

	admin := domain.User{ID: adminID, Email: "admin@example.com", PasswordHash: hash(t, "s3cret"), Role: domain.RoleAdmin}
	user := domain.User{ID: userID, Email: "user@example.com", PasswordHash: hash(t, "hunter2"), Role: domain.RoleUser}

	users.On("FindByEmail", mock.Anything, admin.Email).Return(admin, nil)
	users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	users.On("FindByEmail", mock.Anything, mock.Anything).Return(domain.User{}, apperror.NewNotFoundError("User not found"))
	users.On("FindByID", mock.Anything, adminID).Return(admin, nil)
	users.On("FindByID", mock.Anything, userID).Return(user, nil)

	return fixture{svc: svc, users: users, cache: mem}
}

func TestLogin_IssuesTokenAndRole(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Login(context.Background(), "admin@example.com", "s3cret")

	require.NoError(t, err)
	assert.NotEmpty(t, res.AuthToken)
	assert.Equal(t, domain.RoleAdmin, res.Role)
}

func TestLogin_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		check    func(error) bool
	}{
		{"senha errada", "admin@example.com", "wrong", apperror.IsUnauthorized},
		{"e-mail desconhecido", "ghost@example.com", "s3cret", apperror.IsUnauthorized},
		{"campos vazios", "", "", apperror.IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.Login(context.Background(), tt.email, tt.password)
			assert.True(t, tt.check(err), "erro inesperado: %v", err)
		})
	}
}

func TestLogin_StorageErrorIsNotUnauthorized(t *testing.T) {
	users := new(MockUserFinder)
	dbErr := apperror.NewDBError("Failed to fetch user", errors.New("down"))
	users.On("FindByEmail", mock.Anything, "a@b.c").Return(domain.User{}, dbErr)
	svc := authservice.NewService(users, sessionrepo.NewCacheStore(cachetest.NewMemory(), 0, logger.NewNop()),
		token.NewService("k", 0), logger.NewNop())

	_, err := svc.Login(context.Background(), "a@b.c", "x")

	assert.ErrorIs(t, err, dbErr)
}

func TestAuthorize_AdminSucceedsAndUserIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	adminLogin, err := f.svc.Login(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	userLogin, err := f.svc.Login(ctx, "user@example.com", "hunter2")
	require.NoError(t, err)

	admin, err := f.svc.Authorize(ctx, adminLogin.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, adminID, admin.ID)

	_, err = f.svc.Authorize(ctx, userLogin.AuthToken)
	assert.True(t, apperror.IsUnauthorized(err))

	user, err := f.svc.Authenticate(ctx, userLogin.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
}

func TestAuthenticate_ReloginInvalidatesPreviousToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Login(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	second, err := f.svc.Login(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEqual(t, first.AuthToken, second.AuthToken)

	_, err = f.svc.Authorize(ctx, first.AuthToken)
	assert.True(t, apperror.IsUnauthorized(err))

	_, err = f.svc.Authorize(ctx, second.AuthToken)
	assert.NoError(t, err)
}

func TestAuthenticate_ForgedTokenNeverReachesStorage(t *testing.T) {
	f := newFixture(t)
	forged, err := token.NewService("other-secret", 0).GenerateToken(adminID, "deadbeef")
	require.NoError(t, err)

	_, err = f.svc.Authenticate(context.Background(), forged)

	assert.True(t, apperror.IsUnauthorized(err))
	f.users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestAuthenticate_UnknownSession(t *testing.T) {
	f := newFixture(t)
	unknown, err := token.NewService("test-secret", 0).GenerateToken(adminID, "no-such-session")
	require.NoError(t, err)

	_, err = f.svc.Authenticate(context.Background(), unknown)

	assert.True(t, apperror.IsUnauthorized(err))
}

func TestAuthenticate_EmptyToken(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Authenticate(context.Background(), "")

	assert.True(t, apperror.IsUnauthorized(err))
}

func TestAuthenticate_SessionStoreFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.Login(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)

	f.cache.Err = errors.New("redis indisponível")
	_, err = f.svc.Authenticate(context.Background(), res.AuthToken)

	require.Error(t, err)
	assert.False(t, apperror.IsUnauthorized(err))
	var internal *apperror.InternalError
	assert.ErrorAs(t, err, &internal)
}

func TestParseAuthorization(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", false},
		{"bearer abc", "abc", false},
		{"Bearer", "", true},
		{"Bearer   ", "", true},
		{"Basic dXNlcjpwYXNz", "", true},
		{"", "", true},
		{"abc.def.ghi", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := authservice.ParseAuthorization(tt.header)
			if tt.wantErr {
				assert.True(t, apperror.IsUnauthorized(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
