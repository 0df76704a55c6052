package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cinecatalog/internal/api/actor"
	"cinecatalog/internal/api/admin"
	"cinecatalog/internal/api/movie"
	"cinecatalog/internal/api/person"
	"cinecatalog/internal/api/request"
	"cinecatalog/internal/api/router"
	"cinecatalog/internal/api/search"
	"cinecatalog/internal/api/user"
	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/cache/cachetest"
	"cinecatalog/internal/pkg/logger"
	"cinecatalog/internal/service/authservice"
	"cinecatalog/internal/service/seedservice"
)

const (
	movieID    = "64b7f0c2a1b2c3d4e5f6a001"
	adminToken = "admin-token"
	userToken  = "user-token"
)

// --- Mocks dos serviços ---

type MockMovieService struct{ mock.Mock }

func (m *MockMovieService) List(ctx context.Context) ([]domain.Movie, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Movie), args.Error(1)
}
func (m *MockMovieService) Get(ctx context.Context, id string) (domain.MovieDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.MovieDetail), args.Error(1)
}
func (m *MockMovieService) Create(ctx context.Context, mv domain.Movie) (domain.Movie, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(domain.Movie), args.Error(1)
}
func (m *MockMovieService) Update(ctx context.Context, id string, p domain.MoviePatch) (domain.Movie, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(domain.Movie), args.Error(1)
}
func (m *MockMovieService) Delete(ctx context.Context, id string) (domain.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Movie), args.Error(1)
}

type MockActorService struct{ mock.Mock }

func (m *MockActorService) List(ctx context.Context) ([]domain.Actor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Actor), args.Error(1)
}
func (m *MockActorService) Get(ctx context.Context, id string) (domain.ActorDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ActorDetail), args.Error(1)
}
func (m *MockActorService) Create(ctx context.Context, a domain.Actor) (domain.Actor, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(domain.Actor), args.Error(1)
}
func (m *MockActorService) Update(ctx context.Context, id string, p domain.ActorPatch) (domain.Actor, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(domain.Actor), args.Error(1)
}
func (m *MockActorService) Delete(ctx context.Context, id string) (domain.Actor, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Actor), args.Error(1)
}

type MockSearchService struct{ mock.Mock }

func (m *MockSearchService) Search(ctx context.Context, q url.Values) (interface{}, error) {
	args := m.Called(ctx, q)
	return args.Get(0), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, reg domain.UserRegistration) (domain.User, error) {
	args := m.Called(ctx, reg)
	return args.Get(0).(domain.User), args.Error(1)
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, email, password string) (authservice.LoginResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(authservice.LoginResult), args.Error(1)
}

func (m *MockAuthService) Authorize(ctx context.Context, token string) (domain.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.User), args.Error(1)
}

type MockPersonService struct{ mock.Mock }

func (m *MockPersonService) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockPersonService) Get(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}
func (m *MockPersonService) Create(ctx context.Context, reg domain.UserRegistration) (domain.User, error) {
	args := m.Called(ctx, reg)
	return args.Get(0).(domain.User), args.Error(1)
}
func (m *MockPersonService) Update(ctx context.Context, id string, p domain.UserPatch) (domain.User, error) {
	args := m.Called(ctx, id, p)
	return args.Get(0).(domain.User), args.Error(1)
}
func (m *MockPersonService) Delete(ctx context.Context, id string) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

type MockSeedService struct{ mock.Mock }

func (m *MockSeedService) Initialize(ctx context.Context, d seedservice.Dataset) (seedservice.InitResult, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(seedservice.InitResult), args.Error(1)
}
func (m *MockSeedService) Deinitialize(ctx context.Context) (seedservice.DeinitResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(seedservice.DeinitResult), args.Error(1)
}

// --- Montagem ---

type fixture struct {
	handler http.Handler
	movies  *MockMovieService
	actors  *MockActorService
	search  *MockSearchService
	users   *MockUserService
	auth    *MockAuthService
	persons *MockPersonService
	seed    *MockSeedService
	health  error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNop()
	v := request.NewValidator()
	f := &fixture{
		movies:  new(MockMovieService),
		actors:  new(MockActorService),
		search:  new(MockSearchService),
		users:   new(MockUserService),
		auth:    new(MockAuthService),
		persons: new(MockPersonService),
		seed:    new(MockSeedService),
	}

	f.auth.On("Authorize", mock.Anything, adminToken).Return(domain.User{ID: "a1", Role: domain.RoleAdmin}, nil)
	f.auth.On("Authorize", mock.Anything, userToken).Return(domain.User{}, apperror.NewUnauthorizedError("Admin role required"))

	f.handler = router.NewRouter(router.Handlers{
		Movie:  movie.NewHandler(f.movies, v, log),
		Actor:  actor.NewHandler(f.actors, v, log),
		Search: search.NewHandler(f.search, log),
		User:   user.NewHandler(f.users, f.auth, v, log),
		Person: person.NewHandler(f.persons, v, log),
		Admin:  admin.NewHandler(f.seed, log),
	}, router.Options{
		Auth:            f.auth,
		Logger:          log,
		Health:          func(context.Context) error { return f.health },
		RateLimitCache:  cachetest.NewMemory(),
		RateLimitMax:    3,
		RateLimitPeriod: time.Minute,
		AllowOrigins:    []string{"http://localhost:4200"},
	})
	return f
}

func (f *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

const moviePayload = `{"title":"Heat","description":"Crime","genre":"Crime","director":"Michael Mann","releaseYear":1995,"rating":8.3,"cast":[]}`

// --- Testes ---

func TestPingAndHealth(t *testing.T) {
	f := newFixture(t)

	rr := f.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Server ping response", decodeBody(t, rr)["message"])

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/healthz", "", "").Code)

	f.health = errors.New("mongo down")
	assert.Equal(t, http.StatusInternalServerError, f.do(http.MethodGet, "/healthz", "", "").Code)
}

func TestGetMovie_InvalidID(t *testing.T) {
	f := newFixture(t)
	f.movies.On("Get", mock.Anything, "bad-id").Return(domain.MovieDetail{}, apperror.NewValidationError("Invalid movie id"))

	rr := f.do(http.MethodGet, "/movies/bad-id", "", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "VALIDATION_ERROR", body["category"])
	assert.Equal(t, "Invalid movie id", body["message"])
}

func TestGetMovie_CastIsResolved(t *testing.T) {
	f := newFixture(t)
	detail := domain.MovieDetail{
		Movie: domain.Movie{ID: movieID, Title: "Heat", Cast: []string{"x"}},
		Cast:  []domain.Actor{{ID: "64b7f0c2a1b2c3d4e5f60001", Name: "Al Pacino"}},
	}
	f.movies.On("Get", mock.Anything, movieID).Return(detail, nil)

	rr := f.do(http.MethodGet, "/movies/"+movieID, "", "")

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, movieID, body["_id"])
	cast := body["cast"].([]interface{})
	require.Len(t, cast, 1)
	assert.Equal(t, "Al Pacino", cast[0].(map[string]interface{})["name"])
}

func TestCreateMovie_RequiresAdmin(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"sem token", "", http.StatusUnauthorized},
		{"usuário comum", userToken, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			rr := f.do(http.MethodPost, "/movies", tt.token, moviePayload)

			assert.Equal(t, tt.want, rr.Code)
			assert.Equal(t, "UNAUTHORIZED", decodeBody(t, rr)["category"])
			f.movies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateMovie_Admin(t *testing.T) {
	f := newFixture(t)
	f.movies.On("Create", mock.Anything, mock.MatchedBy(func(m domain.Movie) bool {
		return m.Title == "Heat" && m.Rating == 8.3 && m.ReleaseYear == 1995
	})).Return(domain.Movie{ID: movieID, Title: "Heat"}, nil)

	rr := f.do(http.MethodPost, "/movies", adminToken, moviePayload)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, movieID, decodeBody(t, rr)["_id"])
}

func TestCreateMovie_InvalidPayload(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/movies", adminToken, `{"title":`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPost, "/movies", adminToken, `{"title":"Heat"}`).Code)
	f.movies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPatchMovie_OnlySuppliedFields(t *testing.T) {
	f := newFixture(t)
	f.movies.On("Update", mock.Anything, movieID, mock.MatchedBy(func(p domain.MoviePatch) bool {
		return p.Rating != nil && *p.Rating == 9 && p.Title == nil && p.Cast == nil
	})).Return(domain.Movie{ID: movieID, Title: "Heat", Rating: 9}, nil)

	rr := f.do(http.MethodPatch, "/movies/"+movieID, adminToken, `{"rating":9}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	f.movies.AssertExpectations(t)
}

func TestDeleteMovie_ResponseShape(t *testing.T) {
	f := newFixture(t)
	f.movies.On("Delete", mock.Anything, movieID).Return(domain.Movie{ID: movieID, Title: "Heat"}, nil)

	rr := f.do(http.MethodDelete, "/movies/"+movieID, adminToken, "")

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "Movie deleted successfully", body["message"])
	assert.Equal(t, "Heat", body["deletedMovie"].(map[string]interface{})["title"])
}

func TestInternalErrorDoesNotLeakCause(t *testing.T) {
	f := newFixture(t)
	f.actors.On("List", mock.Anything).
		Return([]domain.Actor(nil), apperror.NewDBError("Failed to list actors", errors.New("auth failed for user root@10.0.0.5")))

	rr := f.do(http.MethodGet, "/actors", "", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.0.0.5")
	assert.Equal(t, "Failed to list actors", decodeBody(t, rr)["message"])
}

func TestGetActor_IncludesMovies(t *testing.T) {
	f := newFixture(t)
	id := "64b7f0c2a1b2c3d4e5f60001"
	f.actors.On("Get", mock.Anything, id).Return(domain.ActorDetail{
		Actor:  domain.Actor{ID: id, Name: "Al Pacino"},
		Movies: []domain.Movie{{ID: "m1"}, {ID: "m2"}},
	}, nil)

	rr := f.do(http.MethodGet, "/actors/"+id, "", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody(t, rr)["movies"], 2)
}

func TestCreateActor_AcceptsDateOnlyBirthDate(t *testing.T) {
	f := newFixture(t)
	born := time.Date(1956, 7, 9, 0, 0, 0, 0, time.UTC)
	f.actors.On("Create", mock.Anything, mock.MatchedBy(func(a domain.Actor) bool {
		return a.Name == "Tom Hanks" && a.DateOfBirth.Equal(born)
	})).Return(domain.Actor{ID: "64b7f0c2a1b2c3d4e5f60002", Name: "Tom Hanks", DateOfBirth: born}, nil)

	rr := f.do(http.MethodPost, "/actors", adminToken, `{"name":"Tom Hanks","biography":"b","dateOfBirth":"1956-07-09"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	f.actors.AssertExpectations(t)
}

func TestPatchActor_BirthDateFormats(t *testing.T) {
	f := newFixture(t)
	id := "64b7f0c2a1b2c3d4e5f60002"
	born := time.Date(1956, 7, 9, 0, 0, 0, 0, time.UTC)
	f.actors.On("Update", mock.Anything, id, mock.MatchedBy(func(p domain.ActorPatch) bool {
		return p.DateOfBirth != nil && p.DateOfBirth.Equal(born) && p.Name == nil
	})).Return(domain.Actor{ID: id, DateOfBirth: born}, nil)

	assert.Equal(t, http.StatusOK, f.do(http.MethodPatch, "/actors/"+id, adminToken, `{"dateOfBirth":"1956-07-09"}`).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodPatch, "/actors/"+id, adminToken, `{"dateOfBirth":"1956-07-09T00:00:00Z"}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodPatch, "/actors/"+id, adminToken, `{"dateOfBirth":"09/07/1956"}`).Code)
	f.actors.AssertNumberOfCalls(t, "Update", 2)
}

func TestSearch_PassesQuery(t *testing.T) {
	f := newFixture(t)
	f.search.On("Search", mock.Anything, mock.MatchedBy(func(q url.Values) bool {
		return q.Get("searchType") == "movies" && q.Get("selectedGenre") == "Drama"
	})).Return([]domain.Movie{{ID: movieID}}, nil)
	f.search.On("Search", mock.Anything, mock.Anything).
		Return(nil, apperror.NewValidationError("Invalid search type foo"))

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/search?searchType=movies&selectedGenre=Drama", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(http.MethodGet, "/search?searchType=foo", "", "").Code)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	f.users.On("Register", mock.Anything, domain.UserRegistration{Name: "Ana", Email: "ana@example.com", Password: "pw"}).
		Return(domain.User{ID: "u1"}, nil)
	f.auth.On("Login", mock.Anything, "ana@example.com", "pw").
		Return(authservice.LoginResult{AuthToken: "tok", Role: domain.RoleUser}, nil)

	rr := f.do(http.MethodPost, "/register", "", `{"name":"Ana","email":"ana@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "Registered successfully", decodeBody(t, rr)["message"])

	rr = f.do(http.MethodPost, "/login", "", `{"email":"ana@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, "tok", body["authToken"])
	assert.Equal(t, "user", body["role"])
}

func TestLogin_RateLimited(t *testing.T) {
	f := newFixture(t)
	f.auth.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(authservice.LoginResult{}, apperror.NewUnauthorizedError("Invalid credentials"))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/login", "", `{"email":"a@b.co","password":"x"}`).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, f.do(http.MethodPost, "/login", "", `{"email":"a@b.co","password":"x"}`).Code)
}

func TestPersons_AdminOnly(t *testing.T) {
	f := newFixture(t)
	f.persons.On("List", mock.Anything).Return([]domain.User{{ID: "u1", Email: "a@b.c", PasswordHash: "secret-hash"}}, nil)

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/persons", userToken, "").Code)

	rr := f.do(http.MethodGet, "/persons", adminToken, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret-hash")
}

func TestInitialize(t *testing.T) {
	f := newFixture(t)
	f.seed.On("Initialize", mock.Anything, mock.MatchedBy(func(d seedservice.Dataset) bool {
		return len(d.Actors) == 1 && len(d.Movies) == 1 && d.Movies[0].Cast[0] == 1
	})).Return(seedservice.InitResult{
		CreatedActors: []domain.Actor{{ID: "64b7f0c2a1b2c3d4e5f60001", Name: "Al Pacino"}},
		CreatedMovies: []domain.Movie{{ID: movieID, Title: "Heat", Cast: []string{"64b7f0c2a1b2c3d4e5f60001"}}},
	}, nil)

	rr := f.do(http.MethodPost, "/initialize", adminToken,
		`{"actors":[{"name":"Al Pacino","dateOfBirth":"1940-04-25"}],"movies":[{"title":"Heat","cast":[{"_id":1}]}]}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	body := decodeBody(t, rr)
	createdMovies := body["createdMovies"].([]interface{})
	require.Len(t, createdMovies, 1)
	assert.Equal(t, movieID, createdMovies[0].(map[string]interface{})["_id"])
	createdActors := body["createdActors"].([]interface{})
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60001", createdActors[0].(map[string]interface{})["_id"])
}

func TestInitialize_PartialFailure(t *testing.T) {
	f := newFixture(t)
	f.seed.On("Initialize", mock.Anything, mock.Anything).Return(seedservice.InitResult{},
		apperror.NewPartialFailureError("Initialization aborted", seedservice.StageMovies, 2, errors.New("write conflict")))

	rr := f.do(http.MethodPost, "/initialize", adminToken, `{"actors":[],"movies":[]}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "PARTIAL_FAILURE", body["category"])
	assert.Contains(t, body["message"], "stage: movies")
}

func TestUnknownRouteAndMethod(t *testing.T) {
	f := newFixture(t)

	rr := f.do(http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, rr)["category"])

	assert.Equal(t, http.StatusMethodNotAllowed, f.do(http.MethodPut, "/movies", "", "").Code)
}

func TestRequestIDHeader(t *testing.T) {
	f := newFixture(t)
	f.movies.On("List", mock.Anything).Return([]domain.Movie{}, nil)

	rr := f.do(http.MethodGet, "/movies", "", "")

	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}
