package seedservice_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/logger"
	"cinecatalog/internal/service/seedservice"
)

type MockActorStore struct{ mock.Mock }

func (m *MockActorStore) CreateMany(ctx context.Context, actors []domain.Actor) ([]domain.Actor, error) {
	args := m.Called(ctx, actors)
	return args.Get(0).([]domain.Actor), args.Error(1)
}

func (m *MockActorStore) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockMovieStore struct{ mock.Mock }

func (m *MockMovieStore) CreateMany(ctx context.Context, movies []domain.Movie) ([]domain.Movie, error) {
	args := m.Called(ctx, movies)
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *MockMovieStore) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// assignIDs simula o armazenamento: devolve os atores com IDs na ordem de entrada.
func assignIDs(actors []domain.Actor) []domain.Actor {
	out := make([]domain.Actor, len(actors))
	for i, a := range actors {
		a.ID = fmt.Sprintf("64b7f0c2a1b2c3d4e5f600%02d", i+1)
		out[i] = a
	}
	return out
}

const payload = `{
	"actors": [
		{"name": "Al Pacino", "dateOfBirth": "1940-04-25"},
		{"name": "Robert De Niro", "dateOfBirth": "1943-08-17T00:00:00Z"}
	],
	"movies": [
		{"title": "Heat", "rating": 8.3, "cast": [1, {"_id": 2}]},
		{"title": "Serpico", "rating": 7.7, "cast": [1]}
	]
}`

func decode(t *testing.T, raw string) seedservice.Dataset {
	t.Helper()
	var data seedservice.Dataset
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	return data
}

func TestCastRef_AcceptsNumberAndObject(t *testing.T) {
	data := decode(t, payload)

	assert.Equal(t, []seedservice.CastRef{1, 2}, data.Movies[0].Cast)
	assert.Equal(t, "Heat", data.Movies[0].Title)

	var ref seedservice.CastRef
	assert.Error(t, json.Unmarshal([]byte(`{"id": 1}`), &ref))
	assert.Error(t, json.Unmarshal([]byte(`"1"`), &ref))
}

func TestInitialize_RemapsCast(t *testing.T) {
	actors, movies := new(MockActorStore), new(MockMovieStore)
	svc := seedservice.NewService(actors, movies, logger.NewNop())

	actors.On("CreateMany", mock.Anything, mock.MatchedBy(func(in []domain.Actor) bool {
		return len(in) == 2 && in[0].ID == "" && in[0].Name == "Al Pacino"
	})).Return(assignIDs(make([]domain.Actor, 2)), nil)

	var stored []domain.Movie
	movies.On("CreateMany", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).([]domain.Movie) }).
		Return([]domain.Movie{{ID: "m1", Title: "Heat"}, {ID: "m2", Title: "Serpico"}}, nil)

	res, err := svc.Initialize(context.Background(), decode(t, payload))

	require.NoError(t, err)
	require.Len(t, res.CreatedActors, 2)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60001", res.CreatedActors[0].ID)
	require.Len(t, res.CreatedMovies, 2)
	assert.Equal(t, "m2", res.CreatedMovies[1].ID)
	require.Len(t, stored, 2)
	assert.Equal(t, []string{"64b7f0c2a1b2c3d4e5f60001", "64b7f0c2a1b2c3d4e5f60002"}, stored[0].Cast)
	assert.Equal(t, []string{"64b7f0c2a1b2c3d4e5f60001"}, stored[1].Cast)
}

func TestInitialize_InvalidReferenceWritesNothing(t *testing.T) {
	actors, movies := new(MockActorStore), new(MockMovieStore)
	svc := seedservice.NewService(actors, movies, logger.NewNop())

	for _, ref := range []string{"0", "3", "-1", `{"_id": 5}`} {
		t.Run(ref, func(t *testing.T) {
			data := decode(t, `{"actors":[{"name":"A"},{"name":"B"}],"movies":[{"title":"X","cast":[`+ref+`]}]}`)

			_, err := svc.Initialize(context.Background(), data)

			assert.True(t, apperror.IsValidation(err))
		})
	}
	actors.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
	movies.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
}

func TestInitialize_MovieFailureIsPartial(t *testing.T) {
	actors, movies := new(MockActorStore), new(MockMovieStore)
	svc := seedservice.NewService(actors, movies, logger.NewNop())

	actors.On("CreateMany", mock.Anything, mock.Anything).Return(assignIDs(make([]domain.Actor, 2)), nil)
	movies.On("CreateMany", mock.Anything, mock.Anything).
		Return([]domain.Movie(nil), apperror.NewDBError("Failed to create movies", errors.New("disk full")))

	_, err := svc.Initialize(context.Background(), decode(t, payload))

	var partial *apperror.PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, seedservice.StageMovies, partial.Stage)
	assert.Equal(t, 2, partial.Committed)
	actors.AssertNotCalled(t, "DeleteAll", mock.Anything)
}

func TestInitialize_BirthDatesAcceptBothFormats(t *testing.T) {
	actors, movies := new(MockActorStore), new(MockMovieStore)
	svc := seedservice.NewService(actors, movies, logger.NewNop())

	var sent []domain.Actor
	actors.On("CreateMany", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]domain.Actor) }).
		Return(assignIDs(make([]domain.Actor, 2)), nil)
	movies.On("CreateMany", mock.Anything, mock.Anything).Return([]domain.Movie{{}, {}}, nil)

	_, err := svc.Initialize(context.Background(), decode(t, payload))

	require.NoError(t, err)
	require.Len(t, sent, 2)
	assert.True(t, time.Date(1940, 4, 25, 0, 0, 0, 0, time.UTC).Equal(sent[0].DateOfBirth))
	assert.True(t, time.Date(1943, 8, 17, 0, 0, 0, 0, time.UTC).Equal(sent[1].DateOfBirth))

	var data seedservice.Dataset
	assert.Error(t, json.Unmarshal([]byte(`{"actors":[{"name":"A","dateOfBirth":"25/04/1940"}]}`), &data))
}

func TestInitialize_InterruptedActorBatchIsPartial(t *testing.T) {
	tests := []struct {
		name      string
		committed int
	}{
		{"contagem conhecida", 1},
		{"contagem desconhecida", apperror.CommittedUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actors, movies := new(MockActorStore), new(MockMovieStore)
			svc := seedservice.NewService(actors, movies, logger.NewNop())
			batchErr := apperror.NewPartialFailureError("Failed to create actors", "actors", tt.committed, errors.New("E11000 duplicate key"))
			actors.On("CreateMany", mock.Anything, mock.Anything).Return([]domain.Actor(nil), batchErr)

			_, err := svc.Initialize(context.Background(), decode(t, payload))

			var partial *apperror.PartialFailureError
			require.ErrorAs(t, err, &partial)
			assert.Equal(t, seedservice.StageActors, partial.Stage)
			assert.Equal(t, tt.committed, partial.Committed)
			assert.Equal(t, "Initialization aborted", partial.Msg)
			movies.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
		})
	}
}

func TestInitialize_ActorFailureWithNothingCommittedIsPlainError(t *testing.T) {
	actors, movies := new(MockActorStore), new(MockMovieStore)
	svc := seedservice.NewService(actors, movies, logger.NewNop())
	dbErr := apperror.NewDBError("Failed to create actors", errors.New("transaction rolled back"))
	actors.On("CreateMany", mock.Anything, mock.Anything).Return([]domain.Actor(nil), dbErr)

	_, err := svc.Initialize(context.Background(), decode(t, payload))

	assert.ErrorIs(t, err, dbErr)
	var partial *apperror.PartialFailureError
	assert.False(t, errors.As(err, &partial))
	movies.AssertNotCalled(t, "CreateMany", mock.Anything, mock.Anything)
}

func TestDeinitialize(t *testing.T) {
	actors, movies := new(MockActorStore), new(MockMovieStore)
	svc := seedservice.NewService(actors, movies, logger.NewNop())
	movies.On("DeleteAll", mock.Anything).Return(int64(3), nil)
	actors.On("DeleteAll", mock.Anything).Return(int64(5), nil)

	res, err := svc.Deinitialize(context.Background())

	require.NoError(t, err)
	assert.Equal(t, seedservice.DeinitResult{DeletedActors: 5, DeletedMovies: 3}, res)
}

func TestDeinitialize_ActorFailureIsPartial(t *testing.T) {
	actors, movies := new(MockActorStore), new(MockMovieStore)
	svc := seedservice.NewService(actors, movies, logger.NewNop())
	movies.On("DeleteAll", mock.Anything).Return(int64(3), nil)
	actors.On("DeleteAll", mock.Anything).Return(int64(0), errors.New("down"))

	_, err := svc.Deinitialize(context.Background())

	var partial *apperror.PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, seedservice.StageActors, partial.Stage)
	assert.Equal(t, 3, partial.Committed)
}
