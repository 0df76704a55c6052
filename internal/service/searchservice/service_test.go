package searchservice_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/logger"
	"cinecatalog/internal/service/searchservice"
)

type MockMovieFinder struct{ mock.Mock }

func (m *MockMovieFinder) Find(ctx context.Context, filter domain.Predicate) ([]domain.Movie, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Movie), args.Error(1)
}

type MockActorFinder struct{ mock.Mock }

func (m *MockActorFinder) Find(ctx context.Context, filter domain.Predicate) ([]domain.Actor, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Actor), args.Error(1)
}

func TestSearch_Movies(t *testing.T) {
	movies, actors := new(MockMovieFinder), new(MockActorFinder)
	svc := searchservice.NewService(movies, actors, logger.NewNop())

	expected := domain.Predicate{}.And(domain.FieldGenre, domain.OpContains, "drama")
	movies.On("Find", mock.Anything, expected).Return([]domain.Movie{{Title: "Lost in Translation"}}, nil)

	res, err := svc.Search(context.Background(), url.Values{"searchType": {"movies"}, "selectedGenre": {"drama"}})
	require.NoError(t, err)
	assert.Equal(t, []domain.Movie{{Title: "Lost in Translation"}}, res)
	movies.AssertExpectations(t)
	actors.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestSearch_Actors(t *testing.T) {
	movies, actors := new(MockMovieFinder), new(MockActorFinder)
	svc := searchservice.NewService(movies, actors, logger.NewNop())

	actors.On("Find", mock.Anything, domain.Predicate{}.And(domain.FieldName, domain.OpContains, "tom")).
		Return([]domain.Actor{{Name: "Tom Hanks"}}, nil)

	res, err := svc.Search(context.Background(), url.Values{"searchType": {"actors"}, "searchQuery": {"tom"}})
	require.NoError(t, err)
	assert.Equal(t, []domain.Actor{{Name: "Tom Hanks"}}, res)
	actors.AssertExpectations(t)
}

func TestSearch_RejectsUnknownTypeBeforeQuerying(t *testing.T) {
	movies, actors := new(MockMovieFinder), new(MockActorFinder)
	svc := searchservice.NewService(movies, actors, logger.NewNop())

	for _, q := range []url.Values{{}, {"searchType": {"directors"}}, {"searchType": {"Movies"}}} {
		_, err := svc.Search(context.Background(), q)
		assert.True(t, apperror.IsValidation(err))
	}
	movies.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	actors.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestSearch_InvalidParamsShortCircuit(t *testing.T) {
	movies, actors := new(MockMovieFinder), new(MockActorFinder)
	svc := searchservice.NewService(movies, actors, logger.NewNop())

	_, err := svc.Search(context.Background(), url.Values{"searchType": {"movies"}, "selectedYear": {"x"}})
	assert.True(t, apperror.IsValidation(err))
	movies.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestSearch_StorageErrorPropagates(t *testing.T) {
	movies, actors := new(MockMovieFinder), new(MockActorFinder)
	svc := searchservice.NewService(movies, actors, logger.NewNop())

	dbErr := apperror.NewDBError("Failed to fetch movies", errors.New("timeout"))
	movies.On("Find", mock.Anything, domain.MatchAll).Return([]domain.Movie(nil), dbErr)

	_, err := svc.Search(context.Background(), url.Values{"searchType": {"movies"}})
	assert.ErrorIs(t, err, dbErr)
}
