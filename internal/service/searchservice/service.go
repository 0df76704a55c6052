package searchservice

import (
	"context"
	"fmt"
	"net/url"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/logger"
)

// MovieFinder é a parte do gateway de filmes usada pela busca.
type MovieFinder interface {
	Find(ctx context.Context, filter domain.Predicate) ([]domain.Movie, error)
}

// ActorFinder é a parte do gateway de atores usada pela busca.
type ActorFinder interface {
	Find(ctx context.Context, filter domain.Predicate) ([]domain.Actor, error)
}

// Service atende o endpoint /search.
type Service struct {
	movies MovieFinder
	actors ActorFinder
	logger logger.Logger
}

// NewService cria o serviço de busca.
func NewService(movies MovieFinder, actors ActorFinder, log logger.Logger) *Service {
	return &Service{movies: movies, actors: actors, logger: log}
}

// Search valida o searchType, monta o filtro e consulta o gateway correspondente.
// O resultado é []domain.Movie ou []domain.Actor.
func (s *Service) Search(ctx context.Context, q url.Values) (interface{}, error) {
	searchType := q.Get(ParamSearchType)

	switch searchType {
	case TypeMovies:
		params, err := ParseMovieParams(q)
		if err != nil {
			return nil, err
		}
		movies, err := s.movies.Find(ctx, BuildMovieFilter(params))
		if err != nil {
			return nil, err
		}
		s.logger.Info("Busca de filmes processada.", map[string]interface{}{"results": len(movies)})
		return movies, nil

	case TypeActors:
		params, err := ParseActorParams(q)
		if err != nil {
			return nil, err
		}
		actors, err := s.actors.Find(ctx, BuildActorFilter(params))
		if err != nil {
			return nil, err
		}
		s.logger.Info("Busca de atores processada.", map[string]interface{}{"results": len(actors)})
		return actors, nil
	}

	return nil, apperror.NewValidationError(fmt.Sprintf("Invalid search type %s", searchType))
}
