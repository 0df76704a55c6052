// Package relationservice resolve a relação filme-ator nos dois sentidos.
// Movie.Cast é a única fonte da relação; o sentido ator->filmes é
// recalculado a cada leitura, sem índice materializado.
package relationservice

import (
	"context"
	"fmt"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/identifier"
	"cinecatalog/internal/pkg/logger"
)

// ActorLookup é a parte do gateway de atores usada pelo resolvedor.
type ActorLookup interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.Actor, error)
}

// MovieLookup é a parte do gateway de filmes usada pelo resolvedor.
type MovieLookup interface {
	FindByCastMember(ctx context.Context, actorID string) ([]domain.Movie, error)
}

// Resolver implementa as resoluções direta (elenco) e reversa (filmografia).
type Resolver struct {
	actors ActorLookup
	movies MovieLookup
	logger logger.Logger
}

// NewResolver cria o resolvedor de relacionamentos.
func NewResolver(actors ActorLookup, movies MovieLookup, log logger.Logger) *Resolver {
	return &Resolver{actors: actors, movies: movies, logger: log}
}

// ResolveCast troca os IDs do elenco pelos atores correspondentes, na ordem
// do elenco. IDs sem ator correspondente são omitidos sem erro.
func (r *Resolver) ResolveCast(ctx context.Context, movie domain.Movie) (domain.MovieDetail, error) {
	detail := domain.MovieDetail{Movie: movie, Cast: []domain.Actor{}}

	lookup := make([]string, 0, len(movie.Cast))
	seen := make(map[string]bool, len(movie.Cast))
	for _, id := range movie.Cast {
		if seen[id] || !identifier.Valid(id) {
			continue
		}
		seen[id] = true
		lookup = append(lookup, id)
	}
	if len(lookup) == 0 {
		return detail, nil
	}

	found, err := r.actors.FindByIDs(ctx, lookup)
	if err != nil {
		return domain.MovieDetail{}, err
	}

	byID := make(map[string]domain.Actor, len(found))
	for _, a := range found {
		byID[a.ID] = a
	}

	dangling := 0
	for _, id := range movie.Cast {
		actor, ok := byID[id]
		if !ok {
			dangling++
			continue
		}
		detail.Cast = append(detail.Cast, actor)
	}

	if dangling > 0 {
		r.logger.Debug("Elenco com referências pendentes omitidas.", map[string]interface{}{
			"movie_id": movie.ID,
			"dangling": dangling,
		})
	}
	return detail, nil
}

// MoviesFeaturing devolve os filmes cujo elenco contém actorID.
func (r *Resolver) MoviesFeaturing(ctx context.Context, actorID string) ([]domain.Movie, error) {
	if !identifier.Valid(actorID) {
		return nil, apperror.NewValidationError("Invalid id")
	}
	movies, err := r.movies.FindByCastMember(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	return movies, nil
}

// ValidateCast garante que todo ID do elenco é bem formado e aponta para um
// ator existente no momento da escrita.
func (r *Resolver) ValidateCast(ctx context.Context, cast []string) error {
	if len(cast) == 0 {
		return nil
	}

	unique := make([]string, 0, len(cast))
	seen := make(map[string]bool, len(cast))
	for _, id := range cast {
		if !identifier.Valid(id) {
			return apperror.NewValidationError(fmt.Sprintf("Invalid cast member id: %s", id))
		}
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	found, err := r.actors.FindByIDs(ctx, unique)
	if err != nil {
		return err
	}
	if len(found) == len(unique) {
		return nil
	}

	existing := make(map[string]bool, len(found))
	for _, a := range found {
		existing[a.ID] = true
	}
	for _, id := range unique {
		if !existing[id] {
			return apperror.NewValidationError(fmt.Sprintf("Unknown cast member: %s", id))
		}
	}
	return nil
}
