// Package seedservice carrega e limpa o catálogo em lote.
// Nenhuma das operações é transacional: uma falha no meio do caminho deixa
// o que já foi gravado e é reportada como falha parcial.
package seedservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/logger"
)

// Estágios reportados em falhas parciais.
const (
	StageActors = "actors"
	StageMovies = "movies"
)

// ActorStore é a parte do gateway de atores usada na carga em lote.
// CreateMany deve devolver os atores na ordem de entrada.
type ActorStore interface {
	CreateMany(ctx context.Context, actors []domain.Actor) ([]domain.Actor, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// MovieStore é a parte do gateway de filmes usada na carga em lote.
type MovieStore interface {
	CreateMany(ctx context.Context, movies []domain.Movie) ([]domain.Movie, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Service executa /initialize e /deinitialize.
type Service struct {
	actors ActorStore
	movies MovieStore
	logger logger.Logger
}

// NewService cria o serviço de carga.
func NewService(actors ActorStore, movies MovieStore, log logger.Logger) *Service {
	return &Service{actors: actors, movies: movies, logger: log}
}

// Initialize grava os atores, traduz as referências posicionais do elenco
// para os IDs atribuídos e grava os filmes.
func (s *Service) Initialize(ctx context.Context, data Dataset) (InitResult, error) {
	// 1. Validação completa antes de qualquer escrita
	if err := validate(data); err != nil {
		return InitResult{}, err
	}

	// 2. Atores; uma falha no meio do lote pode ter gravado parte deles
	actors := make([]domain.Actor, len(data.Actors))
	for i, sa := range data.Actors {
		a := sa.ToDomain()
		a.ID = ""
		if a.Images == nil {
			a.Images = []domain.Image{}
		}
		actors[i] = a
	}
	createdActors, err := s.actors.CreateMany(ctx, actors)
	if err != nil {
		var partial *apperror.PartialFailureError
		if errors.As(err, &partial) {
			s.logger.Error("Carga interrompida durante a gravação de atores.", err)
			return InitResult{}, apperror.NewPartialFailureError("Initialization aborted", StageActors, partial.Committed, err)
		}
		return InitResult{}, err
	}
	if len(createdActors) != len(actors) {
		return InitResult{}, apperror.NewPartialFailureError("Initialization aborted", StageActors, len(createdActors),
			fmt.Errorf("esperados %d atores, gravados %d", len(actors), len(createdActors)))
	}
	s.logger.Info("Carga: atores gravados.", map[string]interface{}{"count": len(createdActors)})

	// 3. Elenco remapeado para os IDs gerados
	movies := make([]domain.Movie, len(data.Movies))
	for i, sm := range data.Movies {
		m := sm.Movie
		m.ID = ""
		m.Cast = make([]string, len(sm.Cast))
		for j, ref := range sm.Cast {
			m.Cast[j] = createdActors[int(ref)-1].ID
		}
		if m.Images == nil {
			m.Images = []domain.Image{}
		}
		movies[i] = m
	}

	// 4. Filmes; os atores já gravados permanecem em caso de falha
	createdMovies, err := s.movies.CreateMany(ctx, movies)
	if err != nil {
		s.logger.Error("Carga interrompida após gravar atores.", err)
		return InitResult{}, apperror.NewPartialFailureError("Initialization aborted", StageMovies, len(createdActors), err)
	}
	s.logger.Info("Carga: filmes gravados.", map[string]interface{}{"count": len(createdMovies)})

	return InitResult{CreatedActors: createdActors, CreatedMovies: createdMovies}, nil
}

// Deinitialize remove todos os filmes e atores.
func (s *Service) Deinitialize(ctx context.Context) (DeinitResult, error) {
	deletedMovies, err := s.movies.DeleteAll(ctx)
	if err != nil {
		return DeinitResult{}, err
	}

	deletedActors, err := s.actors.DeleteAll(ctx)
	if err != nil {
		s.logger.Error("Limpeza interrompida após remover filmes.", err)
		return DeinitResult{}, apperror.NewPartialFailureError("Deinitialization aborted", StageActors, int(deletedMovies), err)
	}

	s.logger.Info("Catálogo limpo.", map[string]interface{}{
		"deleted_movies": deletedMovies,
		"deleted_actors": deletedActors,
	})
	return DeinitResult{DeletedActors: deletedActors, DeletedMovies: deletedMovies}, nil
}

func validate(data Dataset) error {
	for i, a := range data.Actors {
		if strings.TrimSpace(a.Name) == "" {
			return apperror.NewValidationError(fmt.Sprintf("Actor %d: name is required", i+1))
		}
	}
	for i, m := range data.Movies {
		if strings.TrimSpace(m.Title) == "" {
			return apperror.NewValidationError(fmt.Sprintf("Movie %d: title is required", i+1))
		}
		if m.Rating < domain.MinRating || m.Rating > domain.MaxRating {
			return apperror.NewValidationError(fmt.Sprintf("Movie %d: rating must be between %d and %d", i+1, domain.MinRating, domain.MaxRating))
		}
		for _, ref := range m.Cast {
			if ref < 1 || int(ref) > len(data.Actors) {
				return apperror.NewValidationError(fmt.Sprintf("Movie %d: invalid cast reference %d", i+1, ref))
			}
		}
	}
	return nil
}
