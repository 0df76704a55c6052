package actorservice

import (
	"context"
	"strings"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/identifier"
	"cinecatalog/internal/pkg/logger"
)

// FilmographyResolver reconstrói a filmografia a partir do elenco dos filmes.
type FilmographyResolver interface {
	MoviesFeaturing(ctx context.Context, actorID string) ([]domain.Movie, error)
}

// Service implementa as regras de negócio de atores.
type Service struct {
	repo      domain.ActorRepository
	relations FilmographyResolver
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Ator.
func NewService(repo domain.ActorRepository, relations FilmographyResolver, log logger.Logger) *Service {
	return &Service{repo: repo, relations: relations, logger: log}
}

// List devolve todos os atores.
func (s *Service) List(ctx context.Context) ([]domain.Actor, error) {
	actors, err := s.repo.Find(ctx, domain.MatchAll)
	if err != nil {
		return nil, err
	}
	if actors == nil {
		actors = []domain.Actor{}
	}
	return actors, nil
}

// Get devolve o ator e os filmes em que aparece.
func (s *Service) Get(ctx context.Context, id string) (domain.ActorDetail, error) {
	if !identifier.Valid(id) {
		return domain.ActorDetail{}, apperror.NewValidationError("Invalid actor id")
	}

	actor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.ActorDetail{}, err
	}

	movies, err := s.relations.MoviesFeaturing(ctx, id)
	if err != nil {
		return domain.ActorDetail{}, err
	}

	return domain.ActorDetail{Actor: actor, Movies: movies}, nil
}

// Create valida e persiste um novo ator.
func (s *Service) Create(ctx context.Context, actor domain.Actor) (domain.Actor, error) {
	if strings.TrimSpace(actor.Name) == "" {
		return domain.Actor{}, apperror.NewValidationError("Name is required")
	}

	actor.ID = ""
	if actor.Images == nil {
		actor.Images = []domain.Image{}
	}

	created, err := s.repo.Create(ctx, actor)
	if err != nil {
		return domain.Actor{}, err
	}

	s.logger.Info("Ator criado.", map[string]interface{}{"actor_id": created.ID})
	return created, nil
}

// Update aplica uma atualização parcial ao ator.
func (s *Service) Update(ctx context.Context, id string, patch domain.ActorPatch) (domain.Actor, error) {
	if !identifier.Valid(id) {
		return domain.Actor{}, apperror.NewValidationError("Invalid actor id")
	}
	if patch.IsEmpty() {
		return domain.Actor{}, apperror.NewValidationError("No fields to update")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.Actor{}, apperror.NewValidationError("Name is required")
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.Actor{}, err
	}

	s.logger.Info("Ator atualizado.", map[string]interface{}{"actor_id": id})
	return updated, nil
}

// Delete remove o ator. Referências a ele no elenco de filmes permanecem e
// passam a ser ignoradas na leitura.
func (s *Service) Delete(ctx context.Context, id string) (domain.Actor, error) {
	if !identifier.Valid(id) {
		return domain.Actor{}, apperror.NewValidationError("Invalid actor id")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Actor{}, err
	}

	s.logger.Info("Ator removido.", map[string]interface{}{"actor_id": id})
	return deleted, nil
}
