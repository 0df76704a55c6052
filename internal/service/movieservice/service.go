package movieservice

import (
	"context"
	"fmt"
	"strings"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/identifier"
	"cinecatalog/internal/pkg/logger"
)

// CastResolver é o contrato do resolvedor de relacionamentos usado aqui.
type CastResolver interface {
	ResolveCast(ctx context.Context, movie domain.Movie) (domain.MovieDetail, error)
	ValidateCast(ctx context.Context, cast []string) error
}

// Service implementa as regras de negócio de filmes.
type Service struct {
	repo      domain.MovieRepository
	relations CastResolver
	logger    logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Filme.
func NewService(repo domain.MovieRepository, relations CastResolver, log logger.Logger) *Service {
	return &Service{repo: repo, relations: relations, logger: log}
}

// List devolve todos os filmes, sem resolver o elenco.
func (s *Service) List(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.repo.Find(ctx, domain.MatchAll)
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	return movies, nil
}

// Get devolve o filme com o elenco resolvido.
func (s *Service) Get(ctx context.Context, id string) (domain.MovieDetail, error) {
	// 1. O ID é validado antes de qualquer acesso ao banco
	if !identifier.Valid(id) {
		return domain.MovieDetail{}, apperror.NewValidationError("Invalid movie id")
	}

	// 2. Busca
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.MovieDetail{}, err
	}

	// 3. Resolução do elenco (referências pendentes são omitidas)
	return s.relations.ResolveCast(ctx, movie)
}

// Create valida e persiste um novo filme.
func (s *Service) Create(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	// 1. Regras de negócio
	if strings.TrimSpace(movie.Title) == "" {
		return domain.Movie{}, apperror.NewValidationError("Title is required")
	}
	if err := validateRating(movie.Rating); err != nil {
		return domain.Movie{}, err
	}
	if err := s.relations.ValidateCast(ctx, movie.Cast); err != nil {
		return domain.Movie{}, err
	}

	// 2. Normalização: o ID é atribuído pelo armazenamento
	movie.ID = ""
	if movie.Cast == nil {
		movie.Cast = []string{}
	}
	if movie.Images == nil {
		movie.Images = []domain.Image{}
	}

	// 3. Persistência
	created, err := s.repo.Create(ctx, movie)
	if err != nil {
		return domain.Movie{}, err
	}

	s.logger.Info("Filme criado.", map[string]interface{}{"movie_id": created.ID})
	return created, nil
}

// Update aplica uma atualização parcial: só os campos informados mudam.
func (s *Service) Update(ctx context.Context, id string, patch domain.MoviePatch) (domain.Movie, error) {
	if !identifier.Valid(id) {
		return domain.Movie{}, apperror.NewValidationError("Invalid movie id")
	}
	if patch.IsEmpty() {
		return domain.Movie{}, apperror.NewValidationError("No fields to update")
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return domain.Movie{}, apperror.NewValidationError("Title is required")
	}
	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return domain.Movie{}, err
		}
	}
	if patch.Cast != nil {
		if err := s.relations.ValidateCast(ctx, *patch.Cast); err != nil {
			return domain.Movie{}, err
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.Movie{}, err
	}

	s.logger.Info("Filme atualizado.", map[string]interface{}{"movie_id": id})
	return updated, nil
}

// Delete remove o filme e devolve o registro removido.
func (s *Service) Delete(ctx context.Context, id string) (domain.Movie, error) {
	if !identifier.Valid(id) {
		return domain.Movie{}, apperror.NewValidationError("Invalid movie id")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Movie{}, err
	}

	s.logger.Info("Filme removido.", map[string]interface{}{"movie_id": id})
	return deleted, nil
}

func validateRating(r float64) error {
	if r < domain.MinRating || r > domain.MaxRating {
		return apperror.NewValidationError(fmt.Sprintf("Rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}
	return nil
}
