package movie

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"cinecatalog/internal/api/request"
	"cinecatalog/internal/api/response"
	"cinecatalog/internal/domain"
	"cinecatalog/internal/pkg/logger"
)

// MovieService define o contrato que o Handler espera da camada de Serviço.
type MovieService interface {
	List(ctx context.Context) ([]domain.Movie, error)
	Get(ctx context.Context, id string) (domain.MovieDetail, error)
	Create(ctx context.Context, movie domain.Movie) (domain.Movie, error)
	Update(ctx context.Context, id string, patch domain.MoviePatch) (domain.Movie, error)
	Delete(ctx context.Context, id string) (domain.Movie, error)
}

// DeleteResponse é a resposta de DELETE /movies/{id}.
type DeleteResponse struct {
	Message      string       `json:"message" example:"Movie deleted successfully"`
	DeletedMovie domain.Movie `json:"deletedMovie"`
}

// Handler agrupa todos os métodos de Handler de filmes.
type Handler struct {
	Service   MovieService
	Validator *request.Validator
	resp      *response.Responder
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc MovieService, v *request.Validator, log logger.Logger) *Handler {
	return &Handler{Service: svc, Validator: v, resp: response.New(log)}
}

// ListMoviesHandler lida com a requisição GET /movies.
// @Summary Lista os filmes
// @Tags movies
// @Produce json
// @Success 200 {array} domain.Movie
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /movies [get]
func (h *Handler) ListMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := h.Service.List(r.Context())
	h.resp.Handle(w, r, movies, err, http.StatusOK)
}

// GetMovieHandler lida com a requisição GET /movies/{id}.
// @Summary Busca um filme com o elenco resolvido
// @Tags movies
// @Produce json
// @Param id path string true "ID do filme (24 caracteres hex)"
// @Success 200 {object} domain.MovieDetail
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /movies/{id} [get]
func (h *Handler) GetMovieHandler(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	h.resp.Handle(w, r, detail, err, http.StatusOK)
}

// CreateMovieHandler lida com a requisição POST /movies.
// @Summary Cria um filme
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movie body request.MoviePayload true "Dados do filme"
// @Success 201 {object} domain.Movie
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Token ausente, inválido ou sem papel admin"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /movies [post]
func (h *Handler) CreateMovieHandler(w http.ResponseWriter, r *http.Request) {
	var payload request.MoviePayload
	if err := response.Decode(r, &payload); err != nil {
		h.resp.Error(w, r, err)
		return
	}
	if err := h.Validator.Validate(payload); err != nil {
		h.resp.Error(w, r, err)
		return
	}

	created, err := h.Service.Create(r.Context(), payload.ToDomain())
	h.resp.Handle(w, r, created, err, http.StatusCreated)
}

// UpdateMovieHandler lida com a requisição PATCH /movies/{id}.
// @Summary Atualiza parcialmente um filme
// @Description Apenas os campos enviados são alterados.
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do filme"
// @Param patch body request.MoviePatchPayload true "Campos a alterar"
// @Success 200 {object} domain.Movie
// @Failure 400 {object} domain.ErrorResponse "Payload ou ID inválido"
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Router /movies/{id} [patch]
func (h *Handler) UpdateMovieHandler(w http.ResponseWriter, r *http.Request) {
	var payload request.MoviePatchPayload
	if err := response.Decode(r, &payload); err != nil {
		h.resp.Error(w, r, err)
		return
	}
	if err := h.Validator.Validate(payload); err != nil {
		h.resp.Error(w, r, err)
		return
	}

	updated, err := h.Service.Update(r.Context(), mux.Vars(r)["id"], payload.ToDomain())
	h.resp.Handle(w, r, updated, err, http.StatusOK)
}

// DeleteMovieHandler lida com a requisição DELETE /movies/{id}.
// @Summary Remove um filme
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do filme"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Failure 404 {object} domain.ErrorResponse "Filme não encontrado"
// @Router /movies/{id} [delete]
func (h *Handler) DeleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.resp.Error(w, r, err)
		return
	}
	h.resp.JSON(w, r, http.StatusOK, DeleteResponse{Message: "Movie deleted successfully", DeletedMovie: deleted})
}
