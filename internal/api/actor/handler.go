package actor

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"cinecatalog/internal/api/request"
	"cinecatalog/internal/api/response"
	"cinecatalog/internal/domain"
	"cinecatalog/internal/pkg/logger"
)

// ActorService define o contrato que o Handler espera da camada de Serviço.
type ActorService interface {
	List(ctx context.Context) ([]domain.Actor, error)
	Get(ctx context.Context, id string) (domain.ActorDetail, error)
	Create(ctx context.Context, actor domain.Actor) (domain.Actor, error)
	Update(ctx context.Context, id string, patch domain.ActorPatch) (domain.Actor, error)
	Delete(ctx context.Context, id string) (domain.Actor, error)
}

// DeleteResponse é a resposta de DELETE /actors/{id}.
type DeleteResponse struct {
	Message      string       `json:"message" example:"Actor deleted successfully"`
	DeletedActor domain.Actor `json:"deletedActor"`
}

// Handler agrupa todos os métodos de Handler de atores.
type Handler struct {
	Service   ActorService
	Validator *request.Validator
	resp      *response.Responder
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc ActorService, v *request.Validator, log logger.Logger) *Handler {
	return &Handler{Service: svc, Validator: v, resp: response.New(log)}
}

// ListActorsHandler lida com a requisição GET /actors.
// @Summary Lista os atores
// @Tags actors
// @Produce json
// @Success 200 {array} domain.Actor
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /actors [get]
func (h *Handler) ListActorsHandler(w http.ResponseWriter, r *http.Request) {
	actors, err := h.Service.List(r.Context())
	h.resp.Handle(w, r, actors, err, http.StatusOK)
}

// GetActorHandler lida com a requisição GET /actors/{id}.
// @Summary Busca um ator com os filmes em que aparece
// @Tags actors
// @Produce json
// @Param id path string true "ID do ator (24 caracteres hex)"
// @Success 200 {object} domain.ActorDetail
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Ator não encontrado"
// @Router /actors/{id} [get]
func (h *Handler) GetActorHandler(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	h.resp.Handle(w, r, detail, err, http.StatusOK)
}

// CreateActorHandler lida com a requisição POST /actors.
// @Summary Cria um ator
// @Tags actors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param actor body request.ActorPayload true "Dados do ator"
// @Success 201 {object} domain.Actor
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Router /actors [post]
func (h *Handler) CreateActorHandler(w http.ResponseWriter, r *http.Request) {
	var payload request.ActorPayload
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

// UpdateActorHandler lida com a requisição PATCH /actors/{id}.
// @Summary Atualiza parcialmente um ator
// @Tags actors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do ator"
// @Param patch body request.ActorPatchPayload true "Campos a alterar"
// @Success 200 {object} domain.Actor
// @Failure 400 {object} domain.ErrorResponse "Payload ou ID inválido"
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Failure 404 {object} domain.ErrorResponse "Ator não encontrado"
// @Router /actors/{id} [patch]
func (h *Handler) UpdateActorHandler(w http.ResponseWriter, r *http.Request) {
	var payload request.ActorPatchPayload
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

// DeleteActorHandler lida com a requisição DELETE /actors/{id}.
// @Summary Remove um ator
// @Description Referências ao ator no elenco dos filmes não são removidas.
// @Tags actors
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do ator"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Failure 404 {object} domain.ErrorResponse "Ator não encontrado"
// @Router /actors/{id} [delete]
func (h *Handler) DeleteActorHandler(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.resp.Error(w, r, err)
		return
	}
	h.resp.JSON(w, r, http.StatusOK, DeleteResponse{Message: "Actor deleted successfully", DeletedActor: deleted})
}
