package person

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"cinecatalog/internal/api/request"
	"cinecatalog/internal/api/response"
	"cinecatalog/internal/domain"
	"cinecatalog/internal/pkg/logger"
)

// PersonService é a gestão administrativa de usuários.
type PersonService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error)
	Delete(ctx context.Context, id string) (domain.User, error)
}

// DeleteResponse é a resposta de DELETE /persons/{id}.
type DeleteResponse struct {
	Message       string      `json:"message" example:"Person deleted successfully"`
	DeletedPerson domain.User `json:"deletedPerson"`
}

// Handler atende /persons (somente administradores).
type Handler struct {
	Service   PersonService
	Validator *request.Validator
	resp      *response.Responder
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc PersonService, v *request.Validator, log logger.Logger) *Handler {
	return &Handler{Service: svc, Validator: v, resp: response.New(log)}
}

// ListPersonsHandler lida com a requisição GET /persons.
// @Summary Lista os usuários
// @Tags persons
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.User
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Router /persons [get]
func (h *Handler) ListPersonsHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	h.resp.Handle(w, r, users, err, http.StatusOK)
}

// GetPersonHandler lida com a requisição GET /persons/{id}.
// @Summary Busca um usuário
// @Tags persons
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do usuário"
// @Success 200 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /persons/{id} [get]
func (h *Handler) GetPersonHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	h.resp.Handle(w, r, user, err, http.StatusOK)
}

// CreatePersonHandler lida com a requisição POST /persons.
// @Summary Cria um usuário com qualquer papel
// @Tags persons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param person body domain.UserRegistration true "Dados do usuário"
// @Success 201 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou email já cadastrado"
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Router /persons [post]
func (h *Handler) CreatePersonHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := response.Decode(r, &reg); err != nil {
		h.resp.Error(w, r, err)
		return
	}
	if err := h.Validator.Validate(reg); err != nil {
		h.resp.Error(w, r, err)
		return
	}

	created, err := h.Service.Create(r.Context(), reg)
	h.resp.Handle(w, r, created, err, http.StatusCreated)
}

// UpdatePersonHandler lida com a requisição PATCH /persons/{id}.
// @Summary Atualiza parcialmente um usuário
// @Tags persons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do usuário"
// @Param patch body request.UserPatchPayload true "Campos a alterar"
// @Success 200 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse "Payload ou ID inválido"
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /persons/{id} [patch]
func (h *Handler) UpdatePersonHandler(w http.ResponseWriter, r *http.Request) {
	var payload request.UserPatchPayload
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

// DeletePersonHandler lida com a requisição DELETE /persons/{id}.
// @Summary Remove um usuário
// @Tags persons
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do usuário"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /persons/{id} [delete]
func (h *Handler) DeletePersonHandler(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.resp.Error(w, r, err)
		return
	}
	h.resp.JSON(w, r, http.StatusOK, DeleteResponse{Message: "Person deleted successfully", DeletedPerson: deleted})
}
