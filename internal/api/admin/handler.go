package admin

import (
	"context"
	"net/http"

	"cinecatalog/internal/api/response"
	"cinecatalog/internal/pkg/logger"
	"cinecatalog/internal/service/seedservice"
)

// SeedService carrega e limpa o catálogo em lote.
type SeedService interface {
	Initialize(ctx context.Context, data seedservice.Dataset) (seedservice.InitResult, error)
	Deinitialize(ctx context.Context) (seedservice.DeinitResult, error)
}

// Handler atende /initialize e /deinitialize (somente administradores).
type Handler struct {
	Service SeedService
	resp    *response.Responder
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc SeedService, log logger.Logger) *Handler {
	return &Handler{Service: svc, resp: response.New(log)}
}

// InitializeHandler lida com a requisição POST /initialize.
// @Summary Carrega atores e filmes em lote
// @Description O elenco dos filmes referencia atores do mesmo lote por posição (1-based), como número ou {"_id": n}. Sem rollback: uma falha após gravar atores é reportada como falha parcial.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param dataset body seedservice.Dataset true "Atores e filmes"
// @Success 201 {object} seedservice.InitResult
// @Failure 400 {object} domain.ErrorResponse "Payload ou referência de elenco inválida"
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Failure 500 {object} domain.ErrorResponse "Falha parcial ou erro interno"
// @Router /initialize [post]
func (h *Handler) InitializeHandler(w http.ResponseWriter, r *http.Request) {
	var data seedservice.Dataset
	if err := response.Decode(r, &data); err != nil {
		h.resp.Error(w, r, err)
		return
	}

	res, err := h.Service.Initialize(r.Context(), data)
	h.resp.Handle(w, r, res, err, http.StatusCreated)
}

// DeinitializeHandler lida com a requisição POST /deinitialize.
// @Summary Remove todos os atores e filmes
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} seedservice.DeinitResult
// @Failure 401 {object} domain.ErrorResponse "Não autorizado"
// @Failure 500 {object} domain.ErrorResponse "Falha parcial ou erro interno"
// @Router /deinitialize [post]
func (h *Handler) DeinitializeHandler(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Deinitialize(r.Context())
	h.resp.Handle(w, r, res, err, http.StatusOK)
}
