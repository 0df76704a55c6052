package search

import (
	"context"
	"net/http"
	"net/url"

	"cinecatalog/internal/api/response"
	"cinecatalog/internal/pkg/logger"
)

// SearchService executa a busca filtrada de filmes ou atores.
type SearchService interface {
	Search(ctx context.Context, q url.Values) (interface{}, error)
}

// Handler atende GET /search.
type Handler struct {
	Service SearchService
	resp    *response.Responder
}

// NewHandler cria uma nova instância do Handler.
func NewHandler(svc SearchService, log logger.Logger) *Handler {
	return &Handler{Service: svc, resp: response.New(log)}
}

// SearchHandler lida com a requisição GET /search.
// @Summary Busca filmes ou atores
// @Description Parâmetros ausentes ou vazios não restringem o resultado.
// @Tags search
// @Produce json
// @Param searchType query string true "movies ou actors"
// @Param searchQuery query string false "Trecho do título (filmes) ou do nome (atores)"
// @Param selectedGenre query string false "Gênero exato"
// @Param selectedYear query int false "Ano de lançamento"
// @Param selectedLowRating query number false "Nota mínima"
// @Param selectedHighRating query number false "Nota máxima"
// @Param startDate query string false "Nascidos a partir de (AAAA-MM-DD)"
// @Param endDate query string false "Nascidos até (AAAA-MM-DD)"
// @Success 200 {array} domain.Movie
// @Failure 400 {object} domain.ErrorResponse "Tipo de busca ou parâmetro inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /search [get]
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	results, err := h.Service.Search(r.Context(), r.URL.Query())
	h.resp.Handle(w, r, results, err, http.StatusOK)
}
