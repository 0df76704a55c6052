// Package response padroniza as respostas JSON de todos os handlers.
package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/logger"
	"cinecatalog/internal/pkg/sentry"
)

// maxBodyBytes limita o corpo aceito nas requisições (cargas de /initialize incluídas).
const maxBodyBytes = 10 << 20

// Responder escreve sucesso e erro no formato da API.
type Responder struct {
	Logger logger.Logger
}

// New cria um Responder.
func New(log logger.Logger) *Responder {
	return &Responder{Logger: log}
}

// Handle envia data com successStatus, ou traduz err para o status HTTP correspondente.
func (rs *Responder) Handle(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err != nil {
		rs.Error(w, r, err)
		return
	}
	rs.JSON(w, r, successStatus, data)
}

// JSON escreve uma resposta de sucesso.
func (rs *Responder) JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.Logger.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Message escreve {"message": msg}.
func (rs *Responder) Message(w http.ResponseWriter, r *http.Request, status int, msg string) {
	rs.JSON(w, r, status, domain.MessageResponse{Message: msg})
}

// Error traduz o erro para o corpo padronizado. Erros 5xx são registrados e
// reportados; o detalhe interno nunca vai para o cliente.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		rs.Logger.Error(fmt.Sprintf("Erro de Servidor: %s %s", r.Method, r.URL.Path), err)
		sentry.CaptureError(r, err)
	} else {
		rs.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		})
	}

	rs.JSON(w, r, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// Decode lê o corpo JSON da requisição em dst.
func Decode(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return apperror.NewValidationError("Invalid JSON payload")
	}
	return nil
}
