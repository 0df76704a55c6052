package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// AppError é a interface central para todos os erros customizados do catálogo.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Message() string  // Texto exposto ao cliente
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Message() string  { return e.Msg }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// UnauthorizedError representa credenciais ausentes, inválidas ou sem permissão.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Message() string  { return e.Msg }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autenticação/autorização.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Message() string  { return e.Msg }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
// Msg é uma descrição curta; Err nunca é exposto ao cliente.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver)
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Erro Interno: %s", e.Msg)
	}
	return fmt.Sprintf("Erro Interno: %s: %v", e.Msg, e.Err)
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Message() string  { return e.Msg }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no banco.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(msg, err)
}

// CommittedUnknown marca uma falha parcial em que o backend não informou
// quantos registros chegaram a ser gravados.
const CommittedUnknown = -1

// PartialFailureError indica que uma operação em lote parou no meio do caminho
// e deixou escritas já confirmadas (não há rollback).
type PartialFailureError struct {
	Msg       string
	Stage     string
	Committed int
	Err       error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("Falha parcial em %s (%s registros confirmados): %s: %v", e.Stage, e.committed(), e.Msg, e.Err)
}
func (e *PartialFailureError) Category() string { return "PARTIAL_FAILURE" }
func (e *PartialFailureError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *PartialFailureError) Message() string {
	return fmt.Sprintf("%s (stage: %s, committed: %s)", e.Msg, e.Stage, e.committed())
}
func (e *PartialFailureError) Unwrap() error { return e.Err }

func (e *PartialFailureError) committed() string {
	if e.Committed < 0 {
		return "unknown"
	}
	return strconv.Itoa(e.Committed)
}

// NewPartialFailureError cria um erro de falha parcial de operação em lote.
func NewPartialFailureError(msg, stage string, committed int, err error) AppError {
	return &PartialFailureError{Msg: msg, Stage: stage, Committed: committed, Err: err}
}

// --- Helpers ---

// Is* verificam a categoria do erro em qualquer ponto da cadeia (Unwrap).

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target *UnauthorizedError
	return errors.As(err, &target)
}

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, categoria e mensagem.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Message()
	}

	// Erro não tipado: tratar como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Unexpected error"
}
