package user

import (
	"context"
	"net/http"

	"cinecatalog/internal/api/request"
	"cinecatalog/internal/api/response"
	"cinecatalog/internal/domain"
	"cinecatalog/internal/pkg/logger"
	"cinecatalog/internal/service/authservice"
)

// UserService define o contrato para o auto-registro.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
}

// AuthService define o contrato para o login.
type AuthService interface {
	Login(ctx context.Context, email, password string) (authservice.LoginResult, error)
}

// LoginResponse é a resposta de POST /login.
type LoginResponse struct {
	Message   string          `json:"message" example:"Login successful"`
	AuthToken string          `json:"authToken"`
	Role      domain.UserRole `json:"role" example:"user"`
}

// Handler agrupa os Handlers públicos de usuário.
type Handler struct {
	Service   UserService
	Auth      AuthService
	Validator *request.Validator
	resp      *response.Responder
}

// NewHandler cria uma nova instância do Handler, injetando os Services e o Logger.
func NewHandler(svc UserService, auth AuthService, v *request.Validator, log logger.Logger) *Handler {
	return &Handler{Service: svc, Auth: auth, Validator: v, resp: response.New(log)}
}

// RegisterUserHandler lida com a requisição POST /register.
// @Summary Registra um novo usuário
// @Description Cria um usuário comum; o papel admin não pode ser solicitado.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Dados de registro"
// @Success 201 {object} domain.MessageResponse "Registered successfully"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := response.Decode(r, &reg); err != nil {
		h.resp.Error(w, r, err)
		return
	}
	if err := h.Validator.Validate(reg); err != nil {
		h.resp.Error(w, r, err)
		return
	}

	if _, err := h.Service.Register(r.Context(), reg); err != nil {
		h.resp.Error(w, r, err)
		return
	}
	h.resp.Message(w, r, http.StatusCreated, "Registered successfully")
}

// LoginUserHandler lida com a requisição POST /login.
// @Summary Autentica um usuário e retorna o token de sessão
// @Description Um novo login invalida o token anterior do mesmo usuário.
// @Tags users
// @Accept json
// @Produce json
// @Param login body request.LoginPayload true "Credenciais do usuário"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 429 {object} domain.ErrorResponse "Limite de tentativas excedido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload request.LoginPayload
	if err := response.Decode(r, &payload); err != nil {
		h.resp.Error(w, r, err)
		return
	}
	if err := h.Validator.Validate(payload); err != nil {
		h.resp.Error(w, r, err)
		return
	}

	res, err := h.Auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		h.resp.Error(w, r, err)
		return
	}
	h.resp.JSON(w, r, http.StatusOK, LoginResponse{
		Message:   "Login successful",
		AuthToken: res.AuthToken,
		Role:      res.Role,
	})
}
