package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"VALIDATION_ERROR"`
	Message  string `json:"message" example:"Invalid id"`
}

// MessageResponse é a resposta com apenas uma mensagem.
type MessageResponse struct {
	Message string `json:"message" example:"Registered successfully"`
}
