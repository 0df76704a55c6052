package domain

// Image é uma imagem associada a um filme ou ator.
type Image struct {
	URL     string `json:"url" validate:"required"`
	IsCover bool   `json:"isCover"`
}
