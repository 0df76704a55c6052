// Package request define os payloads de entrada da API e sua validação.
package request

import (
	"cinecatalog/internal/domain"
)

// ImagePayload é uma imagem enviada pelo cliente.
type ImagePayload struct {
	URL     string `json:"url" validate:"required"`
	IsCover *bool  `json:"isCover" validate:"required"`
}

func toImages(in []ImagePayload) []domain.Image {
	out := make([]domain.Image, 0, len(in))
	for _, img := range in {
		out = append(out, domain.Image{URL: img.URL, IsCover: *img.IsCover})
	}
	return out
}

// MoviePayload é o corpo de POST /movies.
type MoviePayload struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description" validate:"required"`
	Genre       string         `json:"genre" validate:"required"`
	Director    string         `json:"director" validate:"required"`
	ReleaseYear *int           `json:"releaseYear" validate:"required"`
	Rating      *float64       `json:"rating" validate:"required,gte=0,lte=10"`
	Cast        []string       `json:"cast" validate:"omitempty,dive,objectid"`
	Images      []ImagePayload `json:"images" validate:"omitempty,dive"`
}

// ToDomain converte o payload já validado.
func (p MoviePayload) ToDomain() domain.Movie {
	return domain.Movie{
		Title:       p.Title,
		Description: p.Description,
		Genre:       p.Genre,
		Director:    p.Director,
		ReleaseYear: *p.ReleaseYear,
		Rating:      *p.Rating,
		Cast:        p.Cast,
		Images:      toImages(p.Images),
	}
}

// MoviePatchPayload é o corpo de PATCH /movies/{id}.
type MoviePatchPayload struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Genre       *string         `json:"genre"`
	Director    *string         `json:"director"`
	ReleaseYear *int            `json:"releaseYear"`
	Rating      *float64        `json:"rating" validate:"omitempty,gte=0,lte=10"`
	Cast        *[]string       `json:"cast" validate:"omitempty,dive,objectid"`
	Images      *[]ImagePayload `json:"images" validate:"omitempty,dive"`
}

// ToDomain converte o payload já validado.
func (p MoviePatchPayload) ToDomain() domain.MoviePatch {
	patch := domain.MoviePatch{
		Title:       p.Title,
		Description: p.Description,
		Genre:       p.Genre,
		Director:    p.Director,
		ReleaseYear: p.ReleaseYear,
		Rating:      p.Rating,
		Cast:        p.Cast,
	}
	if p.Images != nil {
		images := toImages(*p.Images)
		patch.Images = &images
	}
	return patch
}

// ActorPayload é o corpo de POST /actors.
type ActorPayload struct {
	Name        string         `json:"name" validate:"required"`
	Biography   string         `json:"biography" validate:"required"`
	DateOfBirth *domain.Date   `json:"dateOfBirth" validate:"required"`
	Images      []ImagePayload `json:"images" validate:"omitempty,dive"`
}

// ToDomain converte o payload já validado.
func (p ActorPayload) ToDomain() domain.Actor {
	return domain.Actor{
		Name:        p.Name,
		Biography:   p.Biography,
		DateOfBirth: p.DateOfBirth.Time,
		Images:      toImages(p.Images),
	}
}

// ActorPatchPayload é o corpo de PATCH /actors/{id}.
type ActorPatchPayload struct {
	Name        *string         `json:"name"`
	Biography   *string         `json:"biography"`
	DateOfBirth *domain.Date    `json:"dateOfBirth"`
	Images      *[]ImagePayload `json:"images" validate:"omitempty,dive"`
}

// ToDomain converte o payload já validado.
func (p ActorPatchPayload) ToDomain() domain.ActorPatch {
	patch := domain.ActorPatch{Name: p.Name, Biography: p.Biography}
	if p.DateOfBirth != nil {
		dob := p.DateOfBirth.Time
		patch.DateOfBirth = &dob
	}
	if p.Images != nil {
		images := toImages(*p.Images)
		patch.Images = &images
	}
	return patch
}

// LoginPayload é o corpo de POST /login.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserPatchPayload é o corpo de PATCH /persons/{id}.
type UserPatchPayload struct {
	Name     *string          `json:"name"`
	Email    *string          `json:"email" validate:"omitempty,email"`
	Password *string          `json:"password"`
	Role     *domain.UserRole `json:"role" validate:"omitempty,oneof=admin user"`
}

// ToDomain converte o payload já validado.
func (p UserPatchPayload) ToDomain() domain.UserPatch {
	return domain.UserPatch{Name: p.Name, Email: p.Email, Password: p.Password, Role: p.Role}
}
