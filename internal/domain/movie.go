package domain

import "context"

// Movie representa um filme do catálogo.
// Cast guarda apenas IDs de atores, na ordem de exibição; é a única fonte
// da relação filme-ator (atores não guardam a lista de filmes).
type Movie struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genre       string   `json:"genre"`
	Director    string   `json:"director"`
	ReleaseYear int      `json:"releaseYear"`
	Rating      float64  `json:"rating"`
	Cast        []string `json:"cast"`
	Images      []Image  `json:"images"`
}

// MoviePatch carrega uma atualização parcial: campos nil não são alterados.
type MoviePatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Genre       *string   `json:"genre"`
	Director    *string   `json:"director"`
	ReleaseYear *int      `json:"releaseYear"`
	Rating      *float64  `json:"rating"`
	Cast        *[]string `json:"cast"`
	Images      *[]Image  `json:"images"`
}

// IsEmpty indica se nenhum campo foi informado.
func (p MoviePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Genre == nil && p.Director == nil &&
		p.ReleaseYear == nil && p.Rating == nil && p.Cast == nil && p.Images == nil
}

// Apply devolve uma cópia de m com os campos informados em p.
func (p MoviePatch) Apply(m Movie) Movie {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
	if p.Director != nil {
		m.Director = *p.Director
	}
	if p.ReleaseYear != nil {
		m.ReleaseYear = *p.ReleaseYear
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
	if p.Cast != nil {
		m.Cast = *p.Cast
	}
	if p.Images != nil {
		m.Images = *p.Images
	}
	return m
}

// MovieDetail é a visão de detalhe de um filme, com o elenco resolvido.
type MovieDetail struct {
	Movie
	Cast []Actor `json:"cast"`
}

// Limites de nota de um filme.
const (
	MinRating = 0
	MaxRating = 10
)

// MovieRepository é o gateway de persistência de filmes.
type MovieRepository interface {
	Create(ctx context.Context, movie Movie) (Movie, error)
	CreateMany(ctx context.Context, movies []Movie) ([]Movie, error)
	FindByID(ctx context.Context, id string) (Movie, error)
	Find(ctx context.Context, filter Predicate) ([]Movie, error)
	// FindByCastMember retorna os filmes cujo elenco contém actorID.
	FindByCastMember(ctx context.Context, actorID string) ([]Movie, error)
	Update(ctx context.Context, id string, patch MoviePatch) (Movie, error)
	Delete(ctx context.Context, id string) (Movie, error)
	DeleteAll(ctx context.Context) (int64, error)
}
