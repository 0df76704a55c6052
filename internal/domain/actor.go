package domain

import (
	"context"
	"time"
)

// Actor representa um ator. Os filmes em que aparece são derivados de Movie.Cast.
type Actor struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Biography   string    `json:"biography"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Images      []Image   `json:"images"`
}

// ActorPatch carrega uma atualização parcial de ator.
type ActorPatch struct {
	Name        *string    `json:"name"`
	Biography   *string    `json:"biography"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Images      *[]Image   `json:"images"`
}

// IsEmpty indica se nenhum campo foi informado.
func (p ActorPatch) IsEmpty() bool {
	return p.Name == nil && p.Biography == nil && p.DateOfBirth == nil && p.Images == nil
}

// Apply devolve uma cópia de a com os campos informados em p.
func (p ActorPatch) Apply(a Actor) Actor {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Biography != nil {
		a.Biography = *p.Biography
	}
	if p.DateOfBirth != nil {
		a.DateOfBirth = *p.DateOfBirth
	}
	if p.Images != nil {
		a.Images = *p.Images
	}
	return a
}

// ActorDetail é a visão de detalhe de um ator, com os filmes em que aparece.
type ActorDetail struct {
	Actor
	Movies []Movie `json:"movies"`
}

// ActorRepository é o gateway de persistência de atores.
type ActorRepository interface {
	Create(ctx context.Context, actor Actor) (Actor, error)
	CreateMany(ctx context.Context, actors []Actor) ([]Actor, error)
	FindByID(ctx context.Context, id string) (Actor, error)
	// FindByIDs ignora IDs sem registro correspondente; a ordem do resultado não é garantida.
	FindByIDs(ctx context.Context, ids []string) ([]Actor, error)
	Find(ctx context.Context, filter Predicate) ([]Actor, error)
	Update(ctx context.Context, id string, patch ActorPatch) (Actor, error)
	Delete(ctx context.Context, id string) (Actor, error)
	DeleteAll(ctx context.Context) (int64, error)
}
