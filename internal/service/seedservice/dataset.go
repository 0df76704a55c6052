package seedservice

import (
	"bytes"
	"encoding/json"
	"fmt"

	"cinecatalog/internal/domain"
)

// CastRef é uma referência posicional (1-based) a um ator do mesmo lote.
// Aceita tanto um número quanto um objeto {"_id": n}.
type CastRef int

func (c *CastRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			ID *int `json:"_id"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		if obj.ID == nil {
			return fmt.Errorf("referência de elenco sem _id: %s", b)
		}
		*c = CastRef(*obj.ID)
		return nil
	}

	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("referência de elenco inválida: %s", b)
	}
	*c = CastRef(n)
	return nil
}

// SeedActor é um ator do lote; dateOfBirth aceita data simples ou RFC 3339.
type SeedActor struct {
	domain.Actor
	DateOfBirth domain.Date `json:"dateOfBirth"`
}

// ToDomain devolve o ator com a data de nascimento lida.
func (a SeedActor) ToDomain() domain.Actor {
	actor := a.Actor
	actor.DateOfBirth = a.DateOfBirth.Time
	return actor
}

// SeedMovie é um filme do lote; Cast aponta para posições em Dataset.Actors.
type SeedMovie struct {
	domain.Movie
	Cast []CastRef `json:"cast"`
}

// Dataset é o corpo de POST /initialize.
type Dataset struct {
	Actors []SeedActor `json:"actors"`
	Movies []SeedMovie `json:"movies"`
}

// InitResult devolve os registros gravados, já com os IDs atribuídos.
type InitResult struct {
	CreatedActors []domain.Actor `json:"createdActors"`
	CreatedMovies []domain.Movie `json:"createdMovies"`
}

// DeinitResult resume a limpeza.
type DeinitResult struct {
	DeletedActors int64 `json:"deletedActors"`
	DeletedMovies int64 `json:"deletedMovies"`
}
