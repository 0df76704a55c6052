package searchservice

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
)

// Parâmetros de busca aceitos na query string.
const (
	ParamSearchType  = "searchType"
	ParamSearchQuery = "searchQuery"
	ParamGenre       = "selectedGenre"
	ParamYear        = "selectedYear"
	ParamLowRating   = "selectedLowRating"
	ParamHighRating  = "selectedHighRating"
	ParamStartDate   = "startDate"
	ParamEndDate     = "endDate"
)

// Tipos de busca.
const (
	TypeMovies = "movies"
	TypeActors = "actors"
)

// MovieParams são os filtros opcionais de filme. Texto vazio e ponteiro nil
// significam "não informado".
type MovieParams struct {
	SearchQuery string
	Genre       string
	Year        *int
	LowRating   *float64
	HighRating  *float64
}

// ActorParams são os filtros opcionais de ator.
type ActorParams struct {
	SearchQuery string
	StartDate   *time.Time
	EndDate     *time.Time
}

// BuildMovieFilter acumula apenas as cláusulas cujos parâmetros foram informados.
func BuildMovieFilter(p MovieParams) domain.Predicate {
	filter := domain.Predicate{}
	if p.SearchQuery != "" {
		filter = filter.And(domain.FieldTitle, domain.OpContains, p.SearchQuery)
	}
	if p.Genre != "" {
		filter = filter.And(domain.FieldGenre, domain.OpContains, p.Genre)
	}
	if p.Year != nil {
		filter = filter.And(domain.FieldReleaseYear, domain.OpEquals, *p.Year)
	}
	if p.LowRating != nil {
		filter = filter.And(domain.FieldRating, domain.OpGte, *p.LowRating)
	}
	if p.HighRating != nil {
		filter = filter.And(domain.FieldRating, domain.OpLte, *p.HighRating)
	}
	return filter
}

// BuildActorFilter acumula apenas as cláusulas cujos parâmetros foram informados.
func BuildActorFilter(p ActorParams) domain.Predicate {
	filter := domain.Predicate{}
	if p.SearchQuery != "" {
		filter = filter.And(domain.FieldName, domain.OpContains, p.SearchQuery)
	}
	if p.StartDate != nil {
		filter = filter.And(domain.FieldDateOfBirth, domain.OpGte, *p.StartDate)
	}
	if p.EndDate != nil {
		filter = filter.And(domain.FieldDateOfBirth, domain.OpLte, *p.EndDate)
	}
	return filter
}

// ParseMovieParams lê e converte os filtros de filme da query string.
func ParseMovieParams(q url.Values) (MovieParams, error) {
	p := MovieParams{
		SearchQuery: strings.TrimSpace(q.Get(ParamSearchQuery)),
		Genre:       strings.TrimSpace(q.Get(ParamGenre)),
	}

	if raw := strings.TrimSpace(q.Get(ParamYear)); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return MovieParams{}, apperror.NewValidationError(fmt.Sprintf("Invalid %s: %s", ParamYear, raw))
		}
		p.Year = &year
	}

	var err error
	if p.LowRating, err = parseRating(q, ParamLowRating); err != nil {
		return MovieParams{}, err
	}
	if p.HighRating, err = parseRating(q, ParamHighRating); err != nil {
		return MovieParams{}, err
	}
	return p, nil
}

func parseRating(q url.Values, name string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperror.NewValidationError(fmt.Sprintf("Invalid %s: %s", name, raw))
	}
	return &v, nil
}

// ParseActorParams lê e converte os filtros de ator da query string.
func ParseActorParams(q url.Values) (ActorParams, error) {
	p := ActorParams{SearchQuery: strings.TrimSpace(q.Get(ParamSearchQuery))}

	var err error
	if p.StartDate, err = parseDate(q, ParamStartDate); err != nil {
		return ActorParams{}, err
	}
	if p.EndDate, err = parseDate(q, ParamEndDate); err != nil {
		return ActorParams{}, err
	}
	return p, nil
}

func parseDate(q url.Values, name string) (*time.Time, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(raw)
	if err != nil {
		return nil, apperror.NewValidationError(fmt.Sprintf("Invalid %s: %s", name, raw))
	}
	return &t, nil
}
