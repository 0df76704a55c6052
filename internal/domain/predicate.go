package domain

// Campos filtráveis, nomeados como no JSON das entidades.
const (
	FieldTitle       = "title"
	FieldGenre       = "genre"
	FieldReleaseYear = "releaseYear"
	FieldRating      = "rating"
	FieldName        = "name"
	FieldDateOfBirth = "dateOfBirth"
)

// Operator é o tipo de restrição aplicada a um campo.
type Operator int

const (
	// OpContains: substring, sem diferenciar maiúsculas/minúsculas.
	OpContains Operator = iota
	OpEquals
	OpGte
	OpLte
)

func (o Operator) String() string {
	switch o {
	case OpContains:
		return "contains"
	case OpEquals:
		return "eq"
	case OpGte:
		return "gte"
	case OpLte:
		return "lte"
	}
	return "unknown"
}

// Clause é uma restrição sobre um único campo.
type Clause struct {
	Field string
	Op    Operator
	Value interface{}
}

// Predicate é uma conjunção (AND) de cláusulas, traduzida por cada backend
// de persistência. Um predicado vazio casa com todos os registros.
type Predicate struct {
	Clauses []Clause
}

// And acrescenta uma cláusula e devolve o predicado para encadeamento.
func (p Predicate) And(field string, op Operator, value interface{}) Predicate {
	p.Clauses = append(append([]Clause(nil), p.Clauses...), Clause{Field: field, Op: op, Value: value})
	return p
}

// IsEmpty indica se o predicado não restringe nada.
func (p Predicate) IsEmpty() bool { return len(p.Clauses) == 0 }

// MatchAll é o predicado usado pelas listagens simples.
var MatchAll = Predicate{}
