// Package pgrepo implementa os gateways de filmes, atores e usuários sobre o PostgreSQL.
package pgrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"cinecatalog/internal/domain"
	apperror "cinecatalog/internal/errors"
	"cinecatalog/internal/pkg/identifier"
)

// uniqueViolation é o código SQLSTATE de violação de UNIQUE.
const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func checkID(id string) error {
	if !identifier.Valid(id) {
		return apperror.NewValidationError("Invalid id")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == uniqueViolation
}

// compileWhere traduz o predicado para uma cláusula WHERE parametrizada.
// columns mapeia o nome do campo de domínio para a coluna da tabela.
func compileWhere(p domain.Predicate, columns map[string]string) (string, []interface{}, error) {
	if p.IsEmpty() {
		return "", nil, nil
	}

	conds := make([]string, 0, len(p.Clauses))
	args := make([]interface{}, 0, len(p.Clauses))

	for _, c := range p.Clauses {
		col, ok := columns[c.Field]
		if !ok {
			return "", nil, fmt.Errorf("campo não filtrável: %s", c.Field)
		}

		args = append(args, c.Value)
		n := len(args)

		switch c.Op {
		case domain.OpContains:
			if _, ok := c.Value.(string); !ok {
				return "", nil, fmt.Errorf("valor de %s deve ser texto", c.Field)
			}
			conds = append(conds, fmt.Sprintf("strpos(lower(%s), lower($%d)) > 0", col, n))
		case domain.OpEquals:
			conds = append(conds, fmt.Sprintf("%s = $%d", col, n))
		case domain.OpGte:
			conds = append(conds, fmt.Sprintf("%s >= $%d", col, n))
		case domain.OpLte:
			conds = append(conds, fmt.Sprintf("%s <= $%d", col, n))
		default:
			return "", nil, fmt.Errorf("operador não suportado: %s", c.Op)
		}
	}

	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// setBuilder monta o SET de um UPDATE parcial.
type setBuilder struct {
	cols []string
	args []interface{}
}

func (b *setBuilder) add(col string, value interface{}) {
	b.args = append(b.args, value)
	b.cols = append(b.cols, fmt.Sprintf("%s = $%d", col, len(b.args)))
}

func (b *setBuilder) empty() bool { return len(b.cols) == 0 }

// query devolve o UPDATE completo; o ID é o último parâmetro.
func (b *setBuilder) query(table, id, returning string) (string, []interface{}) {
	args := append(b.args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(b.cols, ", "), len(args), returning)
	return q, args
}

func marshalImages(images []domain.Image) ([]byte, error) {
	if images == nil {
		images = []domain.Image{}
	}
	return json.Marshal(images)
}

func unmarshalImages(raw []byte) ([]domain.Image, error) {
	images := []domain.Image{}
	if len(raw) == 0 {
		return images, nil
	}
	if err := json.Unmarshal(raw, &images); err != nil {
		return nil, err
	}
	return images, nil
}
