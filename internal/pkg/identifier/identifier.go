// Package identifier concentra o formato de IDs usado por todos os backends
// de persistência: 24 caracteres hexadecimais (ObjectID do MongoDB).
package identifier

import "go.mongodb.org/mongo-driver/v2/bson"

// Length é o tamanho fixo de um identificador em hexadecimal.
const Length = 24

// Valid retorna true apenas se raw for um identificador bem formado.
// Deve ser chamado antes de qualquer busca por ID no repositório.
func Valid(raw string) bool {
	if len(raw) != Length {
		return false
	}
	_, err := bson.ObjectIDFromHex(raw)
	return err == nil
}

// New gera um novo identificador.
func New() string {
	return bson.NewObjectID().Hex()
}
