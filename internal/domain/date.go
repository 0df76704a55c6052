package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout é o formato de data simples aceito nas entradas.
const DateLayout = "2006-01-02"

// ParseDate aceita datas simples (2006-01-02) ou RFC 3339 e normaliza para UTC.
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida %q: use %s ou RFC 3339", raw, DateLayout)
	}
	return t.UTC(), nil
}

// Date é um instante lido de JSON nos mesmos formatos de ParseDate.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("data deve ser texto: %s", b)
	}
	t, err := ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}
