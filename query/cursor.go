package query

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// ErrInvalidCursor возвращается при любом дефекте токена: битый base64,
// не-JSON, лишние или отсутствующие поля, нестроковые значения.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor — самоописывающий токен keyset-пагинации: значение колонки
// сортировки последней строки страницы и её id как tiebreak. Никакого
// состояния на сервере — токен обязан переживать round-trip через клиента.
type Cursor struct {
	Value string `json:"value"`
	ID    string `json:"id"`
}

// EncodeCursor кодирует пару (value, id) в непрозрачный токен:
// base64 канонического JSON {"value":...,"id":...}.
func EncodeCursor(value, id string) string {
	payload, _ := json.Marshal(Cursor{Value: value, ID: id})
	return base64.StdEncoding.EncodeToString(payload)
}

// DecodeCursor — точная обратная операция к EncodeCursor. Токен обязан
// декодироваться ровно в два строковых поля value и id; любая другая форма
// отклоняется как ErrInvalidCursor.
func DecodeCursor(token string) (*Cursor, error) {
	payload, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, ErrInvalidCursor
	}
	if len(fields) != 2 {
		return nil, ErrInvalidCursor
	}

	var c Cursor
	for key, raw := range fields {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, ErrInvalidCursor
		}
		switch key {
		case "value":
			c.Value = s
		case "id":
			c.ID = s
		default:
			return nil, ErrInvalidCursor
		}
	}

	return &c, nil
}
