package serializer

import (
	"encoding/json"

	"github.com/pkg/errors"
)

type JSONSerializer[T any] struct{}

func NewJSONSerializer[T any]() *JSONSerializer[T] {
	return &JSONSerializer[T]{}
}

func (s *JSONSerializer[T]) Format() string      { return FormatJSON }
func (s *JSONSerializer[T]) ContentType() string { return "application/json" }

func (s *JSONSerializer[T]) Serialize(from T) ([]byte, error) {
	data, err := json.Marshal(from)
	if err != nil {
		return nil, errors.Wrap(err, "json.Marshal failed")
	}
	return data, nil
}

func (s *JSONSerializer[T]) Deserialize(to []byte) (T, error) {
	var result T
	if err := json.Unmarshal(to, &result); err != nil {
		return result, errors.Wrap(err, "json.Unmarshal failed")
	}
	return result, nil
}
