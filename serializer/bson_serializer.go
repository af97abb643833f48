package serializer

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// BSONSerializer 只能编码文档类型（结构体、map）
type BSONSerializer[T any] struct{}

func NewBSONSerializer[T any]() *BSONSerializer[T] {
	return &BSONSerializer[T]{}
}

func (s *BSONSerializer[T]) Format() string      { return FormatBSON }
func (s *BSONSerializer[T]) ContentType() string { return "application/bson" }

func (s *BSONSerializer[T]) Serialize(from T) ([]byte, error) {
	data, err := bson.Marshal(from)
	if err != nil {
		return nil, errors.Wrap(err, "bson.Marshal failed")
	}
	return data, nil
}

func (s *BSONSerializer[T]) Deserialize(to []byte) (T, error) {
	var result T
	if err := bson.Unmarshal(to, &result); err != nil {
		return result, errors.Wrap(err, "bson.Unmarshal failed")
	}
	return result, nil
}
