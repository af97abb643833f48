package serializer

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

type MsgPackSerializer[T any] struct{}

func NewMsgPackSerializer[T any]() *MsgPackSerializer[T] {
	return &MsgPackSerializer[T]{}
}

func (s *MsgPackSerializer[T]) Format() string      { return FormatMsgPack }
func (s *MsgPackSerializer[T]) ContentType() string { return "application/msgpack" }

func (s *MsgPackSerializer[T]) Serialize(from T) ([]byte, error) {
	data, err := msgpack.Marshal(from)
	if err != nil {
		return nil, errors.Wrap(err, "msgpack.Marshal failed")
	}
	return data, nil
}

func (s *MsgPackSerializer[T]) Deserialize(to []byte) (T, error) {
	var result T
	if err := msgpack.Unmarshal(to, &result); err != nil {
		return result, errors.Wrap(err, "msgpack.Unmarshal failed")
	}
	return result, nil
}
