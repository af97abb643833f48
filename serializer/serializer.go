// Package serializer 把表状态快照等值编码为字节，交给宿主桥接层传输
package serializer

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	FormatJSON    = "json"
	FormatMsgPack = "msgpack"
	FormatBSON    = "bson"
)

var ErrUnsupportedFormat = errors.New("unsupported serializer format")

type Serializer[F, T any] interface {
	Serialize(from F) (T, error)
	Deserialize(to T) (F, error)
}

// ByteSerializer 编码为字节的序列化器
type ByteSerializer[T any] interface {
	Serializer[T, []byte]
	// Format 编码格式名
	Format() string
	// ContentType 编码对应的 MIME 类型
	ContentType() string
}

// Options 序列化器配置
type Options struct {
	// 编码格式：json, msgpack, bson
	Format string `cfg:"format" def:"json" validate:"omitempty,oneof=json msgpack bson"`
}

// NewByteSerializerWithOptions 根据配置创建序列化器，options 为 nil 时使用 JSON
func NewByteSerializerWithOptions[T any](options *Options) (ByteSerializer[T], error) {
	if options == nil {
		return New[T](FormatJSON)
	}
	return New[T](options.Format)
}

// New 按格式名创建序列化器，空格式名为 JSON，也接受 mpack 和 msgpack 的别名
func New[T any](format string) (ByteSerializer[T], error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		return NewJSONSerializer[T](), nil
	case FormatMsgPack, "mpack":
		return NewMsgPackSerializer[T](), nil
	case FormatBSON:
		return NewBSONSerializer[T](), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "format %q", format)
}

// Formats 支持的格式
func Formats() []string {
	return []string{FormatJSON, FormatMsgPack, FormatBSON}
}
