package decoder

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hatlonely/tablex/cfg/storage"
	"github.com/pkg/errors"
)

var ErrUnsupportedFormat = errors.New("unsupported config format")

// Decoder 将配置文件内容解码为 Storage
type Decoder interface {
	Decode(data []byte) (storage.Storage, error)
}

// NewDecoder 按格式名创建解码器：json, yaml/yml, toml, ini
func NewDecoder(format string) (Decoder, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json", "json5":
		return NewJsonDecoder(), nil
	case "yaml", "yml":
		return NewYamlDecoder(), nil
	case "toml":
		return NewTomlDecoder(), nil
	case "ini":
		return NewIniDecoder(), nil
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "format %q", format)
}

// NewDecoderForFile 按文件扩展名选择解码器
func NewDecoderForFile(filename string) (Decoder, error) {
	return NewDecoder(filepath.Ext(filename))
}

// normalize 把各解析库的输出统一成 map[string]any / []any
func normalize(v any) any {
	switch value := v.(type) {
	case map[string]any:
		for k, item := range value {
			value[k] = normalize(item)
		}
		return value
	case map[any]any:
		m := make(map[string]any, len(value))
		for k, item := range value {
			m[toString(k)] = normalize(item)
		}
		return m
	case []any:
		for i, item := range value {
			value[i] = normalize(item)
		}
		return value
	case []map[string]any:
		s := make([]any, len(value))
		for i, item := range value {
			s[i] = normalize(item)
		}
		return s
	}
	return v
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
