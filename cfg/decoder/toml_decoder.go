package decoder

import (
	"github.com/BurntSushi/toml"
	"github.com/hatlonely/tablex/cfg/storage"
	"github.com/pkg/errors"
)

type TomlDecoder struct{}

func NewTomlDecoder() *TomlDecoder {
	return &TomlDecoder{}
}

// Decode 数组表（[[tables]]）解析出来是 []map[string]any，这里统一成 []any
func (t *TomlDecoder) Decode(data []byte) (storage.Storage, error) {
	var parsed map[string]any
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode toml")
	}
	return storage.NewMapStorage(normalize(parsed)), nil
}
