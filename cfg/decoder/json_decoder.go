package decoder

import (
	"encoding/json"
	"strings"

	"github.com/hatlonely/tablex/cfg/storage"
	"github.com/pkg/errors"
)

// JsonDecoder 支持 // 和 /* */ 注释
type JsonDecoder struct {
	AllowComments bool
}

func NewJsonDecoder() *JsonDecoder {
	return &JsonDecoder{AllowComments: true}
}

func (j *JsonDecoder) Decode(data []byte) (storage.Storage, error) {
	if j.AllowComments {
		data = []byte(stripComments(string(data)))
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(err, "failed to decode json")
	}
	return storage.NewMapStorage(result), nil
}

// stripComments 去掉字符串字面量以外的注释
func stripComments(content string) string {
	var sb strings.Builder
	inString, escaped := false, false
	for i := 0; i < len(content); i++ {
		ch := content[i]
		if inString {
			sb.WriteByte(ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		if ch == '"' {
			inString = true
			sb.WriteByte(ch)
			continue
		}
		if ch == '/' && i+1 < len(content) {
			switch content[i+1] {
			case '/':
				for i < len(content) && content[i] != '\n' {
					i++
				}
				if i < len(content) {
					sb.WriteByte('\n')
				}
				continue
			case '*':
				end := strings.Index(content[i+2:], "*/")
				if end < 0 {
					return sb.String()
				}
				i += end + 3
				continue
			}
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}
