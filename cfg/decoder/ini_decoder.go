package decoder

import (
	"strconv"
	"strings"

	"github.com/hatlonely/tablex/cfg/storage"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// IniDecoder 默认 section 的键放在顶层，section 名中的点号表示嵌套，例如 [logger.output]
// 值会尝试解析为 bool/int/float，不含空格的逗号分隔值解析为数组，重复键解析为数组
type IniDecoder struct {
	AllowShadows bool
}

func NewIniDecoder() *IniDecoder {
	return &IniDecoder{AllowShadows: true}
}

func (i *IniDecoder) Decode(data []byte) (storage.Storage, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:         true,
		AllowShadows:             i.AllowShadows,
		SpaceBeforeInlineComment: true,
	}, data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode ini")
	}

	result := map[string]any{}
	for _, section := range file.Sections() {
		target := result
		if section.Name() != ini.DefaultSection {
			for _, part := range strings.Split(section.Name(), ".") {
				sub, ok := target[part].(map[string]any)
				if !ok {
					sub = map[string]any{}
					target[part] = sub
				}
				target = sub
			}
		}
		for _, key := range section.Keys() {
			target[key.Name()] = i.parseValue(key)
		}
	}

	return storage.NewMapStorage(result), nil
}

func (i *IniDecoder) parseValue(key *ini.Key) any {
	if i.AllowShadows {
		if values := key.ValueWithShadows(); len(values) > 1 {
			result := make([]any, len(values))
			for idx, value := range values {
				result[idx] = parseString(value)
			}
			return result
		}
	}
	return parseString(key.String())
}

func parseString(value string) any {
	if value == "" {
		return ""
	}
	if strings.EqualFold(value, "true") {
		return true
	}
	if strings.EqualFold(value, "false") {
		return false
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if parts := strings.Split(value, ","); len(parts) > 1 {
		values := make([]any, len(parts))
		for idx, part := range parts {
			if strings.TrimSpace(part) != part {
				return value
			}
			values[idx] = parseString(part)
		}
		return values
	}
	return value
}
