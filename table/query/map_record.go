package query

import (
	"sort"

	"github.com/hatlonely/tablex/table/value"
)

// MapRecord 用 map 实现的 Record，字段按 value.ToString 格式化
type MapRecord map[string]any

func (r MapRecord) Fields() []string {
	fields := make([]string, 0, len(r))
	for k := range r {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

func (r MapRecord) Field(name string) (any, bool, error) {
	v, ok := r[name]
	return v, ok, nil
}

func (r MapRecord) Text(name string) (string, bool, error) {
	v, ok := r[name]
	if !ok {
		return "", false, nil
	}
	return value.ToString(v), true, nil
}
