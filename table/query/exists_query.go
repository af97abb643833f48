package query

import "github.com/hatlonely/tablex/table/value"

// ExistsQuery 字段存在且不为空
type ExistsQuery struct {
	Field string `json:"field"`
}

func (q *ExistsQuery) Type() QueryType {
	return QueryTypeExists
}

func (q *ExistsQuery) Match(record Record) (bool, error) {
	v, ok, err := record.Field(q.Field)
	if err != nil || !ok {
		return false, err
	}
	return !value.IsNil(v), nil
}
