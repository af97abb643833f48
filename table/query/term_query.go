package query

import "github.com/hatlonely/tablex/table/value"

// TermQuery 精确匹配查询，数字之间按数值比较
type TermQuery struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

func (q *TermQuery) Type() QueryType {
	return QueryTypeTerm
}

func (q *TermQuery) Match(record Record) (bool, error) {
	v, ok, err := record.Field(q.Field)
	if err != nil || !ok {
		return false, err
	}
	return value.Equal(v, q.Value), nil
}
