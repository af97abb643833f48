package query

import "strings"

// PrefixQuery 前缀查询，忽略大小写
type PrefixQuery struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (q *PrefixQuery) Type() QueryType {
	return QueryTypePrefix
}

func (q *PrefixQuery) Match(record Record) (bool, error) {
	text, ok, err := record.Text(q.Field)
	if err != nil || !ok {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(text), strings.ToLower(q.Value)), nil
}
