package query

import (
	"strings"

	"github.com/hatlonely/tablex/table/value"
)

// MatchQuery 全文搜索查询，忽略大小写的子串匹配
type MatchQuery struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

func (q *MatchQuery) Type() QueryType {
	return QueryTypeMatch
}

func (q *MatchQuery) Match(record Record) (bool, error) {
	text, ok, err := record.Text(q.Field)
	if err != nil || !ok {
		return false, err
	}
	return containsFold(text, value.ToString(q.Value)), nil
}

// MultiMatchQuery 在多个字段上做全文搜索，任一字段匹配即可
// Fields 为空时使用 Record.Fields()
//
// 与其他查询不同，单个字段取值失败不会让整行不匹配，只跳过该字段；
// 没有字段匹配且有字段失败时返回第一个错误，流水线据此把该行视为不匹配
type MultiMatchQuery struct {
	Fields []string `json:"fields,omitempty"`
	Value  string   `json:"value"`
}

func (q *MultiMatchQuery) Type() QueryType {
	return QueryTypeMultiMatch
}

func (q *MultiMatchQuery) Match(record Record) (bool, error) {
	needle := strings.TrimSpace(q.Value)
	if needle == "" {
		return true, nil
	}

	fields := q.Fields
	if len(fields) == 0 {
		fields = record.Fields()
	}

	var firstErr error
	for _, field := range fields {
		text, ok, err := record.Text(field)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok && containsFold(text, needle) {
			return true, nil
		}
	}
	return false, firstErr
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
