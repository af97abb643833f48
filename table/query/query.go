// Package query 提供在内存中对行求值的过滤条件
package query

import "github.com/pkg/errors"

// QueryType 查询类型
type QueryType string

const (
	QueryTypeBool       QueryType = "bool"
	QueryTypeTerm       QueryType = "term"
	QueryTypeMatch      QueryType = "match"
	QueryTypeMultiMatch QueryType = "multi_match"
	QueryTypeRange      QueryType = "range"
	QueryTypeExists     QueryType = "exists"
	QueryTypeWildcard   QueryType = "wildcard"
	QueryTypePrefix     QueryType = "prefix"
	QueryTypeRegexp     QueryType = "regexp"
)

var ErrInvalidQuery = errors.New("invalid query")

// Record 查询时行的视图，字段名即列 id
type Record interface {
	// Fields 参与全文搜索的字段
	Fields() []string
	// Field 读取字段值，字段不存在时 ok 为 false
	Field(name string) (v any, ok bool, err error)
	// Text 读取字段的展示文本
	Text(name string) (text string, ok bool, err error)
}

// Query 查询节点接口
type Query interface {
	Type() QueryType
	// Match 判断记录是否满足条件，字段不存在视为不满足
	Match(record Record) (bool, error)
}
