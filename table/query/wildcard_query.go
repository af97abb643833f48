package query

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// WildcardQuery 通配符查询，整串匹配，忽略大小写
//
//   - 匹配任意数量字符
//     ? 匹配单个字符
type WildcardQuery struct {
	Field string `json:"field"`
	Value string `json:"value"`

	re      *regexp.Regexp
	pattern string
}

func (q *WildcardQuery) Type() QueryType {
	return QueryTypeWildcard
}

func (q *WildcardQuery) Match(record Record) (bool, error) {
	// Value 修改后重新编译
	if q.re == nil || q.pattern != q.Value {
		re, err := compileWildcard(q.Value)
		if err != nil {
			return false, err
		}
		q.re, q.pattern = re, q.Value
	}

	text, ok, err := record.Text(q.Field)
	if err != nil || !ok {
		return false, err
	}
	return q.re.MatchString(text), nil
}

func compileWildcard(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("(?is)^")
	for _, r := range pattern {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidQuery, "wildcard %q: %v", pattern, err)
	}
	return re, nil
}
