package query

import (
	"regexp"

	"github.com/pkg/errors"
)

// RegexpQuery 正则表达式查询，忽略大小写，非整串匹配
type RegexpQuery struct {
	Field string `json:"field"`
	Value string `json:"value"`

	re      *regexp.Regexp
	pattern string
}

func (q *RegexpQuery) Type() QueryType {
	return QueryTypeRegexp
}

func (q *RegexpQuery) Match(record Record) (bool, error) {
	if q.re == nil || q.pattern != q.Value {
		re, err := regexp.Compile("(?i)" + q.Value)
		if err != nil {
			return false, errors.Wrapf(ErrInvalidQuery, "regexp %q: %v", q.Value, err)
		}
		q.re, q.pattern = re, q.Value
	}

	text, ok, err := record.Text(q.Field)
	if err != nil || !ok {
		return false, err
	}
	return q.re.MatchString(text), nil
}
