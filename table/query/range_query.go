package query

import "github.com/hatlonely/tablex/table/value"

// RangeQuery 范围查询，空值不在任何范围内
type RangeQuery struct {
	Field string      `json:"field"`
	Gt    interface{} `json:"gt,omitempty"`
	Gte   interface{} `json:"gte,omitempty"`
	Lt    interface{} `json:"lt,omitempty"`
	Lte   interface{} `json:"lte,omitempty"`
}

func (q *RangeQuery) Type() QueryType {
	return QueryTypeRange
}

func (q *RangeQuery) Match(record Record) (bool, error) {
	v, ok, err := record.Field(q.Field)
	if err != nil || !ok || value.IsNil(v) {
		return false, err
	}

	if q.Gt != nil && value.Compare(v, q.Gt) <= 0 {
		return false, nil
	}
	if q.Gte != nil && value.Compare(v, q.Gte) < 0 {
		return false, nil
	}
	if q.Lt != nil && value.Compare(v, q.Lt) >= 0 {
		return false, nil
	}
	if q.Lte != nil && value.Compare(v, q.Lte) > 0 {
		return false, nil
	}
	return true, nil
}
