package query

// BoolQuery 布尔查询
//
//	Must、Filter 全部满足
//	MustNot 全部不满足
//	Should 至少满足 MinShouldMatch 个（未设置时为 1）
type BoolQuery struct {
	Must           []Query `json:"must,omitempty"`
	Should         []Query `json:"should,omitempty"`
	MustNot        []Query `json:"must_not,omitempty"`
	Filter         []Query `json:"filter,omitempty"`
	MinShouldMatch *int    `json:"minimum_should_match,omitempty"`
}

func (q *BoolQuery) Type() QueryType {
	return QueryTypeBool
}

func (q *BoolQuery) Match(record Record) (bool, error) {
	for _, clauses := range [][]Query{q.Must, q.Filter} {
		for _, clause := range clauses {
			ok, err := clause.Match(record)
			if err != nil || !ok {
				return false, err
			}
		}
	}

	for _, clause := range q.MustNot {
		ok, err := clause.Match(record)
		if err != nil {
			return false, err
		}
		if ok {
			return false, nil
		}
	}

	if len(q.Should) == 0 {
		return true, nil
	}

	minShould := 1
	if q.MinShouldMatch != nil {
		minShould = *q.MinShouldMatch
	}
	if minShould <= 0 {
		return true, nil
	}

	matched := 0
	for _, clause := range q.Should {
		ok, err := clause.Match(record)
		if err != nil {
			return false, err
		}
		if ok {
			matched++
			if matched >= minShould {
				return true, nil
			}
		}
	}
	return false, nil
}
