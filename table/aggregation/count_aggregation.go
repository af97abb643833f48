package aggregation

import (
	"github.com/hatlonely/tablex/table/query"
	"github.com/hatlonely/tablex/table/value"
)

// CountAggregation 计数，Field 为空时统计记录数，否则统计 Field 有非空值的记录数
type CountAggregation struct {
	MetricAggregation
	// Distinct 只统计不同的值
	Distinct bool
}

func (a *CountAggregation) Type() AggregationType {
	return AggTypeCount
}

func (a *CountAggregation) Aggregate(records []query.Record) (any, error) {
	if a.Field == "" {
		return int64(len(records)), nil
	}

	var count int64
	seen := map[string]struct{}{}
	for _, record := range records {
		v, ok, err := record.Field(a.Field)
		if err != nil || !ok || value.IsNil(v) {
			continue
		}
		if a.Distinct {
			key := termKey(v)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		count++
	}
	return count, nil
}
