package aggregation

import (
	"github.com/hatlonely/tablex/table/query"
	"github.com/pkg/errors"
)

// AggregationType 聚合类型
type AggregationType string

const (
	AggTypeSum   AggregationType = "sum"
	AggTypeAvg   AggregationType = "avg"
	AggTypeMax   AggregationType = "max"
	AggTypeMin   AggregationType = "min"
	AggTypeCount AggregationType = "count"
	AggTypeTerms AggregationType = "terms"
)

var ErrInvalidAggregation = errors.New("invalid aggregation")

// Aggregation 在内存中的记录集合上计算的聚合
type Aggregation interface {
	Type() AggregationType
	Name() string

	// Aggregate 计算聚合值，取值失败的记录被跳过
	Aggregate(records []query.Record) (any, error)
}

// Aggregate 依次计算 aggs，结果按聚合名存放
func Aggregate(records []query.Record, aggs ...Aggregation) (*Result, error) {
	result := NewResult()
	for _, agg := range aggs {
		if agg == nil {
			continue
		}
		if agg.Name() == "" {
			return nil, errors.Wrapf(ErrInvalidAggregation, "%s aggregation without name", agg.Type())
		}
		if _, dup := result.results[agg.Name()]; dup {
			return nil, errors.Wrapf(ErrInvalidAggregation, "duplicate aggregation name %s", agg.Name())
		}
		v, err := agg.Aggregate(records)
		if err != nil {
			return nil, errors.WithMessagef(err, "aggregation %s failed", agg.Name())
		}
		result.Set(agg.Name(), v)
	}
	return result, nil
}
