package aggregation

import (
	"slices"

	"github.com/hatlonely/tablex/table/query"
	"github.com/hatlonely/tablex/table/value"
	"github.com/pkg/errors"
)

// MetricAggregation 指标聚合基础结构
type MetricAggregation struct {
	AggName string
	Field   string
}

func (m *MetricAggregation) Name() string {
	return m.AggName
}

// numbers 收集 Field 上的数值，缺失、非数值和取值失败的记录被跳过
func (m *MetricAggregation) numbers(records []query.Record) ([]float64, error) {
	if m.Field == "" {
		return nil, errors.Wrapf(ErrInvalidAggregation, "aggregation %s requires a field", m.AggName)
	}
	nums := make([]float64, 0, len(records))
	for _, record := range records {
		v, ok, err := record.Field(m.Field)
		if err != nil || !ok {
			continue
		}
		if f, ok := value.ToFloat(v); ok {
			nums = append(nums, f)
		}
	}
	return nums, nil
}

// SumAggregation 求和
type SumAggregation struct {
	MetricAggregation
}

func (a *SumAggregation) Type() AggregationType {
	return AggTypeSum
}

func (a *SumAggregation) Aggregate(records []query.Record) (any, error) {
	nums, err := a.numbers(records)
	if err != nil {
		return nil, err
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return sum, nil
}

// AvgAggregation 平均值，没有数值时为 0
type AvgAggregation struct {
	MetricAggregation
}

func (a *AvgAggregation) Type() AggregationType {
	return AggTypeAvg
}

func (a *AvgAggregation) Aggregate(records []query.Record) (any, error) {
	nums, err := a.numbers(records)
	if err != nil || len(nums) == 0 {
		return 0.0, err
	}
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return sum / float64(len(nums)), nil
}

// MinAggregation 最小值，没有数值时结果为 nil
type MinAggregation struct {
	MetricAggregation
}

func (a *MinAggregation) Type() AggregationType {
	return AggTypeMin
}

func (a *MinAggregation) Aggregate(records []query.Record) (any, error) {
	nums, err := a.numbers(records)
	if err != nil || len(nums) == 0 {
		return nil, err
	}
	return slices.Min(nums), nil
}

// MaxAggregation 最大值，没有数值时结果为 nil
type MaxAggregation struct {
	MetricAggregation
}

func (a *MaxAggregation) Type() AggregationType {
	return AggTypeMax
}

func (a *MaxAggregation) Aggregate(records []query.Record) (any, error) {
	nums, err := a.numbers(records)
	if err != nil || len(nums) == 0 {
		return nil, err
	}
	return slices.Max(nums), nil
}
