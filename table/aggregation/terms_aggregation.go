package aggregation

import (
	"fmt"
	"slices"

	"github.com/hatlonely/tablex/table/query"
	"github.com/hatlonely/tablex/table/value"
	"github.com/pkg/errors"
)

// BucketAggregation 桶聚合基础结构
type BucketAggregation struct {
	AggName         string
	Field           string
	SubAggregations []Aggregation
}

func (b *BucketAggregation) Name() string {
	return b.AggName
}

// TermsAggregation 按 Field 的不同取值分桶，桶按记录数降序、键升序排列
type TermsAggregation struct {
	BucketAggregation
	// Size 最多返回的桶数，0 表示不限制
	Size int
	// MissingKey 缺失或取值失败的记录放入该键的桶，为 nil 时跳过这些记录
	MissingKey any
}

func (a *TermsAggregation) Type() AggregationType {
	return AggTypeTerms
}

func (a *TermsAggregation) Aggregate(records []query.Record) (any, error) {
	if a.Field == "" {
		return nil, errors.Wrapf(ErrInvalidAggregation, "aggregation %s requires a field", a.AggName)
	}

	type group struct {
		key     any
		records []query.Record
	}
	var groups []*group
	index := map[string]*group{}
	for _, record := range records {
		v, ok, err := record.Field(a.Field)
		if err != nil || !ok || value.IsNil(v) {
			if a.MissingKey == nil {
				continue
			}
			v = a.MissingKey
		}
		k := termKey(v)
		g, ok := index[k]
		if !ok {
			g = &group{key: v}
			index[k] = g
			groups = append(groups, g)
		}
		g.records = append(g.records, record)
	}

	slices.SortStableFunc(groups, func(x, y *group) int {
		if len(x.records) != len(y.records) {
			return len(y.records) - len(x.records)
		}
		return value.Compare(x.key, y.key)
	})
	if a.Size > 0 && len(groups) > a.Size {
		groups = groups[:a.Size]
	}

	buckets := make([]*Bucket, 0, len(groups))
	for _, g := range groups {
		bucket := NewBucket(g.key, int64(len(g.records)))
		if len(a.SubAggregations) > 0 {
			sub, err := Aggregate(g.records, a.SubAggregations...)
			if err != nil {
				return nil, err
			}
			bucket.subAggregations = sub
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

// termKey 分桶用的键，类型不同但展示相同的值（1 和 "1"）分在不同的桶
func termKey(v any) string {
	return fmt.Sprintf("%d:%s", value.KindOf(v), value.ToString(v))
}
