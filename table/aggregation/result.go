package aggregation

// Result 聚合结果，按聚合名存放
type Result struct {
	results map[string]any
}

func NewResult() *Result {
	return &Result{
		results: make(map[string]any),
	}
}

func (r *Result) Set(aggName string, value any) {
	r.results[aggName] = value
}

func (r *Result) Get(aggName string) any {
	return r.results[aggName]
}

// Has 判断聚合是否有值，Min/Max 在没有数值时没有值
func (r *Result) Has(aggName string) bool {
	v, ok := r.results[aggName]
	return ok && v != nil
}

func (r *Result) GetBuckets(aggName string) []*Bucket {
	if buckets, ok := r.results[aggName].([]*Bucket); ok {
		return buckets
	}
	return nil
}

// GetValue 获取指标聚合的数值结果，不存在时返回 0
func (r *Result) GetValue(aggName string) float64 {
	switch v := r.results[aggName].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0.0
}

func (r *Result) GetCount(aggName string) int64 {
	switch v := r.results[aggName].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// Bucket 分桶结果
type Bucket struct {
	key             any
	docCount        int64
	subAggregations *Result
}

func NewBucket(key any, docCount int64) *Bucket {
	return &Bucket{
		key:             key,
		docCount:        docCount,
		subAggregations: NewResult(),
	}
}

func (b *Bucket) Key() any {
	return b.key
}

func (b *Bucket) DocCount() int64 {
	return b.docCount
}

func (b *Bucket) SubAggregations() *Result {
	return b.subAggregations
}
