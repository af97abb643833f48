// Package value 提供单元格值的自然排序与类型转换
// 列访问器返回的值在类型擦除之后以 any 流转，这里统一定义它们之间的比较规则
package value

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Kind 值的分类，决定比较方式
type Kind int

const (
	KindNil Kind = iota
	KindInt
	KindUint
	KindFloat
	KindString
	KindBool
	KindTime
	KindOther
)

var timeType = reflect.TypeOf(time.Time{})

// KindOf 返回值的分类，指针会被解引用
func KindOf(v any) Kind {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return KindNil
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	case reflect.Struct:
		if rv.Type() == timeType {
			return KindTime
		}
	}
	return KindOther
}

// IsNil 判断值是否为空，包括 nil 接口和 nil 指针、map、slice、func、chan
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// IsNumeric 判断值是否为数字
func IsNumeric(v any) bool {
	switch KindOf(v) {
	case KindInt, KindUint, KindFloat:
		return true
	}
	return false
}

// Compare 按自然顺序比较两个值，返回 -1、0、1
//
//	nil 最小
//	数字之间按数值比较（int/uint/float 可混合）
//	字符串按字典序，布尔值 false < true，时间按先后
//	类型不同时按分类排序：数字 < 字符串 < 布尔 < 时间 < 其他，其他类型之间按格式化文本比较
func Compare(a, b any) int {
	ka, kb := KindOf(a), KindOf(b)
	if ka == KindNil || kb == KindNil {
		switch {
		case ka == kb:
			return 0
		case ka == KindNil:
			return -1
		default:
			return 1
		}
	}

	ra := indirect(reflect.ValueOf(a))
	rb := indirect(reflect.ValueOf(b))

	switch {
	case ka == KindInt && kb == KindInt:
		return cmp.Compare(ra.Int(), rb.Int())
	case ka == KindUint && kb == KindUint:
		return cmp.Compare(ra.Uint(), rb.Uint())
	case isNumberKind(ka) && isNumberKind(kb):
		fa, _ := ToFloat(a)
		fb, _ := ToFloat(b)
		return cmp.Compare(fa, fb)
	case ka == KindString && kb == KindString:
		return strings.Compare(ra.String(), rb.String())
	case ka == KindBool && kb == KindBool:
		return compareBool(ra.Bool(), rb.Bool())
	case ka == KindTime && kb == KindTime:
		return ra.Interface().(time.Time).Compare(rb.Interface().(time.Time))
	}

	if r := cmp.Compare(rank(ka), rank(kb)); r != 0 {
		return r
	}
	return strings.Compare(ToString(a), ToString(b))
}

// rank 不同分类之间的顺序，数字类共用一个位置
func rank(k Kind) int {
	if isNumberKind(k) {
		return int(KindInt)
	}
	return int(k)
}

// Equal 判断两个值是否相等，类型不同时（数字之间除外）比较格式化文本，"10" 与 10 相等
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != KindNil && kb != KindNil && rank(ka) != rank(kb) {
		return ToString(a) == ToString(b)
	}
	return Compare(a, b) == 0
}

// ToFloat 将数字类值转换为 float64，非数字返回 false
func ToFloat(v any) (float64, bool) {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// ToString 返回值的展示文本，nil 为空字符串
func ToString(v any) string {
	if IsNil(v) {
		return ""
	}
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return ""
	}

	switch t := rv.Interface().(type) {
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprintf("%v", rv.Interface())
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func isNumberKind(k Kind) bool {
	return k == KindInt || k == KindUint || k == KindFloat
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}
