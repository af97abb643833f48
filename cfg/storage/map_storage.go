package storage

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// MapStorage 基于 map[string]any / []any 树的配置存储，各解码器的输出都是这种结构
type MapStorage struct {
	data any
}

func NewMapStorage(data any) *MapStorage {
	return &MapStorage{data: data}
}

func (ms *MapStorage) Data() any {
	return ms.data
}

func (ms *MapStorage) Sub(key string) Storage {
	if key == "" {
		return ms
	}
	current := ms.data
	for _, k := range parseKey(key) {
		current = child(current, k)
		if current == nil {
			break
		}
	}
	return NewMapStorage(current)
}

// ConvertTo 数据为 nil 时不修改 object，保留其中已有的默认值
func (ms *MapStorage) ConvertTo(object any) error {
	rv := reflect.ValueOf(object)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("object must be a non-nil pointer")
	}
	return convertValue(ms.data, rv.Elem())
}

// parseKey "a.b[0].c" => ["a", "b", "0", "c"]
func parseKey(key string) []string {
	var keys []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			keys = append(keys, current.String())
			current.Reset()
		}
	}
	for _, ch := range key {
		switch ch {
		case '.', '[', ']':
			flush()
		default:
			current.WriteRune(ch)
		}
	}
	flush()
	return keys
}

func child(data any, key string) any {
	switch v := data.(type) {
	case map[string]any:
		if value, ok := v[key]; ok {
			return value
		}
		for k, value := range v {
			if strings.EqualFold(k, key) {
				return value
			}
		}
	case []any:
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 || index >= len(v) {
			return nil
		}
		return v[index]
	}
	return nil
}

func convertValue(src any, dst reflect.Value) error {
	if src == nil {
		return nil
	}

	if dst.Kind() == reflect.Ptr {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return convertValue(src, dst.Elem())
	}

	if dst.Kind() == reflect.Interface && dst.NumMethod() == 0 {
		dst.Set(reflect.ValueOf(src))
		return nil
	}

	if s, ok := src.(string); ok && dst.Kind() != reflect.Map && !(dst.Kind() == reflect.Struct && dst.Type() != timeType) {
		return SetString(dst, s)
	}

	sv := reflect.ValueOf(src)
	switch {
	case dst.Type() == durationType:
		return convertToDuration(sv, dst)
	case dst.Type() == timeType:
		return convertToTime(sv, dst)
	}

	switch dst.Kind() {
	case reflect.Struct:
		return convertToStruct(src, dst)
	case reflect.Map:
		return convertToMap(sv, dst)
	case reflect.Slice:
		return convertToSlice(sv, dst)
	case reflect.Bool:
		if sv.Kind() != reflect.Bool {
			return errors.Errorf("cannot convert %T to bool", src)
		}
		dst.SetBool(sv.Bool())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !isNumber(sv.Kind()) {
			return errors.Errorf("cannot convert %T to %v", src, dst.Type())
		}
		if isFloat(sv.Kind()) && sv.Float() != float64(int64(sv.Float())) {
			return errors.Errorf("cannot convert %v to %v without truncation", src, dst.Type())
		}
		dst.Set(sv.Convert(dst.Type()))
		return nil
	case reflect.Float32, reflect.Float64:
		if !isNumber(sv.Kind()) {
			return errors.Errorf("cannot convert %T to %v", src, dst.Type())
		}
		dst.Set(sv.Convert(dst.Type()))
		return nil
	}

	if sv.Type().ConvertibleTo(dst.Type()) {
		dst.Set(sv.Convert(dst.Type()))
		return nil
	}
	return errors.Errorf("cannot convert %T to %v", src, dst.Type())
}

func isNumber(kind reflect.Kind) bool {
	return (kind >= reflect.Int && kind <= reflect.Uint64) || isFloat(kind)
}

func isFloat(kind reflect.Kind) bool {
	return kind == reflect.Float32 || kind == reflect.Float64
}

// convertToDuration 数字按纳秒处理
func convertToDuration(sv, dst reflect.Value) error {
	if !isNumber(sv.Kind()) {
		return errors.Errorf("cannot convert %v to duration", sv.Type())
	}
	dst.Set(sv.Convert(durationType))
	return nil
}

// convertToTime 数字按 unix 秒处理，yaml/toml 已解析好的 time.Time 直接使用
func convertToTime(sv, dst reflect.Value) error {
	if sv.Type() == timeType {
		dst.Set(sv)
		return nil
	}
	if !isNumber(sv.Kind()) {
		return errors.Errorf("cannot convert %v to time", sv.Type())
	}
	f := sv.Convert(reflect.TypeOf(float64(0))).Float()
	sec := int64(f)
	dst.Set(reflect.ValueOf(time.Unix(sec, int64((f-float64(sec))*1e9))))
	return nil
}

func convertToMap(sv, dst reflect.Value) error {
	if sv.Kind() != reflect.Map {
		return errors.Errorf("cannot convert %v to map", sv.Type())
	}
	if dst.IsNil() {
		dst.Set(reflect.MakeMap(dst.Type()))
	}
	iter := sv.MapRange()
	for iter.Next() {
		key := reflect.New(dst.Type().Key()).Elem()
		if err := convertValue(fmt.Sprint(iter.Key().Interface()), key); err != nil {
			return errors.WithMessagef(err, "key %v", iter.Key().Interface())
		}
		value := reflect.New(dst.Type().Elem()).Elem()
		if err := convertValue(iter.Value().Interface(), value); err != nil {
			return errors.WithMessagef(err, "key %v", iter.Key().Interface())
		}
		dst.SetMapIndex(key, value)
	}
	return nil
}

// convertToSlice 整体替换目标切片，不与默认值合并
func convertToSlice(sv, dst reflect.Value) error {
	if sv.Kind() != reflect.Slice && sv.Kind() != reflect.Array {
		return errors.Errorf("cannot convert %v to slice", sv.Type())
	}
	slice := reflect.MakeSlice(dst.Type(), sv.Len(), sv.Len())
	for i := 0; i < sv.Len(); i++ {
		if err := convertValue(sv.Index(i).Interface(), slice.Index(i)); err != nil {
			return errors.WithMessagef(err, "[%d]", i)
		}
	}
	dst.Set(slice)
	return nil
}

func convertToStruct(src any, dst reflect.Value) error {
	m, ok := src.(map[string]any)
	if !ok {
		return errors.Errorf("cannot convert %T to %v", src, dst.Type())
	}
	rt := dst.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldName(field)
		if name == "-" {
			continue
		}
		value := child(m, name)
		if value == nil {
			continue
		}
		if err := convertValue(value, dst.Field(i)); err != nil {
			return errors.WithMessagef(err, "%s", name)
		}
	}
	return nil
}

func fieldName(field reflect.StructField) string {
	if tag := field.Tag.Get("cfg"); tag != "" {
		return strings.Split(tag, ",")[0]
	}
	return field.Name
}
