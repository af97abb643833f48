package cfg

import (
	"reflect"

	"github.com/hatlonely/tablex/cfg/storage"
	"github.com/pkg/errors"
)

// SetDefaults 按 def tag 为零值字段填充默认值
// 嵌套结构体递归处理；nil 的结构体指针保持 nil，表示该子配置未启用
func SetDefaults(object any) error {
	if object == nil {
		return errors.New("object cannot be nil")
	}

	rv := reflect.ValueOf(object)
	if rv.Kind() != reflect.Ptr {
		return errors.New("object must be a pointer")
	}
	if rv.IsNil() {
		return errors.New("object cannot be nil")
	}

	return setDefaults(rv.Elem())
}

func setDefaults(rv reflect.Value) error {
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		return setDefaults(rv.Elem())
	}
	if rv.Kind() != reflect.Struct || storage.IsTime(rv.Type()) {
		return nil
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		fieldValue := rv.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		if isStructLike(fieldValue.Type()) {
			if err := setDefaults(fieldValue); err != nil {
				return errors.WithMessagef(err, "field %s", field.Name)
			}
			continue
		}

		defTag, ok := field.Tag.Lookup("def")
		if !ok || defTag == "" || !fieldValue.IsZero() {
			continue
		}

		if err := storage.SetString(fieldValue, defTag); err != nil {
			return errors.WithMessagef(err, "invalid default for field %s", field.Name)
		}
	}

	return nil
}

// isStructLike 结构体或结构体指针，time.Time 按标量处理
func isStructLike(rt reflect.Type) bool {
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	return rt.Kind() == reflect.Struct && !storage.IsTime(rt)
}
