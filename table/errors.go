package table

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument 调用方违反契约，例如空列 id 或 nil 行
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAccessor 列访问器在取值时 panic 或返回错误
	ErrAccessor = errors.New("accessor failed")
	// ErrDuplicateColumn 同一张表中出现重复的列 id
	ErrDuplicateColumn = errors.New("duplicate column")
	// ErrColumnNotFound 列 id 不在当前列集合中
	ErrColumnNotFound = errors.New("column not found")
)
