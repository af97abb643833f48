package storage

// Storage 解码后的配置数据
type Storage interface {
	// Sub 获取子配置，key 用点号分隔层级，[i] 表示数组下标
	// 例如 "tables[0].logger.level"
	Sub(key string) Storage

	// ConvertTo 将配置数据写入结构体、map、slice 或标量
	// 结构体字段按 cfg tag 匹配，没有 tag 时按字段名匹配，均不区分大小写
	ConvertTo(object any) error
}
