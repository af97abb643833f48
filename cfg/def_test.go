package cfg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type gridConfig struct {
	Name      string        `def:"users"`
	PageSize  int           `def:"25"`
	Ratio     float64       `def:"0.75"`
	Sortable  bool          `def:"true"`
	Columns   []string      `def:"id,name,email"`
	Timeout   time.Duration `def:"30s"`
	CreatedAt time.Time     `def:"2023-01-01T00:00:00Z"`
	Caption   *string       `def:"all users"`

	Pager pagerConfig `def:""`

	Export *exportConfig `def:""`
}

type pagerConfig struct {
	Style    string `def:"numbers"`
	Siblings int    `def:"7"`
	Layout   string `def:"compact"`
	Label    string `def:""`
}

type exportConfig struct {
	File fileConfig `def:""`
}

type fileConfig struct {
	Path       string `def:"export.csv"`
	BufferSize int    `def:"1024"`
}

func TestSetDefaults_BasicTypes(t *testing.T) {
	config := &gridConfig{}

	err := SetDefaults(config)
	assert.NoError(t, err)

	// 验证基本类型默认值
	assert.Equal(t, "users", config.Name)
	assert.Equal(t, 25, config.PageSize)
	assert.Equal(t, 0.75, config.Ratio)
	assert.Equal(t, true, config.Sortable)
	assert.Equal(t, []string{"id", "name", "email"}, config.Columns)

	// 验证时间类型默认值
	assert.Equal(t, 30*time.Second, config.Timeout)
	expectedTime, _ := time.Parse(time.RFC3339, "2023-01-01T00:00:00Z")
	assert.Equal(t, expectedTime, config.CreatedAt)

	// 验证指针类型默认值
	assert.NotNil(t, config.Caption)
	assert.Equal(t, "all users", *config.Caption)
}

func TestSetDefaults_NestedStruct(t *testing.T) {
	config := &gridConfig{}

	err := SetDefaults(config)
	assert.NoError(t, err)

	// 验证嵌套结构体默认值
	assert.Equal(t, "numbers", config.Pager.Style)
	assert.Equal(t, 7, config.Pager.Siblings)
	assert.Equal(t, "compact", config.Pager.Layout)
	assert.Equal(t, "", config.Pager.Label)
}

func TestSetDefaults_PointerNestedStruct(t *testing.T) {
	config := &gridConfig{}

	err := SetDefaults(config)
	assert.NoError(t, err)

	// nil 的结构体指针保持 nil
	assert.Nil(t, config.Export)

	config = &gridConfig{Export: &exportConfig{}}
	err = SetDefaults(config)
	assert.NoError(t, err)
	assert.Equal(t, "export.csv", config.Export.File.Path)
	assert.Equal(t, 1024, config.Export.File.BufferSize)
}

func TestSetDefaults_NonZeroValues(t *testing.T) {
	config := &gridConfig{
		Name:     "orders",
		PageSize: 30,
	}

	err := SetDefaults(config)
	assert.NoError(t, err)

	// 已有值不应该被覆盖
	assert.Equal(t, "orders", config.Name)
	assert.Equal(t, 30, config.PageSize)

	// 零值字段应该被设置默认值
	assert.Equal(t, 0.75, config.Ratio)
	assert.Equal(t, true, config.Sortable)
}

func TestSetDefaults_InvalidInput(t *testing.T) {
	// 测试 nil 指针
	err := SetDefaults(nil)
	assert.Error(t, err)

	// 测试非指针类型
	config := gridConfig{}
	err = SetDefaults(config)
	assert.Error(t, err)

	// 测试 nil 对象
	var nilConfig *gridConfig
	err = SetDefaults(nilConfig)
	assert.Error(t, err)
}

func TestSetDefaults_TimeFormats(t *testing.T) {
	type TimeConfig struct {
		Time1 time.Time `def:"2023-01-01"`
		Time2 time.Time `def:"2023-01-01 15:04:05"`
		Time3 time.Time `def:"1672531200"`   // Unix timestamp
		Time4 time.Time `def:"1672531200.5"` // Float timestamp
	}

	config := &TimeConfig{}
	err := SetDefaults(config)
	assert.NoError(t, err)

	expectedTime1, _ := time.Parse("2006-01-02", "2023-01-01")
	assert.Equal(t, expectedTime1, config.Time1)

	expectedTime2, _ := time.Parse("2006-01-02 15:04:05", "2023-01-01 15:04:05")
	assert.Equal(t, expectedTime2, config.Time2)

	expectedTime3 := time.Unix(1672531200, 0)
	assert.Equal(t, expectedTime3, config.Time3)

	expectedTime4 := time.Unix(1672531200, 500000000)
	assert.Equal(t, expectedTime4, config.Time4)
}

func TestSetDefaults_DurationFormats(t *testing.T) {
	type DurationConfig struct {
		Duration1 time.Duration `def:"1h30m"`
		Duration2 time.Duration `def:"5000000000"` // 纳秒
	}

	config := &DurationConfig{}
	err := SetDefaults(config)
	assert.NoError(t, err)

	assert.Equal(t, time.Hour+30*time.Minute, config.Duration1)
	assert.Equal(t, 5*time.Second, config.Duration2)
}

func TestSetDefaults_SliceTypes(t *testing.T) {
	type SliceConfig struct {
		StringSlice []string  `def:"a,b,c"`
		IntSlice    []int     `def:"1,2,3"`
		FloatSlice  []float64 `def:"1.1,2.2,3.3"`
	}

	config := &SliceConfig{}
	err := SetDefaults(config)
	assert.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, config.StringSlice)
	assert.Equal(t, []int{1, 2, 3}, config.IntSlice)
	assert.Equal(t, []float64{1.1, 2.2, 3.3}, config.FloatSlice)
}
func TestSetDefaults_InvalidDefault(t *testing.T) {
	type BadConfig struct {
		Port int `def:"abc"`
	}

	err := SetDefaults(&BadConfig{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Port")
}

func TestSetDefaults_KeepExistingSlice(t *testing.T) {
	type SliceConfig struct {
		Sizes []int `def:"10,20"`
	}

	config := &SliceConfig{Sizes: []int{5}}
	assert.NoError(t, SetDefaults(config))
	assert.Equal(t, []int{5}, config.Sizes)
}
