package table

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hatlonely/tablex/cfg"
	"github.com/hatlonely/tablex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions(t *testing.T) {
	options := NewOptions()
	assert.Equal(t, "table", options.Name)
	assert.Equal(t, 10, options.PageSize)
	assert.Equal(t, []int{10, 20, 50, 100}, options.PageSizeOptions)
	assert.Equal(t, "none", options.SelectionMode)
	assert.True(t, options.EnableLogging)
	assert.False(t, options.EnableMetrics)
	assert.Nil(t, options.Logger)
}

func TestPrepareOptions(t *testing.T) {
	options := &Options{PageSize: 5}
	prepared, err := prepareOptions(options)
	require.NoError(t, err)
	assert.Equal(t, 5, prepared.PageSize)
	assert.Equal(t, "table", prepared.Name)
	assert.False(t, prepared.EnableLogging)
	// 调用方的 options 不变
	assert.Empty(t, options.Name)
	assert.Nil(t, options.PageSizeOptions)

	for _, invalid := range []*Options{
		{PageSize: -1},
		{SelectionMode: "all"},
		{PageSizeOptions: []int{10, 0}},
	} {
		_, err := prepareOptions(invalid)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	}
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		file    string
		content string
	}{
		{"users.yaml", `
name: users
pageSize: 25
pageSizeOptions: [25, 50]
selectionMode: multiple
enableMetrics: true
logger:
  level: debug
  format: json
  output:
    type: console
    console:
      target: stderr
`},
		{"users.toml", `
name = "users"
pageSize = 25
pageSizeOptions = [25, 50]
selectionMode = "multiple"
enableMetrics = true

[logger]
level = "debug"
format = "json"

[logger.output]
type = "console"

[logger.output.console]
target = "stderr"
`},
		{"users.ini", `
name = users
pageSize = 25
pageSizeOptions = 25,50
selectionMode = multiple
enableMetrics = true

[logger]
level = debug
format = json

[logger.output]
type = console

[logger.output.console]
target = stderr
`},
		{"users.json", `{
  "name": "users",
  "pageSize": 25,
  "pageSizeOptions": [25, 50],
  "selectionMode": "multiple",
  "enableMetrics": true,
  "logger": {"level": "debug", "format": "json", "output": {"type": "console", "console": {"target": "stderr"}}}
}`},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			options, err := LoadOptions(path)
			require.NoError(t, err)
			assert.Equal(t, "users", options.Name)
			assert.Equal(t, 25, options.PageSize)
			assert.Equal(t, []int{25, 50}, options.PageSizeOptions)
			assert.Equal(t, "multiple", options.SelectionMode)
			assert.True(t, options.EnableMetrics)
			assert.True(t, options.EnableLogging)
			require.NotNil(t, options.Logger)
			assert.Equal(t, "debug", options.Logger.Level)
			assert.Equal(t, "json", options.Logger.Format)
			require.NotNil(t, options.Logger.Output.Console)
			assert.Equal(t, "stderr", options.Logger.Output.Console.Target)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("pageSize: 0\n"), 0644))
		_, err := LoadOptions(path)
		assert.True(t, errors.Is(err, ErrInvalidArgument))

		_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})
}

func TestOptionsHotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tables:\n  users:\n    pageSize: 3\n    selectionMode: multiple\n"), 0644))

	config, err := cfg.NewConfigWithOptions(&cfg.Options{FilePath: path})
	require.NoError(t, err)
	defer config.Close()

	// 变更回调在监听协程上执行，转发到调用方的 goroutine 再应用
	reloaded := make(chan *Options, 8)
	options, err := cfg.Bind(config, "tables.users", func(next *Options) {
		select {
		case reloaded <- next:
		default:
		}
	})
	require.NoError(t, err)
	require.NoError(t, config.Watch())

	c, err := NewContextWithOptions(options, userColumns(), WithRows(newUsers(10)), WithLogger[*user](log.Discard()))
	require.NoError(t, err)
	assert.Equal(t, 4, c.State().Pagination().TotalPages())
	assert.Equal(t, SelectionMultiple, c.State().Selection().Mode())

	require.NoError(t, os.WriteFile(path, []byte("tables:\n  users:\n    pageSize: 5\n    selectionMode: single\n"), 0644))

	deadline := time.After(5 * time.Second)
	for c.State().Pagination().PageSize() != 5 {
		select {
		case next := <-reloaded:
			require.NoError(t, c.ApplyOptions(next))
		case <-deadline:
			t.Fatal("options not reloaded")
		}
	}
	assert.Equal(t, 2, c.State().Pagination().TotalPages())
	assert.Equal(t, SelectionSingle, c.State().Selection().Mode())
}
