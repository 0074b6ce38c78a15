package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/promanage/core/internal/infrastructure/config"
)

func TestNew_InvalidLevel(t *testing.T) {
	is := is.New(t)

	_, err := New(config.LoggerConfig{Level: "loud", Format: "json"})
	is.True(err != nil)
}

func TestNew_RotatingFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "app.log")

	log, err := New(config.LoggerConfig{
		Level:     "info",
		Format:    "json",
		Output:    "file",
		Filename:  path,
		MaxSizeMB: 1,
	})
	is.NoErr(err)

	log.WithComponent("test").LogUserAction("u1", "create_task", map[string]interface{}{"task_id": "t1"})
	log.Debugw("filtered out")
	_ = log.Close()

	data, err := os.ReadFile(path)
	is.NoErr(err)
	out := string(data)
	is.True(strings.Contains(out, `"action":"create_task"`))
	is.True(strings.Contains(out, `"component":"test"`))
	is.True(!strings.Contains(out, "filtered out"))
}
