package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stdnet "webdoc/std/net"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 800.0, cfg.Viewport.Width)
	assert.Equal(t, 600.0, cfg.Viewport.Height)
	assert.Equal(t, 13.0, cfg.Viewport.HStep)
	assert.Equal(t, 18.0, cfg.Viewport.VStep)
	assert.Equal(t, 100.0, cfg.Viewport.ScrollStep)
	assert.Equal(t, 10, cfg.Network.MaxRedirects)
	assert.Equal(t, stdnet.FirstDirectiveOnly, cfg.Session().CacheControl)
	assert.Equal(t, stdnet.PosixPaths, cfg.FilePathPolicy())
	assert.Equal(t, logrus.InfoLevel, cfg.Logger().GetLevel())

	lc := cfg.Layout()
	assert.Equal(t, 800.0, lc.Width)
	assert.Equal(t, 200.0, lc.InputWidth)

	tc := cfg.Tab()
	assert.Equal(t, lc, tc.Layout)
	assert.Equal(t, 600.0, tc.Height)
	assert.Equal(t, 100.0, tc.ScrollStep)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "webdoc.yaml")
	data := `
viewport:
  width: 1024
  scroll_step: 40
network:
  max_redirects: 3
  dial_timeout: 5s
  cache_control: all_directives
  file_paths: windows
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1024.0, cfg.Viewport.Width)
	assert.Equal(t, 600.0, cfg.Viewport.Height)
	assert.Equal(t, 40.0, cfg.Viewport.ScrollStep)

	sc := cfg.Session()
	assert.Equal(t, 3, sc.MaxRedirects)
	assert.Equal(t, 5*time.Second, sc.DialTimeout)
	assert.Equal(t, stdnet.AllDirectives, sc.CacheControl)
	assert.NotEmpty(t, sc.UserAgent)
	assert.Equal(t, stdnet.WindowsPaths, cfg.FilePathPolicy())
	assert.Equal(t, logrus.DebugLevel, cfg.Logger().GetLevel())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("viewport: [1, 2"))
	assert.Error(t, err)
}

func TestUnknownLogLevel(t *testing.T) {
	cfg, err := Parse([]byte("log:\n  level: chatty\n"))
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, cfg.Logger().GetLevel())
}
