package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winspell.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
locale: en-GB
dict: words.json
server:
  addr: ":9090"
  timeout: 3s
log:
  level: debug
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "en-GB", cfg.Locale)
	assert.Equal(t, "words.json", cfg.Dict)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winspell.toml")
	require.NoError(t, os.WriteFile(path, []byte("locale = \"en-GB\"\n"), 0o644))
	t.Setenv("WINSPELL_LOCALE", "en-AU")
	t.Setenv("WINSPELL_SERVER_ADDR", "127.0.0.1:1")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "en-AU", cfg.Locale)
	assert.Equal(t, "127.0.0.1:1", cfg.Server.Addr)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("WINSPELL_LOCALE", "en-AU")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("locale", "", "")
	fs.String("hunspell-dict-dir", "", "")
	fs.String("format", "", "")
	fs.Bool("unrelated", false, "")
	require.NoError(t, fs.Parse([]string{"--locale", "fr-FR", "--hunspell-dict-dir", "/dicts"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "fr-FR", cfg.Locale)
	assert.Equal(t, "/dicts", cfg.Hunspell.DictDir)
	// unset flags keep the lower layers
	assert.Equal(t, "json", cfg.Format)
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "json"
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	logger, err := cfg.Logger(&buf, "test")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	cfg.Log.Format = "xml"
	_, err = cfg.Logger(&buf, "test")
	assert.Error(t, err)

	cfg.Log.Format = "text"
	cfg.Log.Level = "loud"
	_, err = cfg.Logger(&buf, "test")
	assert.Error(t, err)
}

func TestCheckerOptions(t *testing.T) {
	cfg := Default()
	logger, err := cfg.Logger(&bytes.Buffer{}, "")
	require.NoError(t, err)
	assert.Len(t, cfg.CheckerOptions(logger), 1)

	cfg.Hunspell.DictDir = "/dicts"
	assert.Len(t, cfg.CheckerOptions(logger), 2)
}
