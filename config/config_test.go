package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notegate/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
s3:
  endpoint: https://gateway.storjshare.io
  access_key: ak
  secret_key: sk
  bucket: notes
`

func TestLoad_MinimalConfigUsesDefaults(t *testing.T) {
	cfg, err := config.Load([]string{writeConfig(t, minimalConfig)}, nil)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, 15, cfg.S3.Timeout)
	assert.Equal(t, "", cfg.Auth.Token)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.CORS.Enabled)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
s3:
  endpoint: http://localhost:9000
  region: eu-west-1
  access_key: minioadmin
  secret_key: minioadmin
  bucket: scratch
  timeout: 30
auth:
  token: hunter2
log:
  level: debug
`)

	cfg, err := config.Load([]string{path}, nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)
	assert.Equal(t, "scratch", cfg.S3.Bucket)
	assert.Equal(t, 30, cfg.S3.Timeout)
	assert.Equal(t, "hunter2", cfg.Auth.Token)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFileMerge(t *testing.T) {
	base := writeConfig(t, minimalConfig)
	override := writeConfig(t, `
server:
  port: 9000
auth:
  token: overridden
`)

	cfg, err := config.Load([]string{base, override}, nil)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "overridden", cfg.Auth.Token)
	// Base values survive the merge.
	assert.Equal(t, "notes", cfg.S3.Bucket)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("NOTEGATE_AUTH_TOKEN", "from-env")
	t.Setenv("NOTEGATE_S3_BUCKET", "env-bucket")

	cfg, err := config.Load([]string{writeConfig(t, minimalConfig)}, nil)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.Token)
	assert.Equal(t, "env-bucket", cfg.S3.Bucket)
}

func TestLoad_FlagOverridesEverything(t *testing.T) {
	t.Setenv("NOTEGATE_SERVER_PORT", "7000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	require.NoError(t, flags.Parse([]string{"--port=9999"}))

	cfg, err := config.Load([]string{writeConfig(t, minimalConfig)}, flags)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestLoad_UnsetFlagDoesNotOverride(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 1234, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load([]string{writeConfig(t, minimalConfig)}, flags)
	require.NoError(t, err)

	// Flag default must not clobber the config default.
	assert.Equal(t, 5000, cfg.Server.Port)
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{name: "missing s3 section", content: `server: {port: 8080}`},
		{
			name: "bad endpoint",
			content: `
s3:
  endpoint: not-a-url
  access_key: ak
  secret_key: sk
  bucket: notes
`,
		},
		{
			name: "bad port",
			content: minimalConfig + `
server:
  port: 99999
`,
		},
		{
			name: "bad log level",
			content: minimalConfig + `
log:
  level: verbose
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load([]string{writeConfig(t, tc.content)}, nil)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "validate config")
		})
	}
}
