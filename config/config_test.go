package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storpool/spschema/config"
)

const mainConf = `
# cluster wide
SP_CLUSTER_NAME=lab
SP_API_HTTP_HOST=10.1.0.1
SP_API_HTTP_PORT=81
SP_AUTH_TOKEN=1234
SP_LONG=a \
b

[node2]
SP_OURID=2
SP_API_HTTP_HOST=10.1.0.2
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestParse_Sections(t *testing.T) {
	sp, err := config.Parse(strings.NewReader(mainConf), "node2")
	require.NoError(t, err)
	assert.Equal(t, "10.1.0.2", sp["SP_API_HTTP_HOST"])
	assert.Equal(t, "2", sp["SP_OURID"])
	assert.Equal(t, "a b", sp["SP_LONG"])

	other, err := config.Parse(strings.NewReader(mainConf), "node1")
	require.NoError(t, err)
	assert.Equal(t, "10.1.0.1", other["SP_API_HTTP_HOST"])
	_, ok := other["SP_OURID"]
	assert.False(t, ok)
}

func TestParse_Malformed(t *testing.T) {
	_, err := config.Parse(strings.NewReader("JUSTAKEY\n"), "")
	var ce *config.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "parse", ce.Op)
	assert.Contains(t, err.Error(), "line 1")
}

func TestParseFiles_DropInsOverride(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "storpool.conf", mainConf)
	dropins := filepath.Join(dir, "storpool.conf.d")
	require.NoError(t, os.Mkdir(dropins, 0o755))
	writeFile(t, dropins, "10-port.conf", "SP_API_HTTP_PORT=82\n")
	writeFile(t, dropins, "20-port.conf", "SP_API_HTTP_PORT=83\n")
	writeFile(t, dropins, "ignored.txt", "SP_API_HTTP_PORT=99\n")

	sp, err := config.ParseFiles(main, dropins, "node1")
	require.NoError(t, err)
	assert.Equal(t, "83", sp["SP_API_HTTP_PORT"])

	_, err = config.ParseFiles(filepath.Join(dir, "missing.conf"), "", "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_FallsBackToFiles(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "storpool.conf", mainConf)
	sp, err := config.Load(context.Background(), config.Options{
		Confget:  filepath.Join(dir, "no-such-helper"),
		File:     main,
		Dir:      filepath.Join(dir, "none"),
		Hostname: "node2",
	})
	require.NoError(t, err)
	assert.Equal(t, "2", sp["SP_OURID"])
}

func TestConfget_RunsHelper(t *testing.T) {
	dir := t.TempDir()
	helper := writeFile(t, dir, "confget", "#!/bin/sh\necho SP_API_HTTP_HOST=1.2.3.4\necho \"SECTION=$2\"\n")
	require.NoError(t, os.Chmod(helper, 0o755))

	sp, err := config.Confget(context.Background(), helper, "node7")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4", sp["SP_API_HTTP_HOST"])
	assert.Equal(t, "node7", sp["SECTION"])

	failing := writeFile(t, dir, "failing", "#!/bin/sh\necho broken >&2\nexit 3\n")
	require.NoError(t, os.Chmod(failing, 0o755))
	_, err = config.Confget(context.Background(), failing, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestWithEnvOverrides(t *testing.T) {
	sp := config.StorPool{config.KeyHost: "a", config.KeyPort: "80", "OTHER": "x"}
	env := map[string]string{config.KeyHost: "b", config.KeyToken: "t", "OTHER": "y"}
	out := sp.WithEnvOverrides(func(k string) (string, bool) { v, ok := env[k]; return v, ok })

	assert.Equal(t, "b", out[config.KeyHost])
	assert.Equal(t, "80", out[config.KeyPort])
	assert.Equal(t, "t", out[config.KeyToken])
	assert.Equal(t, "x", out["OTHER"], "only API variables are overridden")
	assert.Equal(t, "a", sp[config.KeyHost], "receiver is not modified")
}

func TestFromStorPool(t *testing.T) {
	sp, err := config.Parse(strings.NewReader(mainConf), "")
	require.NoError(t, err)
	cfg, err := config.FromStorPool(sp, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "10.1.0.1", cfg.Host)
	assert.Equal(t, 81, cfg.Port)
	assert.Equal(t, "1234", cfg.Auth)
	assert.Equal(t, 5, cfg.TransientRetries)

	delete(sp, config.KeyToken)
	_, err = config.FromStorPool(sp, zerolog.Nop())
	assert.ErrorIs(t, err, config.ErrMissing)
	assert.Contains(t, err.Error(), config.KeyToken)

	sp[config.KeyToken] = "x"
	sp[config.KeyPort] = "http"
	_, err = config.FromStorPool(sp, zerolog.Nop())
	assert.Error(t, err)
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "profile.yaml", `
host: 10.0.0.5
port: 8080
auth: "42"
timeout: 30s
transient_retries: 0
multicluster: true
log_level: debug
metrics_namespace: lab
`)
	prof, err := config.LoadProfile(p)
	require.NoError(t, err)
	cfg := prof.ClientConfig(zerolog.Nop())
	assert.Equal(t, "10.0.0.5", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "42", cfg.Auth)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.TransientRetries)
	assert.True(t, cfg.MultiCluster)

	reg := prometheus.NewRegistry()
	m := prof.Metrics(reg)
	m.RequestsTotal.WithLabelValues("disksList", "GET", "ok").Inc()
	n, err := testutil.GatherAndCount(reg, "lab_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	empty := writeFile(t, dir, "empty.yaml", "host: h\n")
	prof, err = config.LoadProfile(empty)
	require.NoError(t, err)
	assert.Equal(t, 5, prof.ClientConfig(zerolog.Nop()).TransientRetries)

	bad := writeFile(t, dir, "bad.yaml", "log_level: loud\n")
	_, err = config.LoadProfile(bad)
	var ce *config.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "profile", ce.Op)
}
