package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storpool/spschema/internal/fakeapi"
)

type result struct {
	code           int
	stdout, stderr string
}

func (r result) errorBody(t *testing.T) map[string]any {
	t.Helper()
	var v struct {
		Error map[string]any `json:"error"`
	}
	require.NoError(t, gojson.Unmarshal([]byte(r.stderr), &v), r.stderr)
	return v.Error
}

func spreq(args ...string) result {
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func newServer(t *testing.T) (*fakeapi.Server, string) {
	t.Helper()
	srv := fakeapi.New()
	t.Cleanup(srv.Close)
	srv.Token = "1234"
	host, port := srv.HostPort()
	profile := filepath.Join(t.TempDir(), "profile.yaml")
	body := fmt.Sprintf("host: %s\nport: %d\nauth: \"1234\"\ntransient_retries: 0\n", host, port)
	require.NoError(t, os.WriteFile(profile, []byte(body), 0o600))
	return srv, profile
}

func TestCall_PrintsData(t *testing.T) {
	srv, profile := newServer(t)
	srv.Script("GET", "PlacementGroupDescribe",
		fakeapi.OK(map[string]any{"id": 3, "name": "hdd", "disks": []any{101}}))

	res := spreq("call", "--config", profile, "PlacementGroupDescribe", "hdd")
	require.Equal(t, 0, res.code, res.stderr)

	var data map[string]any
	require.NoError(t, gojson.Unmarshal([]byte(res.stdout), &data))
	assert.Equal(t, "hdd", data["name"])
	assert.Len(t, data["disks"], 1)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "PlacementGroupDescribe/hdd", reqs[0].Query)
}

func TestCall_PostWithJSON(t *testing.T) {
	srv, profile := newServer(t)
	srv.Script("POST", "PlacementGroupUpdate", fakeapi.OK(map[string]any{"ok": true, "generation": 7}))

	res := spreq("call", "--config", profile, "-P", "--json", `{"addDisks":[101,102]}`, "-M",
		"PlacementGroupUpdate", "hdd")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"ok": true`)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, string(reqs[0].Body), "addDisks")
}

func TestCall_APIErrors(t *testing.T) {
	srv, profile := newServer(t)
	srv.Script("GET", "PlacementGroupDescribe",
		fakeapi.Error(http.StatusNotFound, "objectDoesNotExist", "no such group", false),
		fakeapi.Error(http.StatusInternalServerError, "internalError", "boom", false))

	res := spreq("call", "--config", profile, "PlacementGroupDescribe", "hdd")
	assert.Equal(t, exitNotFound, res.code)
	assert.Equal(t, "objectDoesNotExist", res.errorBody(t)["name"])

	res = spreq("call", "--config", profile, "PlacementGroupDescribe", "hdd")
	assert.Equal(t, exitAPI, res.code)
	assert.Equal(t, "boom", res.errorBody(t)["descr"])
}

func TestCall_CLIErrors(t *testing.T) {
	srv, profile := newServer(t)

	for _, tc := range []struct {
		args []string
		name string
	}{
		{[]string{"call", "--config", profile, "NoSuchQuery"}, "cliUnknownQuery"},
		{[]string{"call", "--config", profile, "-P", "DisksList"}, "cliUnknownQuery"},
		{[]string{"call", "--config", profile, "PlacementGroupDescribe"}, "cliInvalidNumberOfArguments"},
		{[]string{"call", "--config", profile, "-P", "PlacementGroupUpdate", "hdd"}, "cliJSONRequired"},
		{[]string{"call", "--config", profile, "--json", "{}", "DisksList"}, "cliNoJSONRequired"},
		{[]string{"call", "--config", profile, "--bogus", "DisksList"}, "cliParseArgs"},
		{[]string{"call", "--config", profile}, "cliParseArgs"},
		{[]string{"call", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "DisksList"}, "cliInitAPI"},
		{[]string{"call", "--config", profile, "-P", "DiskEject", "abc"}, "cliInvalidArguments"},
	} {
		res := spreq(tc.args...)
		assert.Equal(t, exitCLI, res.code, strings.Join(tc.args, " "))
		assert.Equal(t, tc.name, res.errorBody(t)["name"], strings.Join(tc.args, " "))
	}
	assert.Empty(t, srv.Requests())

	res := spreq("call", "--config", profile, "PlacementGroupDescribe")
	body := res.errorBody(t)
	assert.EqualValues(t, 0, body["supplied_count"])
	assert.EqualValues(t, 1, body["required_count"])
	assert.Equal(t, []any{"placementGroupName"}, body["required_names"])
}

func TestCall_MissingConfigVariable(t *testing.T) {
	dir := t.TempDir()
	helper := filepath.Join(dir, "confget")
	require.NoError(t, os.WriteFile(helper, []byte("#!/bin/sh\necho SP_API_HTTP_HOST=127.0.0.1\n"), 0o755))
	t.Setenv("SP_API_HTTP_PORT", "")
	t.Setenv("SP_AUTH_TOKEN", "")

	res := spreq("call", "--confget", helper, "DisksList")
	require.Equal(t, exitCLI, res.code, res.stderr)
	body := res.errorBody(t)
	assert.Equal(t, "cliMissingConfigVariable", body["name"])
	assert.Equal(t, "SP_API_HTTP_PORT", body["missing"])
}

func TestCall_Noop(t *testing.T) {
	srv, profile := newServer(t)
	res := spreq("call", "--config", profile, "-N", "-C", "remote1", "PlacementGroupDescribe", "hdd")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "placementGroupDescribe: GET /ctrl/1.0/RemoteCommand/remote1/PlacementGroupDescribe/hdd")
	assert.Empty(t, srv.Requests())
}

func TestExports(t *testing.T) {
	res := spreq("methods")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "volumeDescribe")

	res = spreq("doc")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "<html")

	res = spreq("schema", "placementGroupDescribe")
	require.Equal(t, 0, res.code, res.stderr)
	var schemas map[string]map[string]any
	require.NoError(t, gojson.Unmarshal([]byte(res.stdout), &schemas))
	assert.Contains(t, schemas["placementGroupDescribe"], "properties")

	res = spreq("schema", "--yaml", "--request", "placementGroupUpdate")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "placementGroupUpdate:")

	res = spreq("schema", "nope")
	assert.Equal(t, "cliUnknownMethod", res.errorBody(t)["name"])

	res = spreq("openapi", "--yaml")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "openapi: 3.1.0")
}
