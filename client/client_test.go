package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storpool/spschema/client"
	"github.com/storpool/spschema/internal/fakeapi"
	"github.com/storpool/spschema/method"
)

func newClient(t *testing.T, srv *fakeapi.Server, mutate func(*client.Config)) *client.Client {
	t.Helper()
	host, port := srv.HostPort()
	cfg := client.DefaultConfig()
	cfg.Host, cfg.Port, cfg.Auth = host, port, "secret"
	cfg.TransientSleep = func(int) time.Duration { return time.Millisecond }
	if mutate != nil {
		mutate(&cfg)
	}
	return client.New(cfg)
}

func TestCall_SendsAuthAndBody(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Token = "secret"
	srv.Script("POST", "VolumeCreate", fakeapi.OK(map[string]any{"ok": true}))

	c := newClient(t, srv, nil)
	data, err := c.Call(context.Background(), method.Request{
		Name: "volumeCreate", Verb: "POST", Query: "VolumeCreate",
		Body: map[string]any{"name": "v1", "size": 1024, "template": nil},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, data)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Storpool v1:secret", reqs[0].Header.Get("Authorization"))
	assert.NotEmpty(t, reqs[0].Header.Get("X-Request-Id"))
	assert.JSONEq(t, `{"name":"v1","size":1024}`, string(reqs[0].Body))
}

func TestCall_GetBodyGoesToQueryString(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Script("GET", "VolumesGetStatus", fakeapi.OK(map[string]any{}))

	c := newClient(t, srv, nil)
	_, err := c.Call(context.Background(), method.Request{
		Name: "volumesGetStatus", Verb: "GET", Query: "VolumesGetStatus",
		Body: map[string]any{"volume": "a b"},
	})
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].Body)
	assert.Equal(t, "json=%7B%22volume%22%3A%22a%20b%22%7D", reqs[0].RawQuery)
	q, err := url.ParseQuery(reqs[0].RawQuery)
	require.NoError(t, err)
	assert.JSONEq(t, `{"volume":"a b"}`, q.Get("json"))
}

func TestCall_Routing(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Script("GET", "VolumesList", fakeapi.OK([]any{}))

	plain := newClient(t, srv, nil)
	multi := newClient(t, srv, func(c *client.Config) { c.MultiCluster = true })
	req := method.Request{Name: "volumesList", Verb: "GET", Query: "VolumesList", MultiCluster: true}

	_, err := plain.Call(context.Background(), req)
	require.NoError(t, err)
	_, err = multi.Call(context.Background(), req)
	require.NoError(t, err)
	req.ClusterName = "east"
	_, err = multi.Call(context.Background(), req)
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 3)
	assert.False(t, reqs[0].MultiCluster, "client not configured for multicluster")
	assert.True(t, reqs[1].MultiCluster)
	assert.Equal(t, "east", reqs[2].Cluster)
	assert.Equal(t, "VolumesList", reqs[2].Query)
}

func TestCall_TransientErrorsAreRetried(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Script("GET", "DisksList",
		fakeapi.Error(http.StatusServiceUnavailable, "busy", "try again", true),
		fakeapi.Error(http.StatusServiceUnavailable, "busy", "try again", true),
		fakeapi.OK(map[string]any{}),
	)

	reg := prometheus.NewRegistry()
	metrics := client.NewMetrics(reg, "")
	c := newClient(t, srv, func(c *client.Config) { c.Metrics = metrics })
	_, err := c.Call(context.Background(), method.Request{Name: "disksList", Verb: "GET", Query: "DisksList"})
	require.NoError(t, err)
	assert.Len(t, srv.Requests(), 3)
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RetriesTotal.WithLabelValues("disksList", "transient")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("disksList", "GET", "ok")))
}

func TestCall_RetriesExhaustedReturnLastError(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Script("GET", "DisksList", fakeapi.Error(http.StatusServiceUnavailable, "busy", "still busy", true))

	var sleeps []int
	c := newClient(t, srv, func(c *client.Config) {
		c.TransientRetries = 2
		c.TransientSleep = func(retry int) time.Duration {
			sleeps = append(sleeps, retry)
			return time.Millisecond
		}
	})
	_, err := c.Call(context.Background(), method.Request{Name: "disksList", Verb: "GET", Query: "DisksList"})

	var ae *client.APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusServiceUnavailable, ae.Status)
	assert.Equal(t, "busy: still busy", ae.Error())
	assert.True(t, ae.Transient)
	assert.Len(t, srv.Requests(), 3)
	assert.Equal(t, []int{0, 1}, sleeps)
}

func TestCall_NonTransientErrorIsNotRetried(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Script("GET", "VolumeDescribe", fakeapi.Error(http.StatusNotFound, "objectDoesNotExist", "no such volume", false))

	c := newClient(t, srv, nil)
	_, err := c.Call(context.Background(), method.Request{Name: "volumeDescribe", Verb: "GET", Query: "VolumeDescribe/v"})
	require.Error(t, err)
	assert.True(t, client.IsAPIError(err, "objectDoesNotExist"))
	assert.Len(t, srv.Requests(), 1)
}

func TestCall_ErrorMemberWithStatus200(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Script("POST", "VolumeDelete", fakeapi.Reply{Status: http.StatusOK, Raw: []byte(`{"error":{}}`)})

	c := newClient(t, srv, nil)
	_, err := c.Call(context.Background(), method.Request{Name: "volumeDelete", Verb: "POST", Query: "VolumeDelete/v"})
	var ae *client.APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "<Missing error name>", ae.Name)
	assert.Equal(t, "<Missing error description>", ae.Descr)
}

func TestCall_HangupIsRetried(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Script("GET", "ServicesList", fakeapi.Reply{Hangup: true}, fakeapi.OK(map[string]any{}))

	c := newClient(t, srv, nil)
	_, err := c.Call(context.Background(), method.Request{Name: "servicesList", Verb: "GET", Query: "ServicesList"})
	require.NoError(t, err)
	assert.Len(t, srv.Requests(), 2)
}

func TestCall_ConnectionRefused(t *testing.T) {
	srv := fakeapi.New()
	host, port := srv.HostPort()
	srv.Close()

	var attempts int
	c := client.New(client.Config{
		Host: host, Port: port, TransientRetries: 1,
		TransientSleep: func(int) time.Duration { attempts++; return time.Millisecond },
	})
	_, err := c.Call(context.Background(), method.Request{Name: "servicesList", Verb: "GET", Query: "ServicesList"})
	require.Error(t, err)
	assert.False(t, client.IsAPIError(err, ""))
	assert.Equal(t, 1, attempts)
}

func TestCall_SleepHonoursContext(t *testing.T) {
	srv := fakeapi.New()
	defer srv.Close()
	srv.Script("GET", "DisksList", fakeapi.Error(http.StatusServiceUnavailable, "busy", "", true))

	c := newClient(t, srv, func(c *client.Config) {
		c.TransientSleep = func(int) time.Duration { return time.Hour }
	})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Call(ctx, method.Request{Name: "disksList", Verb: "GET", Query: "DisksList"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExponentialSleep(t *testing.T) {
	assert.Equal(t, time.Second, client.ExponentialSleep(0))
	assert.Equal(t, 8*time.Second, client.ExponentialSleep(3))
}

func TestURL(t *testing.T) {
	c := client.New(client.Config{Host: "10.0.0.1", Port: 81, MultiCluster: true})
	u, err := c.URL(method.Request{Verb: "GET", Query: "VolumesList", MultiCluster: true, ClusterName: "b"})
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1:81/ctrl/1.0/RemoteCommand/b/MultiCluster/VolumesList", u)
}
