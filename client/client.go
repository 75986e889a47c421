// Package client is the HTTP transport of the StorPool control-plane API.
//
// A Client implements method.Transport: it sends a validated request,
// retries transient failures and returns the "data" member of the reply.
//
//	c := client.New(client.DefaultConfig())
//	out, err := storpool.New(c).Call(ctx, "volumesList", method.Call{})
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storpool/spschema/method"
	"github.com/storpool/spschema/wire"
)

// Defaults of Config.
const (
	DefaultHost             = "127.0.0.1"
	DefaultPort             = 80
	DefaultTimeout          = 300 * time.Second
	DefaultTransientRetries = 5
)

// Config configures a Client.
type Config struct {
	Host string
	Port int
	// Auth is the API token, sent as "Authorization: Storpool v1:<Auth>".
	Auth    string
	Timeout time.Duration
	// TransientRetries is the number of retries after the first attempt.
	// Zero disables retrying.
	TransientRetries int
	// TransientSleep returns the pause before the given retry, counting
	// from 0. Nil means 2**retry seconds.
	TransientSleep func(retry int) time.Duration
	// Source is the local address outgoing connections bind to.
	Source string
	// MultiCluster routes methods that support it through the
	// multicluster endpoint.
	MultiCluster bool
	// WarnDuplicates logs a warning for every response object that
	// repeats a key.
	WarnDuplicates bool

	// Logger receives call logs. The zero value discards them.
	Logger     zerolog.Logger
	Metrics    *Metrics
	HTTPClient *http.Client
}

// DefaultConfig returns the defaults of a local StorPool node.
func DefaultConfig() Config {
	return Config{
		Host:             DefaultHost,
		Port:             DefaultPort,
		Timeout:          DefaultTimeout,
		TransientRetries: DefaultTransientRetries,
		Logger:           zerolog.Nop(),
	}
}

// Client sends requests to one API endpoint. It is safe for concurrent
// use.
type Client struct {
	cfg  Config
	base string
	http *http.Client
	log  zerolog.Logger
}

var _ method.Transport = (*Client)(nil)
var _ method.PartialObserver = (*Client)(nil)

// New returns a client for cfg. Zero Host, Port and Timeout take their
// defaults.
func New(cfg Config) *Client {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.TransientSleep == nil {
		cfg.TransientSleep = ExponentialSleep
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
		if cfg.Source != "" {
			d := &net.Dialer{LocalAddr: &net.TCPAddr{IP: net.ParseIP(cfg.Source)}}
			hc.Transport = &http.Transport{DialContext: d.DialContext}
		}
	}
	return &Client{
		cfg:  cfg,
		base: "http://" + net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		http: hc,
		log:  cfg.Logger.With().Str("component", "client").Logger(),
	}
}

// ExponentialSleep is the default TransientSleep: 2**retry seconds.
func ExponentialSleep(retry int) time.Duration {
	return time.Duration(math.Pow(2, float64(retry))) * time.Second
}

// BaseURL returns the scheme, host and port requests go to.
func (c *Client) BaseURL() string { return c.base }

// URL returns the full URL of req, query string included.
func (c *Client) URL(req method.Request) (string, error) {
	u := c.base + method.FormatPath(req.Query, req.MultiCluster && c.cfg.MultiCluster, req.ClusterName)
	if req.Verb == http.MethodGet && req.Body != nil {
		body, err := wire.Encode(req.Body)
		if err != nil {
			return "", err
		}
		// %20 rather than + for spaces, like the server's own tools
		u += "?json=" + strings.ReplaceAll(url.QueryEscape(string(body)), "+", "%20")
	}
	return u, nil
}

// Call sends req and returns the "data" member of the reply. Transient
// failures are retried up to TransientRetries times; when they run out the
// last error is returned.
func (c *Client) Call(ctx context.Context, req method.Request) (any, error) {
	callID := uuid.New().String()
	log := c.log.With().
		Str("call_id", callID).
		Str("method", req.Name).
		Str("verb", req.Verb).
		Logger()

	start := time.Now()
	var lastErr error
	for retry := 0; retry <= c.cfg.TransientRetries; retry++ {
		data, err := c.once(ctx, req, callID, log)
		if err == nil {
			c.cfg.Metrics.observe(req.Name, req.Verb, "ok", time.Since(start).Seconds())
			return data, nil
		}
		lastErr = err
		reason := retryReason(err)
		if reason == "" || retry == c.cfg.TransientRetries || ctx.Err() != nil {
			break
		}
		pause := c.cfg.TransientSleep(retry)
		log.Warn().Err(err).Int("retry", retry+1).Dur("sleep", pause).Str("reason", reason).Msg("retrying API call")
		c.cfg.Metrics.retry(req.Name, reason)
		if err := sleep(ctx, pause); err != nil {
			lastErr = err
			break
		}
	}
	outcome := "error"
	if IsAPIError(lastErr, "") {
		outcome = "api_error"
	}
	c.cfg.Metrics.observe(req.Name, req.Verb, outcome, time.Since(start).Seconds())
	log.Debug().Err(lastErr).Msg("API call failed")
	return nil, lastErr
}

func (c *Client) once(ctx context.Context, req method.Request, callID string, log zerolog.Logger) (any, error) {
	u, err := c.URL(req)
	if err != nil {
		return nil, err
	}
	var body io.Reader
	if req.Verb != http.MethodGet && req.Body != nil {
		b, err := wire.Encode(req.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	hreq, err := http.NewRequestWithContext(ctx, req.Verb, u, body)
	if err != nil {
		return nil, fmt.Errorf("client: %s: %w", req.Name, err)
	}
	if c.cfg.Auth != "" {
		hreq.Header.Set("Authorization", "Storpool v1:"+c.cfg.Auth)
	}
	hreq.Header.Set("X-Request-Id", callID)
	if body != nil {
		hreq.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("url", u).Msg("API call")
	resp, err := c.http.Do(hreq)
	if err != nil {
		return nil, fmt.Errorf("client: %s: %w", req.Name, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: %s: %w", req.Name, &protocolError{err: err})
	}

	if c.cfg.WarnDuplicates {
		for _, is := range wire.DuplicateKeys(raw, 16) {
			log.Warn().Str("path", is.Path).Str("code", is.Code).Msg(is.Message)
		}
	}

	env, eb, err := wire.DecodeResponse(resp.StatusCode, raw)
	if eb != nil {
		return nil, apiError(resp.StatusCode, eb)
	}
	if err != nil {
		return nil, fmt.Errorf("client: %s: %w", req.Name, err)
	}
	log.Debug().Int64("generation", env.Generation).Msg("API reply")
	return env.Data, nil
}

// ObservePartial counts and logs replies accepted with a partial decode.
func (c *Client) ObservePartial(req method.Request, err error) {
	c.cfg.Metrics.partial(req.Name)
	c.log.Debug().Str("method", req.Name).Err(err).Msg("partial decode observed")
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
