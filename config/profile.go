package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/storpool/spschema/client"
)

// Profile is a client profile stored as YAML.
//
//	host: 10.0.0.5
//	port: 81
//	auth: "1556560560218011653"
//	timeout: 30s
//	transient_retries: 3
//	multicluster: true
type Profile struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	Auth             string        `yaml:"auth"`
	Timeout          time.Duration `yaml:"timeout"`
	TransientRetries *int          `yaml:"transient_retries"`
	Source           string        `yaml:"source"`
	MultiCluster     bool          `yaml:"multicluster"`
	LogLevel         string        `yaml:"log_level"`
	MetricsNamespace string        `yaml:"metrics_namespace"`
}

// LoadProfile reads a profile file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Op: "profile", Path: path, Err: err}
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, &Error{Op: "profile", Path: path, Err: err}
	}
	if p.LogLevel != "" {
		if _, err := zerolog.ParseLevel(p.LogLevel); err != nil {
			return nil, &Error{Op: "profile", Path: path, Err: fmt.Errorf("log_level: %w", err)}
		}
	}
	return &p, nil
}

// ClientConfig converts the profile. Unset fields keep the client
// defaults.
func (p *Profile) ClientConfig(log zerolog.Logger) client.Config {
	cfg := client.DefaultConfig()
	if p.Host != "" {
		cfg.Host = p.Host
	}
	if p.Port != 0 {
		cfg.Port = p.Port
	}
	if p.Timeout != 0 {
		cfg.Timeout = p.Timeout
	}
	if p.TransientRetries != nil {
		cfg.TransientRetries = *p.TransientRetries
	}
	cfg.Auth = p.Auth
	cfg.Source = p.Source
	cfg.MultiCluster = p.MultiCluster
	if p.LogLevel != "" {
		if lvl, err := zerolog.ParseLevel(p.LogLevel); err == nil {
			log = log.Level(lvl)
		}
	}
	cfg.Logger = log
	return cfg
}

// Metrics registers the client collectors with reg under the profile's
// metrics namespace, client.DefaultNamespace when unset.
func (p *Profile) Metrics(reg prometheus.Registerer) *client.Metrics {
	return client.NewMetrics(reg, p.MetricsNamespace)
}

// FromStorPool builds a client configuration from node settings. Host,
// port and token must all be present.
func FromStorPool(sp StorPool, log zerolog.Logger) (client.Config, error) {
	cfg := client.DefaultConfig()
	host, err := sp.Require(KeyHost)
	if err != nil {
		return cfg, err
	}
	portText, err := sp.Require(KeyPort)
	if err != nil {
		return cfg, err
	}
	token, err := sp.Require(KeyToken)
	if err != nil {
		return cfg, err
	}
	port, err := strconv.Atoi(portText)
	if err != nil || port <= 0 || port > 65535 {
		return cfg, &Error{Op: "lookup", Path: KeyPort, Err: fmt.Errorf("invalid port %q", portText)}
	}
	cfg.Host, cfg.Port, cfg.Auth = host, port, token
	cfg.Logger = log
	return cfg, nil
}
