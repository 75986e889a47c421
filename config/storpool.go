// Package config reads StorPool node configuration and client profiles
// and turns them into client.Config values.
package config

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Default locations.
const (
	DefaultConfget = "/usr/sbin/storpool_confget"
	DefaultFile    = "/etc/storpool.conf"
	DefaultDir     = "/etc/storpool.conf.d"
)

// Keys the API client needs.
const (
	KeyHost  = "SP_API_HTTP_HOST"
	KeyPort  = "SP_API_HTTP_PORT"
	KeyToken = "SP_AUTH_TOKEN"
)

// Error reports a configuration failure.
type Error struct {
	Op   string // "confget", "read", "parse", "lookup", "profile"
	Path string // file, helper or key involved
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return "config: " + e.Op + ": " + e.Err.Error()
	}
	return "config: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// ErrMissing is wrapped by lookups of keys that are not set.
var ErrMissing = errors.New("variable not set")

// StorPool holds KEY=VALUE settings of a node.
type StorPool map[string]string

// Get returns the value of key, or def when it is not set.
func (sp StorPool) Get(key, def string) string {
	if v, ok := sp[key]; ok {
		return v
	}
	return def
}

// Require returns the value of key or an *Error wrapping ErrMissing.
func (sp StorPool) Require(key string) (string, error) {
	v, ok := sp[key]
	if !ok {
		return "", &Error{Op: "lookup", Path: key, Err: ErrMissing}
	}
	return v, nil
}

// Keys returns the variable names, sorted.
func (sp StorPool) Keys() []string {
	out := make([]string, 0, len(sp))
	for k := range sp {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// WithEnvOverrides returns a copy of sp where the API variables are taken
// from lookup (os.LookupEnv when nil) if set there.
func (sp StorPool) WithEnvOverrides(lookup func(string) (string, bool)) StorPool {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	out := make(StorPool, len(sp)+3)
	for k, v := range sp {
		out[k] = v
	}
	for _, k := range []string{KeyHost, KeyPort, KeyToken} {
		if v, ok := lookup(k); ok && v != "" {
			out[k] = v
		}
	}
	return out
}

// Options control Load.
type Options struct {
	// Confget is the helper to run. Empty means DefaultConfget.
	Confget string
	// Section selects a [section] instead of the host name.
	Section string
	// File and Dir are parsed when the helper is not installed.
	File string
	Dir  string
	// Hostname is matched against section names when Section is empty.
	// Empty means os.Hostname.
	Hostname string
	Logger   zerolog.Logger
}

// Load runs the configuration helper and falls back to parsing the files
// directly when it is not installed.
func Load(ctx context.Context, opts Options) (StorPool, error) {
	if opts.Confget == "" {
		opts.Confget = DefaultConfget
	}
	sp, err := Confget(ctx, opts.Confget, opts.Section)
	if err == nil {
		return sp, nil
	}
	if !errors.Is(err, exec.ErrNotFound) && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	opts.Logger.Debug().Str("confget", opts.Confget).Msg("helper not installed, parsing files")

	section := opts.Section
	if section == "" {
		section = opts.Hostname
	}
	if section == "" {
		section, _ = os.Hostname()
	}
	file, dir := opts.File, opts.Dir
	if file == "" {
		file = DefaultFile
	}
	if dir == "" {
		dir = DefaultDir
	}
	return ParseFiles(file, dir, section)
}

// Confget runs the helper, with "-s section" when section is set, and
// parses its KEY=VALUE output. Anything on stderr is a failure.
func Confget(ctx context.Context, helper, section string) (StorPool, error) {
	args := []string{}
	if section != "" {
		args = append(args, "-s", section)
	}
	cmd := exec.CommandContext(ctx, helper, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	err := cmd.Run()

	msgs := strings.TrimSpace(strings.ReplaceAll(stderr.String(), "\\\n", ""))
	switch {
	case err != nil && msgs != "":
		return nil, &Error{Op: "confget", Path: helper, Err: fmt.Errorf("%w, error messages: %s", err, msgs)}
	case err != nil:
		return nil, &Error{Op: "confget", Path: helper, Err: err}
	case msgs != "":
		return nil, &Error{Op: "confget", Path: helper, Err: fmt.Errorf("reported errors: %s", msgs)}
	}

	out := StorPool{}
	text := strings.ReplaceAll(stdout.String(), "\\\n", "")
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return nil, &Error{Op: "confget", Path: helper, Err: fmt.Errorf("unexpected output line %q", line)}
		}
		out[k] = v
	}
	return out, nil
}

// ParseFiles reads file and then every *.conf in dir in name order. A
// missing dir is not an error; a missing file is.
func ParseFiles(file, dir, section string) (StorPool, error) {
	paths := []string{file}
	if dir != "" {
		matches, err := filepath.Glob(filepath.Join(dir, "*.conf"))
		if err != nil {
			return nil, &Error{Op: "read", Path: dir, Err: err}
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}

	out := StorPool{}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, &Error{Op: "read", Path: p, Err: err}
		}
		err = parseInto(out, f, section)
		f.Close()
		if err != nil {
			return nil, &Error{Op: "parse", Path: p, Err: err}
		}
	}
	return out, nil
}

// Parse reads one file in storpool.conf syntax. Settings before the
// first [section] header apply everywhere; settings under a header apply
// only when it names section.
func Parse(r io.Reader, section string) (StorPool, error) {
	out := StorPool{}
	if err := parseInto(out, r, section); err != nil {
		return nil, &Error{Op: "parse", Err: err}
	}
	return out, nil
}

func parseInto(dst StorPool, r io.Reader, section string) error {
	sc := bufio.NewScanner(r)
	active := true
	lineNo := 0
	var pending strings.Builder
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.HasSuffix(line, "\\") {
			pending.WriteString(strings.TrimSuffix(line, "\\"))
			continue
		}
		if pending.Len() > 0 {
			pending.WriteString(line)
			line = pending.String()
			pending.Reset()
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return fmt.Errorf("line %d: unterminated section header", lineNo)
			}
			name := strings.TrimSpace(line[1 : len(line)-1])
			active = name == section
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("line %d: expected KEY=VALUE", lineNo)
		}
		if active {
			dst[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return sc.Err()
}
