package storpool

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DevPath is the directory the client creates volume links in.
var DevPath = "/dev/storpool"

// Defaults of DevLinkWait.
const (
	DevLinkPoll = 200 * time.Millisecond
	DevLinkMax  = 60 * time.Second
)

// ErrNotLink is returned when a volume path exists but is not a symlink.
var ErrNotLink = errors.New("not a symbolic link")

// DevLinkWait waits until the device link of volume exists (attached) or
// is gone (!attached). The link is checked every poll and whenever the
// directory changes, for at most max. It reports whether the state was
// reached in time. Zero poll or max select the defaults.
func DevLinkWait(ctx context.Context, volume string, attached bool, poll, max time.Duration) (bool, error) {
	if poll <= 0 {
		poll = DevLinkPoll
	}
	if max <= 0 {
		max = DevLinkMax
	}
	path := filepath.Join(DevPath, volume)

	check := func() (bool, error) {
		fi, err := os.Lstat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return !attached, nil
		case err != nil:
			return false, err
		case fi.Mode()&fs.ModeSymlink == 0:
			return false, fmt.Errorf("%s: %w", path, ErrNotLink)
		}
		return attached, nil
	}
	if done, err := check(); done || err != nil {
		return done, err
	}

	// The directory may not exist before the first attachment; polling
	// covers that case.
	var events <-chan fsnotify.Event
	if w, err := fsnotify.NewWatcher(); err == nil {
		defer w.Close()
		if w.Add(DevPath) == nil {
			events = w.Events
		}
	}

	deadline := time.NewTimer(max)
	defer deadline.Stop()
	tick := time.NewTicker(poll)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-deadline.C:
			return check()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if filepath.Base(ev.Name) != volume {
				continue
			}
		case <-tick.C:
		}
		if done, err := check(); done || err != nil {
			return done, err
		}
	}
}
