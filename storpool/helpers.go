package storpool

import (
	"time"

	g "github.com/storpool/spschema/dsl"
)

// ServiceRunning reports whether a Server, Client, Mgmt or Bridge object
// has status "running".
func ServiceRunning(svc *g.Object) bool {
	s, _ := svc.Value("status").(string)
	return s == "running"
}

// Uptime returns how long a service has been running at now. ok is false
// when the service reports no start time. A start time in the future
// counts as zero.
func Uptime(svc *g.Object, now time.Time) (d time.Duration, ok bool) {
	start, ok := svc.Value("startTime").(int)
	if !ok {
		return 0, false
	}
	n := now.Unix()
	return time.Duration(n-min(int64(start), n)) * time.Second, true
}

// DiskUp reports whether a DiskSummary value describes a disk that is up.
func DiskUp(disk *g.Object) bool {
	return disk.Is(UpDiskSummary) || disk.Is(UpDiskTarget)
}

// ObjectOK reports whether a DiskObject is in the OBJECT_OK state.
func ObjectOK(obj *g.Object) bool {
	s, _ := obj.Value("state").(string)
	return s == ObjectStateOK
}
