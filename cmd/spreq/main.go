// Command spreq sends a single request to the StorPool API and prints the
// reply as JSON. It also exports the API reference.
//
//	spreq call VolumeDescribe vol1
//	spreq call -P --json '{"name":"vol1","size":1073741824}' VolumeCreate
//	spreq doc > api.html
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
