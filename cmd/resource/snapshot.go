package main

import (
	"os"

	"github.com/pirogoeth/concourse-http-api-resource/internal/common"
)

// snapshotPayload mirrors the raw input payload to a temp file named after
// the command. Best effort only: the copy exists for post-mortem debugging
// of failed builds and is deliberately left behind rather than cleaned up.
func snapshotPayload(name string, raw []byte) {
	f, err := os.CreateTemp("", name+"-")
	if err != nil {
		common.LogDebug("payload snapshot unavailable", "error", err)
		return
	}
	defer func() { _ = f.Close() }()
	if _, err := f.Write(raw); err != nil {
		common.LogDebug("payload snapshot write failed", "path", f.Name(), "error", err)
		return
	}
	common.LogDebug("payload snapshot written", "path", f.Name())
}
