package sync

import (
	"os"
	"runtime"
)

// DeviceInfo identifies the local device in sync exchange logs. A real
// exchange would send it alongside the upload so the server can attribute
// changes per device.
type DeviceInfo struct {
	Hostname string
	Platform string
	Arch     string
}

// String renders the device info for logging.
func (d DeviceInfo) String() string {
	return d.Hostname + " (" + d.Platform + "/" + d.Arch + ")"
}

// deviceInfo returns the local device identity.
func deviceInfo() DeviceInfo {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown-device"
	}
	return DeviceInfo{
		Hostname: host,
		Platform: runtime.GOOS,
		Arch:     runtime.GOARCH,
	}
}
