package sync

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeviceInfo(t *testing.T) {
	d := deviceInfo()
	assert.Equal(t, runtime.GOOS, d.Platform)
	assert.Equal(t, runtime.GOARCH, d.Arch)
	assert.Contains(t, d.String(), runtime.GOOS)
}
