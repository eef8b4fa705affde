//go:build unix

package stdio

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestKindErrno(t *testing.T) {
	pathErr := &os.PathError{Op: "write", Path: "/dev/stdout", Err: unix.EPIPE}
	assert.Equal(t, BrokenPipe, Kind(pathErr))
	assert.Equal(t, Interrupted, Kind(unix.EINTR))
	assert.Equal(t, OutOfMemory, Kind(unix.ENOMEM))
	assert.Equal(t, NotFound, Kind(unix.ENOENT))
	assert.Equal(t, Unknown, Kind(unix.EBADF))
}
