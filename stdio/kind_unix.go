//go:build unix

package stdio

import (
	"errors"

	"golang.org/x/sys/unix"
)

func errnoKind(err error) (IOError, bool) {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return 0, false
	}
	switch errno {
	case unix.EPIPE:
		return BrokenPipe, true
	case unix.EINTR:
		return Interrupted, true
	case unix.ENOMEM:
		return OutOfMemory, true
	case unix.ETIMEDOUT:
		return TimedOut, true
	case unix.ENOTSUP:
		return Unsupported, true
	}
	return 0, false
}
