package stdio

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/pavanmanishd/heapcore"
)

// IOError classifies an I/O error for callers across the flat boundary.
type IOError uint8

const (
	None IOError = iota
	Unknown
	NotFound
	PermissionDenied
	BrokenPipe
	AlreadyExists
	InvalidInput
	InvalidData
	TimedOut
	WriteZero
	Interrupted
	Unsupported
	UnexpectedEOF
	OutOfMemory
)

var ioErrorNames = [...]string{
	None:             "none",
	Unknown:          "unknown",
	NotFound:         "not found",
	PermissionDenied: "permission denied",
	BrokenPipe:       "broken pipe",
	AlreadyExists:    "already exists",
	InvalidInput:     "invalid input",
	InvalidData:      "invalid data",
	TimedOut:         "timed out",
	WriteZero:        "write zero",
	Interrupted:      "interrupted",
	Unsupported:      "unsupported",
	UnexpectedEOF:    "unexpected EOF",
	OutOfMemory:      "out of memory",
}

func (k IOError) String() string {
	if int(k) < len(ioErrorNames) {
		return ioErrorNames[k]
	}
	return "unknown"
}

// Kind maps err to its IOError.
func Kind(err error) IOError {
	switch {
	case err == nil:
		return None
	case errors.Is(err, ErrInvalidInput):
		return InvalidInput
	case errors.Is(err, ErrInvalidData):
		return InvalidData
	case errors.Is(err, io.ErrUnexpectedEOF):
		return UnexpectedEOF
	case errors.Is(err, io.ErrShortWrite):
		return WriteZero
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied
	case errors.Is(err, fs.ErrExist):
		return AlreadyExists
	case errors.Is(err, os.ErrDeadlineExceeded):
		return TimedOut
	case errors.Is(err, errors.ErrUnsupported):
		return Unsupported
	case errors.Is(err, heapcore.OutOfMemory):
		return OutOfMemory
	}
	if k, ok := errnoKind(err); ok {
		return k
	}
	return Unknown
}
