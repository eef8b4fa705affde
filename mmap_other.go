//go:build !unix

package heapcore

import "os"

var pageSize = os.Getpagesize()

// mapMemory falls back to Go-managed memory. The heap keeps every chunk
// and span referenced until it is unmapped, so blocks stay valid.
func mapMemory(n int) ([]byte, error) {
	return make([]byte, n), nil
}

func unmapMemory(mem []byte) error {
	return nil
}
