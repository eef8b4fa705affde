package heapcore

// ErrorKind is the recoverable result of a fallible allocator operation.
// The zero value None means success.
type ErrorKind uint8

const (
	// None reports success.
	None ErrorKind = iota
	// OutOfMemory reports that a new block could not be obtained.
	OutOfMemory
	// MemoryNotFound reports an address that does not belong to the heap.
	MemoryNotFound
	// HeapNotFound reports that the heap itself is gone.
	HeapNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case None:
		return "none"
	case OutOfMemory:
		return "out of memory"
	case MemoryNotFound:
		return "memory not found"
	case HeapNotFound:
		return "heap not found"
	default:
		return "unknown allocation error"
	}
}

// Error implements error so a non-None kind can travel as an error value.
func (k ErrorKind) Error() string { return "heapcore: " + k.String() }

// Err returns nil for None and k otherwise.
func (k ErrorKind) Err() error {
	if k == None {
		return nil
	}
	return k
}
