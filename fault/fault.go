// Package fault is the fatal-fault channel shared by every heapcore package.
//
// A fault marks a programmer error or an unrecoverable resource condition
// (zero-sized allocation, unknown block, failed clone). It is raised as a
// panic carrying a *Fault and is never recovered inside the library.
// Expected failures are returned as ordinary values instead.
package fault

import "fmt"

// Fault is the panic value raised for fatal conditions.
type Fault struct {
	Op  string // package or operation that faulted, e.g. "heapbox"
	Msg string
}

func (f *Fault) Error() string {
	return f.Op + ": " + f.Msg
}

// Raise panics with a *Fault built from op and the formatted message.
func Raise(op, format string, args ...any) {
	panic(&Fault{Op: op, Msg: fmt.Sprintf(format, args...)})
}

// Catch runs fn and converts a raised *Fault into a returned error.
// Panics that are not faults propagate unchanged.
func Catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		f, ok := r.(*Fault)
		if !ok {
			panic(r)
		}
		err = f
	}()
	fn()
	return nil
}
