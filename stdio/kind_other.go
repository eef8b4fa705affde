//go:build !unix

package stdio

func errnoKind(error) (IOError, bool) { return 0, false }
