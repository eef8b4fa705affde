package strview

import (
	"errors"
	"fmt"
	"strconv"
	"unsafe"
)

// ErrParse is wrapped by every failed numeric conversion.
var ErrParse = errors.New("strview: invalid numeric text")

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// ToF32 parses the view as a float32. Overflow yields ±Inf, not an error.
func (v View) ToF32() (float32, error) {
	f, err := parseFloat(v, 32)
	return float32(f), err
}

// ToF64 parses the view as a float64. Overflow yields ±Inf, not an error.
func (v View) ToF64() (float64, error) { return parseFloat(v, 64) }

// ToInt parses the view as a decimal int.
func (v View) ToInt() (int, error) { return parseSigned[int](v) }

// ToUint parses the view as a decimal uint.
func (v View) ToUint() (uint, error) { return parseUnsigned[uint](v) }

// ToI8 parses the view as a decimal int8.
func (v View) ToI8() (int8, error) { return parseSigned[int8](v) }

// ToU8 parses the view as a decimal uint8.
func (v View) ToU8() (uint8, error) { return parseUnsigned[uint8](v) }

// ToI16 parses the view as a decimal int16.
func (v View) ToI16() (int16, error) { return parseSigned[int16](v) }

// ToU16 parses the view as a decimal uint16.
func (v View) ToU16() (uint16, error) { return parseUnsigned[uint16](v) }

// ToI32 parses the view as a decimal int32.
func (v View) ToI32() (int32, error) { return parseSigned[int32](v) }

// ToU32 parses the view as a decimal uint32.
func (v View) ToU32() (uint32, error) { return parseUnsigned[uint32](v) }

// ToI64 parses the view as a decimal int64.
func (v View) ToI64() (int64, error) { return parseSigned[int64](v) }

// ToU64 parses the view as a decimal uint64.
func (v View) ToU64() (uint64, error) { return parseUnsigned[uint64](v) }

func parseFloat(v View, bits int) (float64, error) {
	f, err := strconv.ParseFloat(string(v.b), bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f, nil
		}
		return 0, parseError(v, fmt.Sprintf("float%d", bits), err)
	}
	return f, nil
}

func parseSigned[T signed](v View) (T, error) {
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	n, err := strconv.ParseInt(string(v.b), 10, bits)
	if err != nil {
		return zero, parseError(v, fmt.Sprintf("int%d", bits), err)
	}
	return T(n), nil
}

// parseUnsigned accepts an optional leading '+', which strconv rejects.
func parseUnsigned[T unsigned](v View) (T, error) {
	var zero T
	bits := int(unsafe.Sizeof(zero)) * 8
	s := string(v.b)
	if len(s) > 1 && s[0] == '+' {
		s = s[1:]
	}
	n, err := strconv.ParseUint(s, 10, bits)
	if err != nil {
		return zero, parseError(v, fmt.Sprintf("uint%d", bits), err)
	}
	return T(n), nil
}

func parseError(v View, kind string, err error) error {
	return fmt.Errorf("%w: %q as %s: %w", ErrParse, v.b, kind, err)
}
