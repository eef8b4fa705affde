package vec_test

import (
	"fmt"

	"github.com/pavanmanishd/heapcore"
	"github.com/pavanmanishd/heapcore/vec"
)

func Example() {
	h := heapcore.NewHeap()
	defer h.Release()

	v := vec.Of[float64](h)
	defer v.Free()
	for _, f := range []float64{1.5, 2.5, 4} {
		vec.PushValue(v, f)
	}
	v.Remove(0)

	sum := 0.0
	for i := range v.Len() {
		sum += *vec.At[float64](v, i)
	}
	fmt.Println(v.Len(), sum)
	// Output: 2 6.5
}
