package verilated

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Mask clears the bits of v above `width`. Generated setters use it so that a
// port never sees bits beyond its declared width.
func Mask[T constraints.Unsigned](v T, width int) T {
	if width <= 0 {
		return 0
	}
	if width >= int(unsafe.Sizeof(v))*8 {
		return v
	}
	return v & (T(1)<<uint(width) - 1)
}
