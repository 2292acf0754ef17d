package mempool

import (
	"fmt"
	"unsafe"
)

// Alloc returns a pointer to a zeroed T stored in memory obtained from a.
// Release it with FreeObject. T must not contain Go pointers: the garbage
// collector does not scan pool memory.
func Alloc[T any](a Allocator) (*T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	b, err := getAligned(a, size, unsafe.Alignof(zero))
	if err != nil {
		return nil, err
	}
	clear(b)
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// FreeObject releases a value returned by Alloc.
func FreeObject[T any](a Allocator, t *T) error {
	if t == nil {
		return fmt.Errorf("%w: nil object", ErrForeignPointer)
	}
	size := int(unsafe.Sizeof(*t))
	return a.Free(unsafe.Slice((*byte)(unsafe.Pointer(t)), size), size)
}

// AllocSlice allocates a zeroed slice of n elements of type T from a.
// Release it with FreeSlice, keeping the original length.
func AllocSlice[T any](a Allocator, n int) ([]T, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d elements", ErrInvalidSize, n)
	}
	var zero T
	b, err := getAligned(a, int(unsafe.Sizeof(zero))*n, unsafe.Alignof(zero))
	if err != nil {
		return nil, err
	}
	clear(b)
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// FreeSlice releases a slice returned by AllocSlice.
func FreeSlice[T any](a Allocator, s []T) error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty slice", ErrForeignPointer)
	}
	var zero T
	size := int(unsafe.Sizeof(zero)) * len(s)
	return a.Free(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), size), size)
}

// getAligned gets size bytes from a and checks the block's alignment,
// handing the block back when it cannot hold the type.
func getAligned(a Allocator, size int, align uintptr) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: zero-sized type", ErrInvalidSize)
	}
	b, err := a.Get(size)
	if err != nil {
		return nil, err
	}
	if addr := uintptr(unsafe.Pointer(unsafe.SliceData(b))); addr%align != 0 {
		if err := a.Free(b, size); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %#x is not %d-byte aligned", ErrMisaligned, addr, align)
	}
	return b, nil
}
