package mem

import "unsafe"

// Region views the raw address range [start, end) as a byte slice. It is the
// single escape hatch in this module: the resulting slice performs real
// stores at those addresses, and nothing here can prove they are safe.
//
// The caller must guarantee that the range is valid, writable memory that no
// other code (including the running program itself) occupies or aliases for
// the lifetime of the slice. On a hosted operating system that guarantee
// almost never holds; Region is intended for bare-metal or identity-mapped
// targets where the load address constants are fixed by construction.
func Region(start, end uintptr) []byte {
	if end < start {
		panic("mem: region end precedes start")
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(start)), end-start)
}
