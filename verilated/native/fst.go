//go:build verilator

package native

/*
#cgo LDFLAGS: -lz
#include <stdlib.h>
#include <stdint.h>

typedef struct VerilatedFstC VerilatedFstC;

VerilatedFstC* verilatedfstc_new(void);
void verilatedfstc_delete(VerilatedFstC* fst);
int verilatedfstc_is_open(VerilatedFstC* fst);
void verilatedfstc_open(VerilatedFstC* fst, const char* filename);
void verilatedfstc_close(VerilatedFstC* fst);
void verilatedfstc_flush(VerilatedFstC* fst);
void verilatedfstc_dump(VerilatedFstC* fst, uint64_t time);
void verilatedfstc_set_time_unit(VerilatedFstC* fst, const char* unit);
void verilatedfstc_set_time_resolution(VerilatedFstC* fst, const char* unit);
*/
import "C"

import (
	"unsafe"

	"github.com/daedaleanai/verilated/verilated"
)

// fstSink writes compressed FST waveforms. FST files cannot be rotated.
type fstSink struct {
	ptr *C.VerilatedFstC
}

func newFstSink() (verilated.TraceSink, error) {
	SetTraceEverOn(true)
	ptr := C.verilatedfstc_new()
	if ptr == nil {
		return nil, verilated.ErrNativeAllocation
	}
	return &fstSink{ptr: ptr}, nil
}

func (s *fstSink) Open(path string) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	C.verilatedfstc_open(s.ptr, cpath)
}

func (s *fstSink) IsOpen() bool {
	return C.verilatedfstc_is_open(s.ptr) != 0
}

func (s *fstSink) Flush() {
	C.verilatedfstc_flush(s.ptr)
}

func (s *fstSink) Dump(t uint64) {
	C.verilatedfstc_dump(s.ptr, C.uint64_t(t))
}

func (s *fstSink) SetTimeUnit(u verilated.TimeUnit) {
	cunit := C.CString(u.String())
	defer C.free(unsafe.Pointer(cunit))
	C.verilatedfstc_set_time_unit(s.ptr, cunit)
}

func (s *fstSink) SetTimeResolution(u verilated.TimeUnit) {
	cunit := C.CString(u.String())
	defer C.free(unsafe.Pointer(cunit))
	C.verilatedfstc_set_time_resolution(s.ptr, cunit)
}

func (s *fstSink) Close() {
	C.verilatedfstc_close(s.ptr)
}

func (s *fstSink) Free() {
	C.verilatedfstc_delete(s.ptr)
	s.ptr = nil
}

func (s *fstSink) Handle() unsafe.Pointer {
	return unsafe.Pointer(s.ptr)
}
