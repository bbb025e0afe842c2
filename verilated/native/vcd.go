//go:build verilator

package native

/*
#include <stdlib.h>
#include <stdint.h>

typedef struct VerilatedVcdC VerilatedVcdC;

VerilatedVcdC* verilatedvcdc_new(void);
void verilatedvcdc_delete(VerilatedVcdC* vcd);
int verilatedvcdc_is_open(VerilatedVcdC* vcd);
void verilatedvcdc_open(VerilatedVcdC* vcd, const char* filename);
void verilatedvcdc_open_next(VerilatedVcdC* vcd, int inc_filename);
void verilatedvcdc_rollover_mb(VerilatedVcdC* vcd, uint64_t mb);
void verilatedvcdc_close(VerilatedVcdC* vcd);
void verilatedvcdc_flush(VerilatedVcdC* vcd);
void verilatedvcdc_dump(VerilatedVcdC* vcd, uint64_t time);
void verilatedvcdc_set_time_unit(VerilatedVcdC* vcd, const char* unit);
void verilatedvcdc_set_time_resolution(VerilatedVcdC* vcd, const char* unit);
*/
import "C"

import (
	"unsafe"

	"github.com/daedaleanai/verilated/verilated"
)

// vcdSink writes value change dumps. It supports rotation.
type vcdSink struct {
	ptr *C.VerilatedVcdC
}

func newVcdSink() (verilated.TraceSink, error) {
	SetTraceEverOn(true)
	ptr := C.verilatedvcdc_new()
	if ptr == nil {
		return nil, verilated.ErrNativeAllocation
	}
	return &vcdSink{ptr: ptr}, nil
}

func (s *vcdSink) Open(path string) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	C.verilatedvcdc_open(s.ptr, cpath)
}

func (s *vcdSink) IsOpen() bool {
	return C.verilatedvcdc_is_open(s.ptr) != 0
}

func (s *vcdSink) OpenNext(incrementFilename bool) {
	C.verilatedvcdc_open_next(s.ptr, cbool(incrementFilename))
}

func (s *vcdSink) SetRolloverMB(mb uint64) {
	C.verilatedvcdc_rollover_mb(s.ptr, C.uint64_t(mb))
}

func (s *vcdSink) Flush() {
	C.verilatedvcdc_flush(s.ptr)
}

func (s *vcdSink) Dump(t uint64) {
	C.verilatedvcdc_dump(s.ptr, C.uint64_t(t))
}

func (s *vcdSink) SetTimeUnit(u verilated.TimeUnit) {
	cunit := C.CString(u.String())
	defer C.free(unsafe.Pointer(cunit))
	C.verilatedvcdc_set_time_unit(s.ptr, cunit)
}

func (s *vcdSink) SetTimeResolution(u verilated.TimeUnit) {
	cunit := C.CString(u.String())
	defer C.free(unsafe.Pointer(cunit))
	C.verilatedvcdc_set_time_resolution(s.ptr, cunit)
}

func (s *vcdSink) Close() {
	C.verilatedvcdc_close(s.ptr)
}

func (s *vcdSink) Free() {
	C.verilatedvcdc_delete(s.ptr)
	s.ptr = nil
}

func (s *vcdSink) Handle() unsafe.Pointer {
	return unsafe.Pointer(s.ptr)
}
