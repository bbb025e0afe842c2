//go:build verilator

package native

/*
#cgo CXXFLAGS: -std=c++17
#cgo LDFLAGS: -lstdc++ -lpthread -lm
#include <stdlib.h>

void verilated_set_rand_reset(int val);
int verilated_rand_reset(void);
void verilated_set_debug(int level);
int verilated_debug(void);
void verilated_set_calc_unused_sigs(int flag);
int verilated_calc_unused_sigs(void);
void verilated_set_got_finish(int flag);
int verilated_got_finish(void);
void verilated_trace_ever_on(int flag);
void verilated_set_assert_on(int flag);
int verilated_assert_on(void);
void verilated_command_args(int argc, const char** argv);
const char* verilated_command_args_plus_match(const char* prefix);
const char* verilated_product_name(void);
const char* verilated_product_version(void);
void verilated_flush_call(void);
*/
import "C"

import (
	"unsafe"

	"github.com/daedaleanai/verilated/verilated"
)

// RandomMode selects the initial value of signals without a reset value.
type RandomMode int

const (
	AllZeros RandomMode = iota
	AllOnes
	Randomize
)

type runtime struct{}

func init() {
	verilated.RegisterRuntime(runtime{})
	verilated.RegisterSink(verilated.VCD, newVcdSink)
	verilated.RegisterSink(verilated.FST, newFstSink)
}

func (runtime) SetCommandArgs(args []string) {
	argv := make([]*C.char, len(args))
	for i, arg := range args {
		argv[i] = C.CString(arg)
	}
	defer func() {
		for _, arg := range argv {
			C.free(unsafe.Pointer(arg))
		}
	}()
	var argvp **C.char
	if len(argv) > 0 {
		argvp = &argv[0]
	}
	// The native runtime copies the arguments.
	C.verilated_command_args(C.int(len(argv)), argvp)
}

func (runtime) SetGotFinish(finished bool) {
	C.verilated_set_got_finish(cbool(finished))
}

func (runtime) GotFinish() bool {
	return C.verilated_got_finish() != 0
}

func (runtime) Bind(ctx *verilated.Context) {
	bindTimeSource(ctx)
}

// SetRandReset selects how signals without a reset value are initialised. It
// must be called before models are constructed to take effect.
func SetRandReset(mode RandomMode) {
	C.verilated_set_rand_reset(C.int(mode))
}

func RandReset() RandomMode {
	switch C.verilated_rand_reset() {
	case 0:
		return AllZeros
	case 1:
		return AllOnes
	}
	return Randomize
}

// SetDebug sets the debug level of the runtime, 0 is off.
func SetDebug(level int) {
	C.verilated_set_debug(C.int(level))
}

func Debug() int {
	return int(C.verilated_debug())
}

func SetCalcUnusedSigs(on bool) {
	C.verilated_set_calc_unused_sigs(cbool(on))
}

func CalcUnusedSigs() bool {
	return C.verilated_calc_unused_sigs() != 0
}

// SetTraceEverOn must be enabled before models are constructed if they are
// going to be traced. Opening a sink enables it.
func SetTraceEverOn(on bool) {
	C.verilated_trace_ever_on(cbool(on))
}

func SetAssertOn(on bool) {
	C.verilated_set_assert_on(cbool(on))
}

func AssertOn() bool {
	return C.verilated_assert_on() != 0
}

// PlusArgMatch returns the first command argument starting with "+" followed
// by `prefix`, without the leading "+".
func PlusArgMatch(prefix string) (string, bool) {
	cprefix := C.CString(prefix)
	defer C.free(unsafe.Pointer(cprefix))
	match := C.GoString(C.verilated_command_args_plus_match(cprefix))
	if match == "" {
		return "", false
	}
	return match[1:], true
}

func ProductName() string {
	return C.GoString(C.verilated_product_name())
}

func ProductVersion() string {
	return C.GoString(C.verilated_product_version())
}

// FlushAll flushes all open trace and coverage files.
func FlushAll() {
	C.verilated_flush_call()
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
