//go:build verilator

package native

import "C"

import (
	"sync/atomic"

	"github.com/daedaleanai/verilated/verilated"
)

var timeSource atomic.Pointer[verilated.Context]

func bindTimeSource(ctx *verilated.Context) {
	timeSource.Store(ctx)
}

// verilated_go_time_stamp backs sc_time_stamp, which models call for $time.
//
//export verilated_go_time_stamp
func verilated_go_time_stamp() C.double {
	ctx := timeSource.Load()
	if ctx == nil {
		return 0
	}
	return C.double(ctx.Time())
}
