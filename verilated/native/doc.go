// Package native binds the Verilator C++ runtime. Importing it registers the
// runtime and the VCD and FST trace sinks with the verilated package:
//
//	import _ "github.com/daedaleanai/verilated/verilated/native"
//
// The package is only built with the `verilator` build tag, since it needs the
// Verilator headers and runtime library. Point cgo at them through the
// environment, for example:
//
//	CGO_CXXFLAGS="-I$VERILATOR_ROOT/include -I$VERILATOR_ROOT/include/vltstd"
//	CGO_LDFLAGS="obj_dir/libverilated.a"
//
// `verilated verilate --env` prints suitable values.
package native
