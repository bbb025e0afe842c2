package gen

import (
	"go/token"
	"path/filepath"
	"strings"

	"github.com/daedaleanai/verilated/verilated"

	"github.com/pkg/errors"
)

// RuntimePackage is the import path of the runtime used by generated wrappers.
const RuntimePackage = "github.com/daedaleanai/verilated/verilated"

// DefaultObjDir is the directory, relative to the output directory, where
// Verilator puts the model sources and archives.
const DefaultObjDir = "obj_dir"

// Options configure a generation pass.
type Options struct {
	// OutDir receives the generated files.
	OutDir string
	// Package is the Go package name of the wrappers. It defaults to the name
	// of OutDir.
	Package string
	// TraceFormat selects the sink type the models are traced with.
	TraceFormat verilated.TraceFormat
	// ObjDir is the Verilator output directory. Relative paths are relative to OutDir.
	ObjDir string
	// IncludeDirs are added to the C++ include path of the wrappers.
	IncludeDirs []string
	// LDFlags are added to the linker flags of the wrappers.
	LDFlags []string
	// CXXStandard is passed to the compiler as -std=<standard>.
	CXXStandard string
}

// withDefaults returns a copy of the options with defaults filled in.
func (o Options) withDefaults() (Options, error) {
	if o.OutDir == "" {
		o.OutDir = "."
	}
	if o.Package == "" {
		abs, err := filepath.Abs(o.OutDir)
		if err != nil {
			return o, errors.Wrapf(err, "failed to resolve '%s'", o.OutDir)
		}
		o.Package = strings.ToLower(strings.ReplaceAll(filepath.Base(abs), "-", "_"))
	}
	if !token.IsIdentifier(o.Package) || token.IsKeyword(o.Package) {
		return o, errors.Errorf("'%s' is not a valid package name", o.Package)
	}
	if o.TraceFormat == "" {
		o.TraceFormat = verilated.VCD
	}
	if _, err := verilated.ParseTraceFormat(string(o.TraceFormat)); err != nil {
		return o, err
	}
	if o.ObjDir == "" {
		o.ObjDir = DefaultObjDir
	}
	if o.CXXStandard == "" {
		o.CXXStandard = "c++17"
	}
	return o, nil
}

type traceClass struct {
	class  string
	header string
	name   string
}

var traceClasses = map[verilated.TraceFormat]traceClass{
	verilated.VCD: {"VerilatedVcdC", "verilated_vcd_c.h", "VCD"},
	verilated.FST: {"VerilatedFstC", "verilated_fst_c.h", "FST"},
}

// cgoPath spells a path for a #cgo directive of a file in OutDir.
func cgoPath(path string) string {
	if filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	return "${SRCDIR}/" + filepath.ToSlash(filepath.Clean(path))
}

func (o Options) cxxFlags() []string {
	flags := []string{"-std=" + o.CXXStandard}
	for _, dir := range o.IncludeDirs {
		flags = append(flags, "-I"+cgoPath(dir))
	}
	return append(flags, "-I"+cgoPath(o.ObjDir))
}

func (o Options) ldFlags(modelClass string) []string {
	flags := []string{cgoPath(filepath.Join(o.ObjDir, modelClass+"__ALL.a"))}
	return append(flags, o.LDFlags...)
}
