package verilator

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Standard is a Verilog or SystemVerilog language standard.
type Standard string

const (
	Verilog1995       Standard = "1364-1995"
	Verilog2001       Standard = "1364-2001"
	Verilog2005       Standard = "1364-2005"
	SystemVerilog2005 Standard = "1800-2005"
	SystemVerilog2009 Standard = "1800-2009"
	SystemVerilog2012 Standard = "1800-2012"
)

var standards = []Standard{
	Verilog1995, Verilog2001, Verilog2005,
	SystemVerilog2005, SystemVerilog2009, SystemVerilog2012,
}

// Standards lists the supported standards, oldest first.
func Standards() []Standard {
	return append([]Standard{}, standards...)
}

// ParseStandard accepts the IEEE number of a standard, e.g. "1800-2012".
func ParseStandard(s string) (Standard, error) {
	for _, std := range standards {
		if string(std) == s {
			return std, nil
		}
	}
	return "", errors.Errorf("unknown language standard '%s'", s)
}

// ExtFlag returns the flag that makes Verilator parse files with the extension
// of `file` according to the standard, e.g. "+1364-2001ext+v". Files without an
// extension get no flag.
func (s Standard) ExtFlag(file string) string {
	ext := strings.TrimPrefix(filepath.Ext(file), ".")
	if ext == "" {
		return ""
	}
	return "+" + string(s) + "ext+" + ext
}

// IsVerilog reports whether the file looks like a Verilog or SystemVerilog source.
func IsVerilog(path string) bool {
	return strings.HasSuffix(path, ".v") ||
		strings.HasSuffix(path, ".sv")
}

// IsSystemVerilog reports whether the file looks like a SystemVerilog source.
func IsSystemVerilog(path string) bool {
	return strings.HasSuffix(path, ".sv")
}
