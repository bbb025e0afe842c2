// Package verilator builds and runs Verilator command lines that turn HDL
// sources into the C++ models the generated bindings link against.
package verilator

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/daedaleanai/verilated/util"
	"github.com/daedaleanai/verilated/verilated"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds a single Verilator run.
const DefaultTimeout = 10 * time.Minute

// Source is an HDL file, optionally parsed according to a specific standard.
type Source struct {
	Path     string
	Standard Standard
}

// Options describe a Verilator invocation.
type Options struct {
	// Top is the name of the top module. It becomes the model class V<Top>.
	Top     string
	Sources []Source
	// MDir is the output directory of the model.
	MDir       string
	Coverage   bool
	Trace      bool
	Format     verilated.TraceFormat
	Build      bool
	Warnings   []string
	SearchDirs []string
	Defines    map[string]string
	// Standard applies to every source without its own standard.
	Standard Standard
	Flags    []string
	Timeout  time.Duration
}

// Validate checks the options before anything is run.
func (o Options) Validate() error {
	if o.Top == "" {
		return errors.New("no top module given")
	}
	if o.MDir == "" {
		return errors.New("no output directory given")
	}
	if len(o.Sources) == 0 {
		return errors.Errorf("no sources given for top module '%s'", o.Top)
	}
	if o.Format != "" {
		if _, err := verilated.ParseTraceFormat(string(o.Format)); err != nil {
			return err
		}
	}
	if o.Standard != "" {
		if _, err := ParseStandard(string(o.Standard)); err != nil {
			return err
		}
	}
	for _, src := range o.Sources {
		if src.Standard == "" {
			continue
		}
		if _, err := ParseStandard(string(src.Standard)); err != nil {
			return errors.Wrapf(err, "source '%s'", src.Path)
		}
	}
	return nil
}

// Args returns the command line arguments, without the executable. The result
// only depends on the options: defines are sorted by name.
func (o Options) Args() []string {
	args := []string{"--cc", "-Mdir", o.MDir, "--top-module", o.Top}
	if o.Coverage {
		args = append(args, "--coverage")
	}
	if o.Trace {
		if o.Format == verilated.FST {
			args = append(args, "--trace-fst")
		} else {
			args = append(args, "--trace")
		}
	}
	if o.Build {
		args = append(args, "--build")
	}
	for _, warning := range o.Warnings {
		args = append(args, "-Wno-"+strings.ToLower(warning))
	}
	for _, dir := range o.SearchDirs {
		args = append(args, "-y", dir)
	}
	for _, name := range util.OrderedKeys(o.Defines) {
		if value := o.Defines[name]; value != "" {
			args = append(args, "-D"+name+"="+value)
		} else {
			args = append(args, "-D"+name)
		}
	}
	args = append(args, o.Flags...)
	for _, src := range o.Sources {
		std := src.Standard
		if std == "" {
			std = o.Standard
		}
		if std != "" {
			if flag := std.ExtFlag(src.Path); flag != "" {
				args = append(args, flag)
			}
		}
		args = append(args, src.Path)
	}
	return args
}

// ModelArchive returns the archive holding the compiled model when Build is set.
func (o Options) ModelArchive() string {
	return filepath.Join(o.MDir, "V"+o.Top+"__ALL.a")
}
