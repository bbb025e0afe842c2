// Package gen renders the C++ shim and the Go wrapper of extracted modules.
//
// Generation is a pure function of the modules and the options: rendering the
// same input twice yields identical bytes. The generator never runs Verilator.
package gen

import (
	"bytes"
	"go/format"
	"path/filepath"

	"github.com/daedaleanai/verilated/assets"
	"github.com/daedaleanai/verilated/log"
	"github.com/daedaleanai/verilated/port"
	"github.com/daedaleanai/verilated/util"

	"github.com/pkg/errors"
)

// ErrSourceOverlap is wrapped by the *port.ConfigurationError returned when the
// output directory holds a module declaration.
var ErrSourceOverlap = errors.New("output directory contains the module declaration")

// Artifact is one generated file.
type Artifact struct {
	// Path is relative to the output directory.
	Path   string
	Data   []byte
	Module string
}

// Generator renders and writes bindings.
type Generator struct {
	opts Options
}

// New validates the options and returns a generator.
func New(opts Options) (*Generator, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Generator{opts: opts}, nil
}

// Options returns the options with defaults applied.
func (g *Generator) Options() Options {
	return g.opts
}

// Render renders the shim and the wrapper of every module without touching
// the file system. Artifacts are returned in module order, the shim first.
func (g *Generator) Render(modules []port.Module) ([]Artifact, error) {
	hosts := util.NewOrderedMap[string, port.Module]()
	natives := util.NewOrderedMap[string, port.Module]()
	artifacts := []Artifact{}
	for _, m := range modules {
		if err := hosts.Insert(m.HostType, m); err != nil {
			return nil, &port.ConfigurationError{Pos: m.Pos, Type: m.HostType, Err: port.ErrInvalidName, Detail: "type is declared twice in package " + g.opts.Package}
		}
		if err := natives.Insert(m.NativeType, m); err != nil {
			return nil, &port.ConfigurationError{Pos: m.Pos, Type: m.HostType, Err: port.ErrDuplicateModule, Detail: "'" + m.NativeType + "'"}
		}

		binding, err := NewBinding(m, g.opts)
		if err != nil {
			return nil, err
		}
		log.Debug("Rendering module '%s' (%d ports).\n", m.NativeType, m.Ports.Len())

		shim, err := renderShim(binding)
		if err != nil {
			return nil, err
		}
		wrapper, err := renderWrapper(binding)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts,
			Artifact{Path: binding.ShimFile(), Data: shim, Module: m.NativeType},
			Artifact{Path: binding.WrapperFile(), Data: wrapper, Module: m.NativeType},
		)
	}
	return artifacts, nil
}

// CheckOutDir rejects an output directory that holds the declaration of one of
// the modules. The wrapper would either replace the declaration or redeclare
// its type in the same package.
func (g *Generator) CheckOutDir(modules []port.Module) error {
	outDir, err := canonicalPath(g.opts.OutDir)
	if err != nil {
		return err
	}
	for _, m := range modules {
		if m.Pos.Filename == "" {
			continue
		}
		source, err := canonicalPath(m.Pos.Filename)
		if err != nil {
			return err
		}
		if filepath.Dir(source) == outDir {
			return &port.ConfigurationError{
				Pos:    m.Pos,
				Type:   m.HostType,
				Err:    ErrSourceOverlap,
				Detail: "choose another output directory than '" + g.opts.OutDir + "'",
			}
		}
	}
	return nil
}

// canonicalPath returns the absolute path with symbolic links resolved as far
// as the path exists.
func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve '%s'", path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	dir, base := filepath.Split(abs)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return filepath.Join(resolved, base), nil
	}
	return abs, nil
}

// Generate renders all modules and writes the artifacts to the output
// directory. Nothing is written unless every module renders and the output
// directory holds none of their declarations. If a write fails, the files
// written by this call are removed again.
func (g *Generator) Generate(modules []port.Module) ([]Artifact, error) {
	artifacts, err := g.Render(modules)
	if err != nil {
		return nil, err
	}
	if err := g.CheckOutDir(modules); err != nil {
		return nil, err
	}

	written := []string{}
	for _, artifact := range artifacts {
		path := filepath.Join(g.opts.OutDir, artifact.Path)
		if util.SameContent(path, artifact.Data) {
			log.Debug("'%s' is up to date.\n", path)
			continue
		}
		if err := util.WriteFile(path, artifact.Data); err != nil {
			for _, w := range written {
				if rmErr := util.RemoveFile(w); rmErr != nil {
					log.Warning("%s.\n", rmErr)
				}
			}
			return nil, err
		}
		log.Debug("Wrote '%s'.\n", path)
		written = append(written, path)
	}
	return artifacts, nil
}

func renderShim(b *Binding) ([]byte, error) {
	var buf bytes.Buffer
	if err := assets.Templates.ExecuteTemplate(&buf, assets.ShimTemplate, b.shimParams()); err != nil {
		return nil, errors.Wrapf(err, "failed to render shim of '%s'", b.Module.NativeType)
	}
	return buf.Bytes(), nil
}

func renderWrapper(b *Binding) ([]byte, error) {
	var buf bytes.Buffer
	if err := assets.Templates.ExecuteTemplate(&buf, assets.WrapperTemplate, b.wrapperParams()); err != nil {
		return nil, errors.Wrapf(err, "failed to render wrapper of '%s'", b.Module.NativeType)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "generated wrapper of '%s' is not valid Go", b.Module.NativeType)
	}
	return formatted, nil
}
