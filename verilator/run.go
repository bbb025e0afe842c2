package verilator

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/daedaleanai/verilated/log"
	"github.com/daedaleanai/verilated/util"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// RootEnv is the environment variable naming the Verilator installation.
const RootEnv = "VERILATOR_ROOT"

// Verilator is a located Verilator executable.
type Verilator struct {
	Path string
	// Root is the installation the executable was found in. It is empty when
	// the executable was found on PATH.
	Root string
}

// Find locates the Verilator executable. A configured `root` is tried first,
// then $VERILATOR_ROOT and finally PATH. In an installation root both
// bin/<binary> and bin/verilator_bin are accepted. A `binary` containing a path
// separator is used as is.
func Find(root, binary string) (*Verilator, error) {
	if binary == "" {
		binary = "verilator"
	}
	root, err := homedir.Expand(root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to expand '%s'", root)
	}

	if strings.ContainsRune(binary, filepath.Separator) {
		path, err := homedir.Expand(binary)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to expand '%s'", binary)
		}
		if !util.FileExists(path) {
			return nil, errors.Errorf("verilator executable '%s' does not exist", path)
		}
		return &Verilator{Path: path, Root: root}, nil
	}

	for _, r := range []string{root, os.Getenv(RootEnv)} {
		if r == "" {
			continue
		}
		for _, name := range []string{binary, "verilator_bin"} {
			path := filepath.Join(r, "bin", name)
			if util.FileExists(path) {
				log.Debug("Using verilator at '%s'.\n", path)
				return &Verilator{Path: path, Root: r}, nil
			}
		}
	}

	for _, name := range []string{binary, "verilator_bin"} {
		if path, err := exec.LookPath(name); err == nil {
			log.Debug("Using verilator from PATH at '%s'.\n", path)
			return &Verilator{Path: path}, nil
		}
	}
	return nil, errors.Errorf("could not find '%s': set %s or add it to PATH", binary, RootEnv)
}

func (v *Verilator) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, v.Path, args...)
	// Children of a killed verilator may keep its output pipes open.
	cmd.WaitDelay = time.Second
	if v.Root != "" {
		cmd.Env = append(os.Environ(), RootEnv+"="+v.Root)
	}
	return cmd
}

func (v *Verilator) output(ctx context.Context, args ...string) (string, error) {
	var stderr bytes.Buffer
	cmd := v.command(ctx, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", errors.Wrapf(err, "'%s %s' failed: %s", v.Path, strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(string(out)), nil
}

// Version runs `verilator --version`.
func (v *Verilator) Version(ctx context.Context) (util.Version, error) {
	out, err := v.output(ctx, "--version")
	if err != nil {
		return util.Version{}, err
	}
	return util.ParseVerilatorVersion(out)
}

// GetRoot asks the executable for its installation root.
func (v *Verilator) GetRoot(ctx context.Context) (string, error) {
	out, err := v.output(ctx, "--getenv", RootEnv)
	if err != nil {
		return "", err
	}
	if out == "" {
		if v.Root != "" {
			return v.Root, nil
		}
		return "", errors.Errorf("'%s' does not know its %s", v.Path, RootEnv)
	}
	return out, nil
}

// Verilate runs Verilator with the given options. Output of the tool is copied
// to `stdout` and `stderr`, either of which may be nil.
func (v *Verilator) Verilate(ctx context.Context, opts Options, stdout, stderr io.Writer) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if err := util.MkdirAll(opts.MDir); err != nil {
		return err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := opts.Args()
	log.Debug("Running verilator command: '%s %s'\n", v.Path, strings.Join(args, " "))

	var captured bytes.Buffer
	cmd := v.command(ctx, args...)
	cmd.Stdout = stdout
	if stderr != nil {
		cmd.Stderr = io.MultiWriter(stderr, &captured)
	} else {
		cmd.Stderr = &captured
	}
	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return errors.Errorf("verilator did not finish within %s", timeout)
	}
	if err != nil {
		return errors.Wrapf(err, "verilator failed for top module '%s': %s", opts.Top, strings.TrimSpace(captured.String()))
	}
	if opts.Build && !util.FileExists(opts.ModelArchive()) {
		return errors.Errorf("verilator did not produce '%s'", opts.ModelArchive())
	}
	return nil
}

// CgoEnv returns the cgo environment needed to build the native runtime
// package against the installation in `root` and the runtime library Verilator
// built into `mdir`.
func CgoEnv(root, mdir string) ([]string, error) {
	mdir, err := filepath.Abs(mdir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve '%s'", mdir)
	}
	include := filepath.Join(root, "include")
	return []string{
		"CGO_CXXFLAGS=-I" + include + " -I" + filepath.Join(include, "vltstd"),
		"CGO_LDFLAGS=" + filepath.Join(mdir, "libverilated.a"),
	}, nil
}

// Env is CgoEnv for the root reported by the executable.
func (v *Verilator) Env(ctx context.Context, mdir string) ([]string, error) {
	root, err := v.GetRoot(ctx)
	if err != nil {
		return nil, err
	}
	return CgoEnv(root, mdir)
}
