package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/daedaleanai/verilated/port"
	"github.com/daedaleanai/verilated/util"

	"github.com/pkg/errors"
)

// goSources expands the arguments to the Go files that may declare modules.
// Directories contribute their non-test Go files. Without arguments the
// working directory is scanned.
func goSources(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}
	files := []string{}
	for _, arg := range args {
		stat, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read '%s'", arg)
		}
		if !stat.IsDir() {
			files = append(files, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.go"))
		if err != nil {
			return nil, err
		}
		files = append(files, util.FilteredSlice(matches, func(match string) bool {
			return !strings.HasSuffix(match, "_test.go")
		})...)
	}
	return files, nil
}

func extractModules(args []string) ([]port.Module, error) {
	files, err := goSources(args)
	if err != nil {
		return nil, err
	}
	return port.ExtractFiles(files...)
}
