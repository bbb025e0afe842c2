//go:build verilator

package native

/*
#include <stdlib.h>

void verilatedcov_write(const char* filename);
void verilatedcov_clear(void);
void verilatedcov_clear_non_match(const char* match);
void verilatedcov_zero(void);
*/
import "C"

import (
	"os"
	"path/filepath"
	"unsafe"

	"github.com/pkg/errors"
)

// DefaultCoverageFile is where Verilator tools look for coverage data.
const DefaultCoverageFile = "coverage.dat"

// WriteCoverage writes the coverage counters of models built with --coverage.
// The parent directory is created if needed.
func WriteCoverage(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0775); err != nil {
			return errors.Wrapf(err, "failed to create directory for '%s'", path)
		}
	}
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	C.verilatedcov_write(cpath)
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "coverage file '%s' was not written", path)
	}
	return nil
}

// ClearCoverage removes all coverage points.
func ClearCoverage() {
	C.verilatedcov_clear()
}

// ClearCoverageNonMatching removes the coverage points whose names do not contain `match`.
func ClearCoverageNonMatching(match string) {
	cmatch := C.CString(match)
	defer C.free(unsafe.Pointer(cmatch))
	C.verilatedcov_clear_non_match(cmatch)
}

// ZeroCoverage resets all counters to zero.
func ZeroCoverage() {
	C.verilatedcov_zero()
}
