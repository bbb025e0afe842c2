package util

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pkg/errors"
)

type Version struct {
	Major uint
	Minor uint
	Patch uint
}

// ToolVersion is the version of this tool. It is recorded in generated manifests.
var ToolVersion = Version{1, 0, 0}

var semverRe = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)$`)

// Verilator reports versions as "Verilator 5.020 2024-01-01 rev v5.020".
var verilatorRe = regexp.MustCompile(`Verilator\s+(\d+)\.(\d+)(?:\.(\d+))?`)

func parseParts(match []string) (Version, error) {
	parts := []uint{}
	for _, m := range match {
		if m == "" {
			parts = append(parts, 0)
			continue
		}
		part, err := strconv.ParseUint(m, 10, 32)
		if err != nil {
			return Version{}, err
		}
		parts = append(parts, uint(part))
	}
	for len(parts) < 3 {
		parts = append(parts, 0)
	}
	return Version{parts[0], parts[1], parts[2]}, nil
}

// NewVersion parses a "vMAJOR.MINOR.PATCH" string.
func NewVersion(s string) (Version, error) {
	match := semverRe.FindStringSubmatch(s)
	if match == nil {
		return Version{}, errors.Errorf("invalid version string %q", s)
	}
	return parseParts(match[1:])
}

// ParseVerilatorVersion extracts the version from the output of `verilator --version`.
func ParseVerilatorVersion(s string) (Version, error) {
	match := verilatorRe.FindStringSubmatch(s)
	if match == nil {
		return Version{}, errors.Errorf("no verilator version found in %q", s)
	}
	return parseParts(match[1:])
}

// AtLeast reports whether v is equal to or newer than major.minor.
func (v Version) AtLeast(major, minor uint) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

func (v Version) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}
