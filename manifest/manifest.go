// Package manifest records the outcome of a generation pass so that stale or
// hand-edited bindings can be detected without running the generator again.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/daedaleanai/verilated/gen"
	"github.com/daedaleanai/verilated/port"
	"github.com/daedaleanai/verilated/util"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// FileName is the name of the manifest in the output directory.
const FileName = "verilated.manifest.yaml"

type Artifact struct {
	Path   string `yaml:"path"`
	Digest string `yaml:"digest"`
}

type Module struct {
	Name      string     `yaml:"name"`
	Host      string     `yaml:"host"`
	Source    string     `yaml:"source,omitempty"`
	Ports     int        `yaml:"ports"`
	Artifacts []Artifact `yaml:"artifacts"`
}

type Manifest struct {
	ToolVersion string   `yaml:"toolVersion"`
	Package     string   `yaml:"package"`
	TraceFormat string   `yaml:"traceFormat"`
	ObjDir      string   `yaml:"objDir"`
	Modules     []Module `yaml:"modules"`
}

type ModuleDiff struct {
	New, Old         Module
	ChangedArtifacts []string
}

type DiffResult struct {
	Differ                       bool
	ToolVersion                  string
	Options                      []string
	ModifiedModules              []ModuleDiff
	AddedModules, RemovedModules []Module
}

// Reason tells why an artifact is stale.
type Reason int

const (
	Missing Reason = iota
	Modified
	Unlisted
)

func (r Reason) String() string {
	switch r {
	case Missing:
		return "missing"
	case Modified:
		return "modified"
	default:
		return "not in manifest"
	}
}

type Stale struct {
	Module string
	Path   string
	Reason Reason
}

// Generate builds the manifest of a generation pass. Artifacts are matched to
// their module by native name; the order of both lists is preserved.
func Generate(opts gen.Options, modules []port.Module, artifacts []gen.Artifact) Manifest {
	manifest := Manifest{
		ToolVersion: util.ToolVersion.String(),
		Package:     opts.Package,
		TraceFormat: string(opts.TraceFormat),
		ObjDir:      filepath.ToSlash(opts.ObjDir),
	}

	for _, m := range modules {
		entry := Module{
			Name:  m.NativeType,
			Host:  m.HostType,
			Ports: m.Ports.Len(),
		}
		if m.Pos.Filename != "" {
			entry.Source = filepath.ToSlash(m.Pos.Filename)
		}
		for _, a := range artifacts {
			if a.Module != m.NativeType {
				continue
			}
			entry.Artifacts = append(entry.Artifacts, Artifact{
				Path:   filepath.ToSlash(a.Path),
				Digest: util.Digest(a.Data),
			})
		}
		manifest.Modules = append(manifest.Modules, entry)
	}
	return manifest
}

// Write stores the manifest in `dir`.
func Write(dir string, manifest Manifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return errors.Wrap(err, "failed to encode manifest")
	}
	path := filepath.Join(dir, FileName)
	if util.SameContent(path, data) {
		return nil
	}
	return util.WriteFile(path, data)
}

// Read loads the manifest stored in `dir`.
func Read(dir string) (Manifest, error) {
	var manifest Manifest
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return manifest, errors.Wrapf(err, "failed to read manifest '%s'", path)
	}
	if err := yaml.UnmarshalStrict(data, &manifest); err != nil {
		return manifest, errors.Wrapf(err, "failed to parse manifest '%s'", path)
	}
	return manifest, nil
}

// Check compares the artifacts listed in the manifest with the files in `dir`.
// Generated files that exist in `dir` but are not listed are reported too when
// `extra` names them.
func Check(dir string, manifest Manifest, extra ...string) ([]Stale, error) {
	stale := []Stale{}
	listed := map[string]bool{}
	for _, m := range manifest.Modules {
		for _, a := range m.Artifacts {
			listed[a.Path] = true
			path := filepath.Join(dir, filepath.FromSlash(a.Path))
			if !util.FileExists(path) {
				stale = append(stale, Stale{m.Name, a.Path, Missing})
				continue
			}
			digest, err := util.FileDigest(path)
			if err != nil {
				return nil, err
			}
			if digest != a.Digest {
				stale = append(stale, Stale{m.Name, a.Path, Modified})
			}
		}
	}
	for _, path := range extra {
		if !listed[filepath.ToSlash(path)] {
			stale = append(stale, Stale{"", path, Unlisted})
		}
	}
	return stale, nil
}

func diffModule(newMod, oldMod Module) (ModuleDiff, bool) {
	diff := ModuleDiff{New: newMod, Old: oldMod}
	oldDigests := map[string]string{}
	for _, a := range oldMod.Artifacts {
		oldDigests[a.Path] = a.Digest
	}
	for _, a := range newMod.Artifacts {
		if digest, ok := oldDigests[a.Path]; !ok || digest != a.Digest {
			diff.ChangedArtifacts = append(diff.ChangedArtifacts, a.Path)
		}
		delete(oldDigests, a.Path)
	}
	for _, path := range util.OrderedKeys(oldDigests) {
		diff.ChangedArtifacts = append(diff.ChangedArtifacts, path)
	}
	changed := len(diff.ChangedArtifacts) > 0 || newMod.Host != oldMod.Host || newMod.Ports != oldMod.Ports
	return diff, changed
}

// Diff lists the differences between two manifests per module.
func Diff(manifestNew, manifestOld Manifest) DiffResult {
	result := DiffResult{}

	if manifestNew.ToolVersion != manifestOld.ToolVersion {
		result.Differ = true
		result.ToolVersion = "Tool version changed from " + manifestOld.ToolVersion + " to " + manifestNew.ToolVersion
	}
	if manifestNew.Package != manifestOld.Package {
		result.Options = append(result.Options, "package changed from "+manifestOld.Package+" to "+manifestNew.Package)
	}
	if manifestNew.TraceFormat != manifestOld.TraceFormat {
		result.Options = append(result.Options, "trace format changed from "+manifestOld.TraceFormat+" to "+manifestNew.TraceFormat)
	}
	if manifestNew.ObjDir != manifestOld.ObjDir {
		result.Options = append(result.Options, "object directory changed from "+manifestOld.ObjDir+" to "+manifestNew.ObjDir)
	}
	if len(result.Options) > 0 {
		result.Differ = true
	}

	oldModules := map[string]Module{}
	for _, mod := range manifestOld.Modules {
		oldModules[mod.Name] = mod
	}

	for _, newMod := range manifestNew.Modules {
		oldMod, found := oldModules[newMod.Name]
		if !found {
			result.AddedModules = append(result.AddedModules, newMod)
			result.Differ = true
			continue
		}
		delete(oldModules, newMod.Name)
		if diff, changed := diffModule(newMod, oldMod); changed {
			result.ModifiedModules = append(result.ModifiedModules, diff)
			result.Differ = true
		}
	}

	// Iterate the old list so removed modules keep their order.
	for _, oldMod := range manifestOld.Modules {
		if _, removed := oldModules[oldMod.Name]; removed {
			result.RemovedModules = append(result.RemovedModules, oldMod)
			result.Differ = true
		}
	}
	return result
}
