// Package config loads the settings of the verilated tool.
//
// Settings are layered: built-in defaults, the file verilated.yaml (found in
// the working directory or the user configuration directory, or given
// explicitly) and VERILATED_* environment variables, e.g.
// VERILATED_TRACEFORMAT=fst or VERILATED_VERILATOR_ROOT=/opt/verilator.
// The merged settings are validated against an embedded CUE schema.
package config

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/daedaleanai/verilated/gen"
	"github.com/daedaleanai/verilated/log"
	"github.com/daedaleanai/verilated/verilated"
	"github.com/daedaleanai/verilated/verilator"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//go:embed schema.cue
var schemaSource []byte

const (
	configName = "verilated"
	configType = "yaml"
	envPrefix  = "VERILATED"
	// FileName is the name of the configuration file.
	FileName = configName + "." + configType
)

type Verilator struct {
	Root       string        `mapstructure:"root" yaml:"root" json:"root,omitempty"`
	Binary     string        `mapstructure:"binary" yaml:"binary" json:"binary"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
	Top        string        `mapstructure:"top" yaml:"top,omitempty" json:"top,omitempty"`
	Sources    []string      `mapstructure:"sources" yaml:"sources,omitempty" json:"sources,omitempty"`
	Flags      []string      `mapstructure:"flags" yaml:"flags,omitempty" json:"flags,omitempty"`
	Warnings   []string      `mapstructure:"warnings" yaml:"warnings,omitempty" json:"warnings,omitempty"`
	// Defines are NAME or NAME=VALUE. A list keeps the case of the names.
	Defines    []string      `mapstructure:"defines" yaml:"defines,omitempty" json:"defines,omitempty"`
	SearchDirs []string      `mapstructure:"searchdirs" yaml:"searchDirs,omitempty" json:"searchDirs,omitempty"`
	Standard   string        `mapstructure:"standard" yaml:"standard,omitempty" json:"standard,omitempty"`
	Coverage   bool          `mapstructure:"coverage" yaml:"coverage" json:"coverage"`
	Trace      bool          `mapstructure:"trace" yaml:"trace" json:"trace"`
	Build      bool          `mapstructure:"build" yaml:"build" json:"build"`
}

type Config struct {
	OutDir      string    `mapstructure:"outdir" yaml:"outDir" json:"outDir"`
	Package     string    `mapstructure:"package" yaml:"package,omitempty" json:"package,omitempty"`
	TraceFormat string    `mapstructure:"traceformat" yaml:"traceFormat" json:"traceFormat"`
	ObjDir      string    `mapstructure:"objdir" yaml:"objDir" json:"objDir"`
	IncludeDirs []string  `mapstructure:"includedirs" yaml:"includeDirs,omitempty" json:"includeDirs,omitempty"`
	LDFlags     []string  `mapstructure:"ldflags" yaml:"ldFlags,omitempty" json:"ldFlags,omitempty"`
	CXXStandard string    `mapstructure:"cxxstandard" yaml:"cxxStandard" json:"cxxStandard"`
	Verilator   Verilator `mapstructure:"verilator" yaml:"verilator" json:"verilator"`

	// File is the configuration file the settings were read from, if any.
	File string `mapstructure:"-" yaml:"-" json:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("outdir", ".")
	v.SetDefault("package", "")
	v.SetDefault("traceformat", string(verilated.VCD))
	v.SetDefault("objdir", gen.DefaultObjDir)
	v.SetDefault("includedirs", []string{})
	v.SetDefault("ldflags", []string{})
	v.SetDefault("cxxstandard", "c++17")
	v.SetDefault("verilator.root", "")
	v.SetDefault("verilator.binary", "verilator")
	v.SetDefault("verilator.timeout", verilator.DefaultTimeout)
	v.SetDefault("verilator.top", "")
	v.SetDefault("verilator.sources", []string{})
	v.SetDefault("verilator.flags", []string{})
	v.SetDefault("verilator.warnings", []string{})
	v.SetDefault("verilator.defines", []string{})
	v.SetDefault("verilator.searchdirs", []string{})
	v.SetDefault("verilator.standard", "")
	v.SetDefault("verilator.coverage", false)
	v.SetDefault("verilator.trace", true)
	v.SetDefault("verilator.build", true)
}

// Dir returns the user configuration directory: $VERILATED_CONFIG_DIR,
// $XDG_CONFIG_HOME/verilated or ~/.config/verilated.
func Dir() (string, error) {
	if dir, ok := os.LookupEnv(envPrefix + "_CONFIG_DIR"); ok {
		return homedir.Expand(dir)
	}
	if xdgConfigHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		return filepath.Join(xdgConfigHome, configName), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "unable to locate the configuration directory")
	}
	return filepath.Join(home, ".config", configName), nil
}

func newViper(file string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType(configType)
	if file != "" {
		path, err := homedir.Expand(file)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to expand '%s'", file)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		} else {
			log.Debug("%s. Not looking for a user configuration.\n", err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

// Load reads the configuration. An explicitly given `file` must exist;
// otherwise a missing configuration file means defaults.
func Load(file string) (Config, error) {
	var config Config

	v, err := newViper(file)
	if err != nil {
		return config, err
	}
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || file != "" {
			return config, errors.Wrap(err, "failed to read configuration")
		}
		log.Debug("No configuration file found. Using default configuration.\n")
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "failed to decode configuration")
	}
	config.File = v.ConfigFileUsed()
	if err := config.expandPaths(); err != nil {
		return config, err
	}
	if err := config.Validate(); err != nil {
		return config, err
	}

	if config.File != "" {
		log.Debug("Loaded configuration from '%s'.\n", config.File)
	}
	log.Debug("Running with configuration: %+v\n", config)
	return config, nil
}

func expandAll(paths []string) ([]string, error) {
	expanded := []string{}
	for _, p := range paths {
		e, err := homedir.Expand(p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to expand '%s'", p)
		}
		expanded = append(expanded, e)
	}
	return expanded, nil
}

func (c *Config) expandPaths() error {
	var err error
	for _, p := range []*string{&c.OutDir, &c.ObjDir, &c.Verilator.Root, &c.Verilator.Binary} {
		if *p, err = homedir.Expand(*p); err != nil {
			return errors.Wrap(err, "failed to expand path")
		}
	}
	for _, l := range []*[]string{&c.IncludeDirs, &c.Verilator.Sources, &c.Verilator.SearchDirs} {
		if *l, err = expandAll(*l); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the settings against the configuration schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource)
	if schema.Err() != nil {
		return errors.Wrap(schema.Err(), "failed to compile configuration schema")
	}

	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to encode configuration")
	}
	value := ctx.CompileBytes(data)
	if value.Err() != nil {
		return errors.Wrap(value.Err(), "failed to compile configuration")
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// GenOptions returns the options of a generation pass.
func (c Config) GenOptions() gen.Options {
	return gen.Options{
		OutDir:      c.OutDir,
		Package:     c.Package,
		TraceFormat: verilated.TraceFormat(c.TraceFormat),
		ObjDir:      c.ObjDir,
		IncludeDirs: c.IncludeDirs,
		LDFlags:     c.LDFlags,
		CXXStandard: c.CXXStandard,
	}
}

// ObjDirPath returns the Verilator output directory. A relative ObjDir is
// relative to OutDir.
func (c Config) ObjDirPath() string {
	if filepath.IsAbs(c.ObjDir) {
		return c.ObjDir
	}
	return filepath.Join(c.OutDir, c.ObjDir)
}

// VerilatorOptions returns the options of a Verilator run for `top`. When top
// is empty the configured top module is used.
func (c Config) VerilatorOptions(top string) verilator.Options {
	if top == "" {
		top = c.Verilator.Top
	}
	sources := []verilator.Source{}
	for _, path := range c.Verilator.Sources {
		sources = append(sources, verilator.Source{Path: path})
	}
	defines := map[string]string{}
	for _, define := range c.Verilator.Defines {
		name, value, _ := strings.Cut(define, "=")
		defines[name] = value
	}
	return verilator.Options{
		Top:        top,
		Sources:    sources,
		MDir:       c.ObjDirPath(),
		Coverage:   c.Verilator.Coverage,
		Trace:      c.Verilator.Trace,
		Format:     verilated.TraceFormat(c.TraceFormat),
		Build:      c.Verilator.Build,
		Warnings:   c.Verilator.Warnings,
		SearchDirs: c.Verilator.SearchDirs,
		Defines:    defines,
		Standard:   verilator.Standard(c.Verilator.Standard),
		Flags:      c.Verilator.Flags,
		Timeout:    c.Verilator.Timeout,
	}
}
