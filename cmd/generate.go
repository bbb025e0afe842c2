package cmd

import (
	"github.com/daedaleanai/verilated/gen"
	"github.com/daedaleanai/verilated/log"
	"github.com/daedaleanai/verilated/manifest"
	"github.com/daedaleanai/verilated/verilated"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [files or directories]",
	Short: "Generates the C++ shim and Go wrapper of every declared module",
	Long: `Generates the C++ shim and Go wrapper of every declared module.

Modules are read from the given Go files, or from all Go files in the given
directories. Without arguments the working directory is scanned. The generated
files and a manifest recording their digests are written to the output directory.`,
	Run: runGenerate,
}

var generateOutDir string
var generatePackage string
var generateTraceFormat string
var generateDryRun bool

func init() {
	generateCmd.Flags().StringVarP(&generateOutDir, "out", "o", "", "Output directory (overrides the configuration)")
	generateCmd.Flags().StringVarP(&generatePackage, "package", "p", "", "Package name of the wrappers (default: name of the output directory)")
	generateCmd.Flags().StringVar(&generateTraceFormat, "trace-format", "", "Trace format of the wrappers: vcd or fst")
	generateCmd.Flags().BoolVarP(&generateDryRun, "dry-run", "n", false, "Only list the files that would be written")
	rootCmd.AddCommand(generateCmd)
}

func generatorOptions(cmd *cobra.Command) gen.Options {
	opts := settings.GenOptions()
	if cmd.Flags().Changed("out") {
		opts.OutDir = generateOutDir
	}
	if cmd.Flags().Changed("package") {
		opts.Package = generatePackage
	}
	if cmd.Flags().Changed("trace-format") {
		format, err := verilated.ParseTraceFormat(generateTraceFormat)
		if err != nil {
			log.Fatal("%s.\n", err)
		}
		opts.TraceFormat = format
	}
	return opts
}

func runGenerate(cmd *cobra.Command, args []string) {
	modules, err := extractModules(args)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	if len(modules) == 0 {
		log.Warning("No module declarations found.\n")
		return
	}

	generator, err := gen.New(generatorOptions(cmd))
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	opts := generator.Options()

	if generateDryRun {
		artifacts, err := generator.Render(modules)
		if err != nil {
			log.Fatal("%s.\n", err)
		}
		if err := generator.CheckOutDir(modules); err != nil {
			log.Fatal("%s.\n", err)
		}
		for _, artifact := range artifacts {
			log.Log("%s\n", artifact.Path)
		}
		return
	}

	artifacts, err := generator.Generate(modules)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	if err := manifest.Write(opts.OutDir, manifest.Generate(opts, modules, artifacts)); err != nil {
		log.Fatal("%s.\n", err)
	}
	log.Success("Generated bindings for %d module(s) in package '%s'.\n", len(modules), opts.Package)
}
