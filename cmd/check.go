package cmd

import (
	"github.com/daedaleanai/verilated/gen"
	"github.com/daedaleanai/verilated/log"
	"github.com/daedaleanai/verilated/manifest"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [files or directories]",
	Short: "Checks that the generated bindings are up to date",
	Long: `Checks that the generated bindings are up to date.

The files recorded in the manifest of the output directory are compared with
their digests. When module sources are given, the bindings are also rendered
again and compared with the manifest. The command fails if anything is stale.`,
	Run: runCheck,
}

var checkOutDir string

func init() {
	checkCmd.Flags().StringVarP(&checkOutDir, "out", "o", "", "Output directory (overrides the configuration)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) {
	opts := settings.GenOptions()
	if cmd.Flags().Changed("out") {
		opts.OutDir = checkOutDir
	}

	recorded := readManifest(opts.OutDir)
	stale, err := manifest.Check(opts.OutDir, recorded)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	for _, s := range stale {
		log.Error("%s: %s.\n", s.Path, s.Reason)
	}

	upToDate := len(stale) == 0
	if len(args) > 0 {
		modules, err := extractModules(args)
		if err != nil {
			log.Fatal("%s.\n", err)
		}
		// The package recorded in the manifest wins over the default name.
		if opts.Package == "" {
			opts.Package = recorded.Package
		}
		generator, err := gen.New(opts)
		if err != nil {
			log.Fatal("%s.\n", err)
		}
		artifacts, err := generator.Render(modules)
		if err != nil {
			log.Fatal("%s.\n", err)
		}
		diff := manifest.Diff(manifest.Generate(generator.Options(), modules, artifacts), recorded)
		if diff.Differ {
			printDiff(diff)
			upToDate = false
		}
	}

	if !upToDate {
		log.Fatal("Bindings in '%s' are out of date. Run 'verilated generate'.\n", opts.OutDir)
	}
	log.Success("Bindings in '%s' are up to date.\n", opts.OutDir)
}
