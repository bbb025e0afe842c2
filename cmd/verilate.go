package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/daedaleanai/verilated/log"
	"github.com/daedaleanai/verilated/verilated"
	"github.com/daedaleanai/verilated/verilator"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var verilateCmd = &cobra.Command{
	Use:   "verilate [HDL files]",
	Short: "Runs Verilator to build the model of a top module",
	Long: `Runs Verilator to build the C++ model of a top module into the object directory.

Sources, flags and the top module default to the verilator section of the
configuration. With --env the cgo environment needed to build programs using
the native runtime is printed instead, in a form suitable for eval.`,
	Run: runVerilate,
}

var verilateTop string
var verilateRoot string
var verilateEnv bool

func init() {
	verilateCmd.Flags().StringVarP(&verilateTop, "top", "t", "", "Top module (overrides the configuration)")
	verilateCmd.Flags().StringVar(&verilateRoot, "root", "", "Verilator installation (default: $"+verilator.RootEnv+" or PATH)")
	verilateCmd.Flags().BoolVar(&verilateEnv, "env", false, "Print CGO_CXXFLAGS and CGO_LDFLAGS for the native runtime")
	rootCmd.AddCommand(verilateCmd)
}

func runVerilate(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := settings.Verilator.Root
	if cmd.Flags().Changed("root") {
		root = verilateRoot
	}
	v, err := verilator.Find(root, settings.Verilator.Binary)
	if err != nil {
		log.Fatal("%s.\n", err)
	}

	opts := settings.VerilatorOptions(verilateTop)
	if verilateEnv {
		env, err := v.Env(ctx, opts.MDir)
		if err != nil {
			log.Fatal("%s.\n", err)
		}
		for _, e := range env {
			key, value, _ := strings.Cut(e, "=")
			fmt.Printf("export %s=%q\n", key, value)
		}
		return
	}

	if len(args) > 0 {
		opts.Sources = nil
		for _, arg := range args {
			if !verilator.IsVerilog(arg) {
				log.Warning("'%s' does not look like a Verilog source.\n", arg)
			}
			opts.Sources = append(opts.Sources, verilator.Source{Path: arg})
		}
	}

	version, err := v.Version(ctx)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	log.Debug("Found Verilator %s at '%s'.\n", version, v.Path)
	if opts.Format == verilated.FST && !version.AtLeast(4, 0) {
		log.Warning("Verilator %s may not support FST traces.\n", version)
	}

	var stdout, stderr io.Writer
	var progress *spinner.Spinner
	if log.Verbose {
		stdout, stderr = os.Stdout, os.Stderr
	} else {
		progress = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		progress.Writer = os.Stderr
		progress.Suffix = fmt.Sprintf(" Verilating %s...", opts.Top)
		progress.Start()
	}

	start := time.Now()
	err = v.Verilate(ctx, opts, stdout, stderr)
	if progress != nil {
		progress.Stop()
	}
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	log.Success("Built model V%s in '%s' (%s).\n", opts.Top, opts.MDir, time.Since(start).Round(time.Millisecond))
}
