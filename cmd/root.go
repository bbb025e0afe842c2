package cmd

import (
	"os"

	"github.com/daedaleanai/verilated/config"
	"github.com/daedaleanai/verilated/log"

	"github.com/spf13/cobra"
)

var configFile string

// settings is loaded before any command runs.
var settings config.Config

var rootCmd = &cobra.Command{
	Use:   "verilated",
	Short: "Go bindings for Verilator models",
	Long: `verilated generates Go bindings for hardware modules simulated with Verilator.

Modules are declared as Go structs whose doc comment carries the directive
"//verilated:module [name]" and whose fields are tagged with their port role.
For every module a C++ shim and a cgo wrapper are generated; the wrapper is
driven through the github.com/daedaleanai/verilated/verilated runtime.`,
	PersistentPreRun: loadSettings,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Print debug output")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file (default: "+config.FileName+" in the working or user configuration directory)")
	if rootCmd.Execute() != nil {
		os.Exit(1)
	}
}

func loadSettings(cmd *cobra.Command, args []string) {
	var err error
	settings, err = config.Load(configFile)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
}
