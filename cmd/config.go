package cmd

import (
	"fmt"

	"github.com/daedaleanai/verilated/log"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Args:  cobra.NoArgs,
	Short: "Prints the effective configuration",
	Long: `Prints the effective configuration after defaults, configuration file and
environment variables have been merged.`,
	Run: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	data, err := yaml.Marshal(settings)
	if err != nil {
		log.Fatal("Failed to encode configuration: %s.\n", err)
	}
	if settings.File != "" {
		fmt.Printf("# %s\n", settings.File)
	}
	fmt.Print(string(data))
}
