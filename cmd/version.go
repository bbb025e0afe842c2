package cmd

import (
	"context"
	"fmt"

	"github.com/daedaleanai/verilated/log"
	"github.com/daedaleanai/verilated/util"
	"github.com/daedaleanai/verilated/verilator"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Args:  cobra.NoArgs,
	Short: "Prints the version of this tool",
	Long:  `Prints the version of this tool and of the Verilator installation it would use.`,
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("verilated %s\n", util.ToolVersion)

	v, err := verilator.Find(settings.Verilator.Root, settings.Verilator.Binary)
	if err != nil {
		log.Debug("%s.\n", err)
		return
	}
	version, err := v.Version(context.Background())
	if err != nil {
		log.Debug("%s.\n", err)
		return
	}
	fmt.Printf("verilator %s (%s)\n", version, v.Path)
}
