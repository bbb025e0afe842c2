package cmd

import (
	"os"
	"path/filepath"

	"github.com/daedaleanai/verilated/log"
	"github.com/daedaleanai/verilated/manifest"
	"github.com/daedaleanai/verilated/util"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Args:  cobra.NoArgs,
	Short: "Removes generated bindings",
	Long: `Removes the files listed in the manifest of the output directory and the
manifest itself. With --all the Verilator object directory is removed as well.`,
	Run: runClean,
}

var cleanAll bool

func init() {
	cleanCmd.Flags().BoolVarP(&cleanAll, "all", "a", false, "Also remove the Verilator object directory")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) {
	outDir := settings.OutDir
	manifestPath := filepath.Join(outDir, manifest.FileName)

	if util.FileExists(manifestPath) {
		m := readManifest(outDir)
		for _, mod := range m.Modules {
			for _, artifact := range mod.Artifacts {
				path := filepath.Join(outDir, filepath.FromSlash(artifact.Path))
				log.Debug("Removing '%s'.\n", path)
				if err := util.RemoveFile(path); err != nil {
					log.Error("%s.\n", err)
				}
			}
		}
		if err := util.RemoveFile(manifestPath); err != nil {
			log.Error("%s.\n", err)
		}
	} else {
		log.Debug("No manifest in '%s'.\n", outDir)
	}

	if cleanAll {
		objDir := settings.ObjDirPath()
		log.Debug("Removing object directory '%s'.\n", objDir)
		if err := os.RemoveAll(objDir); err != nil {
			log.Error("Failed to remove '%s': %s.\n", objDir, err)
		}
	}

	if log.ErrorOccured() {
		os.Exit(1)
	}
}
