package cmd

import (
	"path/filepath"

	"github.com/daedaleanai/verilated/log"
	"github.com/daedaleanai/verilated/manifest"

	"github.com/spf13/cobra"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Args:  cobra.NoArgs,
	Short: "Shows or diffs generation manifests",
	Long:  `Shows or diffs generation manifests.`,
}

func init() {
	diffCommand := &cobra.Command{
		Use:   "diff [newDir] oldDir",
		Args:  cobra.RangeArgs(1, 2),
		Short: "Diffs the manifests of two output directories and lists their differences per module",
		Long: `Diffs the manifests of two output directories and lists their differences per module.
If [newDir] is omitted, the output directory of the configuration is used.`,
		Run: runManifestDiff,
	}
	manifestCmd.AddCommand(diffCommand)

	showCommand := &cobra.Command{
		Use:   "show [dir]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Lists the modules and artifacts recorded in a manifest",
		Long:  `Lists the modules and artifacts recorded in a manifest.`,
		Run:   runManifestShow,
	}
	manifestCmd.AddCommand(showCommand)

	rootCmd.AddCommand(manifestCmd)
}

func readManifest(dir string) manifest.Manifest {
	m, err := manifest.Read(dir)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	return m
}

func runManifestDiff(cmd *cobra.Command, args []string) {
	newDir := settings.OutDir
	oldDir := args[0]
	if len(args) == 2 {
		newDir = args[0]
		oldDir = args[1]
	}
	printDiff(manifest.Diff(readManifest(newDir), readManifest(oldDir)))
}

func printDiff(diff manifest.DiffResult) {
	log.IndentationLevel = 0

	if !diff.Differ {
		log.Log("Manifests are identical.\n")
		return
	}

	if diff.ToolVersion != "" {
		log.Log("%s\n", diff.ToolVersion)
	}
	for _, option := range diff.Options {
		log.Log("Option %s\n", option)
	}

	if len(diff.AddedModules) != 0 {
		log.Log("Added modules:\n")
		for _, addedMod := range diff.AddedModules {
			printModule(addedMod)
		}
		log.Log("\n")
	}

	if len(diff.RemovedModules) != 0 {
		log.Log("Removed modules:\n")
		for _, removedMod := range diff.RemovedModules {
			printModule(removedMod)
		}
		log.Log("\n")
	}

	if len(diff.ModifiedModules) != 0 {
		log.Log("Modified modules:\n")
		for _, modifiedMod := range diff.ModifiedModules {
			log.IndentationLevel = 1
			log.Log("%s:\n", modifiedMod.New.Name)
			log.IndentationLevel = 2
			if modifiedMod.New.Host != modifiedMod.Old.Host {
				log.Log("Host type changed from %q to %q\n", modifiedMod.Old.Host, modifiedMod.New.Host)
			}
			if modifiedMod.New.Ports != modifiedMod.Old.Ports {
				log.Log("Port count changed from %d to %d\n", modifiedMod.Old.Ports, modifiedMod.New.Ports)
			}
			for _, path := range modifiedMod.ChangedArtifacts {
				log.Log("%s changed\n", path)
			}
			log.IndentationLevel = 0
		}
		log.Log("\n")
	}
}

func printModule(m manifest.Module) {
	log.IndentationLevel = 1
	log.Log("%s:\n", m.Name)
	log.IndentationLevel = 2
	log.Log("Host: %s\n", m.Host)
	if m.Source != "" {
		log.Log("Source: %s\n", m.Source)
	}
	log.Log("Ports: %d\n", m.Ports)
	for _, artifact := range m.Artifacts {
		digest := artifact.Digest
		if len(digest) > 12 {
			digest = digest[:12]
		}
		log.Log("%s %s\n", digest, artifact.Path)
	}
	log.IndentationLevel = 0
}

func runManifestShow(cmd *cobra.Command, args []string) {
	dir := settings.OutDir
	if len(args) == 1 {
		dir = args[0]
	}
	m := readManifest(dir)
	log.Log("Manifest %s\n", filepath.Join(dir, manifest.FileName))
	log.Log("Tool version: %s\n", m.ToolVersion)
	log.Log("Package: %s\n", m.Package)
	log.Log("Trace format: %s\n", m.TraceFormat)
	log.Log("Object directory: %s\n", m.ObjDir)
	for _, mod := range m.Modules {
		printModule(mod)
	}
}
