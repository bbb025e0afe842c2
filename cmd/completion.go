package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate completion script",
	Long: `To load completions:

Bash:

  $ source <(verilated completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ verilated completion bash > /etc/bash_completion.d/verilated
  # macOS:
  $ verilated completion bash > /usr/local/etc/bash_completion.d/verilated

Zsh:

  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ verilated completion zsh > "${fpath[1]}/_verilated"

  # You will need to start a new shell for this setup to take effect.

fish:

  $ verilated completion fish | source

  # To load completions for each session, execute once:
  $ verilated completion fish > ~/.config/fish/completions/verilated.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.ExactValidArgs(1),
	// Completion scripts do not depend on the configuration.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			cmd.Root().GenFishCompletion(os.Stdout, true)
		}
	},
	Hidden: true,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
