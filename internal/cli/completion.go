package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the shell completion generator.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell.

Load it for the current session:

  bash:        source <(lumen completion bash)
  zsh:         source <(lumen completion zsh)
  fish:        lumen completion fish | source
  powershell:  lumen completion powershell | Out-String | Invoke-Expression

Or install it permanently:

  bash (Linux):  lumen completion bash > /etc/bash_completion.d/lumen
  bash (macOS):  lumen completion bash > $(brew --prefix)/etc/bash_completion.d/lumen
  zsh:           lumen completion zsh > "${fpath[1]}/_lumen"
  fish:          lumen completion fish > ~/.config/fish/completions/lumen.fish

Zsh users may first need: echo "autoload -U compinit; compinit" >> ~/.zshrc`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}
