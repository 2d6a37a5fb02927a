package cli

import "github.com/spf13/cobra"

// completionShells maps each supported shell to its cobra generator.
var completionShells = map[string]func(root *cobra.Command, c *CLI) error{
	"bash":       func(root *cobra.Command, c *CLI) error { return root.GenBashCompletionV2(c.out, true) },
	"zsh":        func(root *cobra.Command, c *CLI) error { return root.GenZshCompletion(c.out) },
	"fish":       func(root *cobra.Command, c *CLI) error { return root.GenFishCompletion(c.out, true) },
	"powershell": func(root *cobra.Command, c *CLI) error { return root.GenPowerShellCompletionWithDesc(c.out) },
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Print a shell completion script",
		Long: `Print a completion script for bash, zsh, fish or powershell.

Load it into the current shell, or write it wherever your shell picks up
completions:

  source <(sharechart completion bash)
  sharechart completion zsh > "${fpath[1]}/_sharechart"
  sharechart completion fish > ~/.config/fish/completions/sharechart.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), c)
		},
	}
}
