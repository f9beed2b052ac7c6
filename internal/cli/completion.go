package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for releasecache.

Bash:
  $ source <(releasecache completion bash)

Zsh:
  $ releasecache completion zsh > "${fpath[1]}/_releasecache"

Fish:
  $ releasecache completion fish > ~/.config/fish/completions/releasecache.fish

PowerShell:
  PS> releasecache completion powershell | Out-String | Invoke-Expression

Repository arguments of check and store show complete from the registry.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}
}

// completeSlugs suggests registered repositories for a single slug argument.
func (c *CLI) completeSlugs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	a, err := c.openApp(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer a.Close()

	slugs, err := a.registry.Slugs(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return slugs, cobra.ShellCompDirectiveNoFileComp
}
