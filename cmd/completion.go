package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for carebell.

To load completions:

Bash:
  $ source <(carebell completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ carebell completion bash > /etc/bash_completion.d/carebell
  # macOS:
  $ carebell completion bash > $(brew --prefix)/etc/bash_completion.d/carebell

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ carebell completion zsh > "${fpath[1]}/_carebell"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ carebell completion fish | source

  # To load completions for each session, execute once:
  $ carebell completion fish > ~/.config/fish/completions/carebell.fish
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
