package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/berrythewa/clippaste/internal/paste"
	"github.com/berrythewa/clippaste/internal/types"
)

func newConvertCmd() *cobra.Command {
	var (
		envName      string
		terminalName string
	)

	cmd := &cobra.Command{
		Use:   "convert [path...]",
		Short: "Convert Windows paths for a terminal",
		Long: `Convert the given paths the same way a paste would, without touching the
clipboard. The environment defaults to the one detected for this host.

Examples:
  clippaste convert 'C:\Users\me\notes.txt'
  clippaste convert --env windows --terminal-name "Ubuntu (WSL)" 'D:\data'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireConfig()
			if err != nil {
				return err
			}

			env := resolveEnv(c)
			if envName != "" {
				env, err = types.ParseEnvironment(envName)
				if err != nil {
					return err
				}
			}

			terminal := types.Terminal{Name: terminalName}
			if terminal.Name == "" {
				terminal.Name = c.Paste.TerminalName
			}

			converted := paste.ConvertAll(args, env, terminal)
			fmt.Fprint(cmd.OutOrStdout(), strings.Join(converted, " "))
			return nil
		},
	}

	cmd.Flags().StringVar(&envName, "env", "", "environment to convert for (windows, wsl, unsupported)")
	cmd.Flags().StringVar(&terminalName, "terminal-name", "", "name of the destination terminal")
	return cmd
}
