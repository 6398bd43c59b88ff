package cli

import (
	cmdpkg "github.com/berrythewa/clippaste/internal/cli/cmd"
)

func init() {
	// Register all commands with the root command
	for _, command := range cmdpkg.GetCommands() {
		AddCommand(command)
	}
}
