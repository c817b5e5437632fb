package cmdhelp

import (
	"github.com/spf13/cobra"
)

// versionTokens are the version-request spellings dispatched directly to
// the version command instead of the framework's flag handling.
var versionTokens = map[string]struct{}{
	"version":   {},
	"-v":        {},
	"--version": {},
}

// Execute wraps the framework dispatcher. A leading version token skips
// the built-in help/version interception and dispatches to the version
// subcommand like any other command; everything else is delegated
// unchanged.
func Execute(root *cobra.Command, args []string) error {
	if len(args) > 0 {
		if _, ok := versionTokens[args[0]]; ok {
			args = append([]string{"version"}, args[1:]...)
		}
	}
	root.SetArgs(args)
	return root.Execute()
}
