package main

import (
	"fmt"
	"os"

	"github.com/edgehub-io/cli/pkg/cmd"
	"github.com/edgehub-io/cli/pkg/cmdhelp"
)

func main() {
	root := cmd.NewRootCmd()
	if err := cmdhelp.Execute(root, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
