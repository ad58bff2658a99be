// Command nanocore-as is a two-pass assembler for the nanocore 8-bit CPU.
package main

import (
	"context"
	"os"

	"github.com/nanocore-dev/nanocore-as/internal/cli"
	"github.com/nanocore-dev/nanocore-as/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Assembler(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
