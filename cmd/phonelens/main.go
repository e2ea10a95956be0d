// Command phonelens is the phone number intelligence CLI.
package main

import (
	"os"

	"github.com/phonelens/phonelens/internal/cli"
	"github.com/phonelens/phonelens/pkg/version"
)

func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}

func main() {
	if err := run(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
