// profilecheck - UML profile application checker for XMI documents

package main

import (
	"os"

	"github.com/ariel-frischer/profilecheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
