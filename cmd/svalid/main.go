// svalid - Schematron compilation and validation toolkit

package main

import (
	"fmt"
	"os"

	"svalid/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if code := cli.ExitCode(err); code != cli.ExitSuccess {
			if _, ok := err.(*cli.ExitCodeError); !ok {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(code)
		}
	}
}
