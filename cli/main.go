package main

import (
	"os"
)

func main() {
	if err := run(os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		os.Exit(printExitError(err, os.Stdout, os.Stderr))
	}
}
